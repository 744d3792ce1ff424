package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Default endpoint of the public OpenWeatherMap API.
const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

type AppConfig struct {
	AppName    string
	AppVersion string

	// OpenWeatherMap credential and endpoint. The key may be empty at
	// startup; upstream calls then fail with a configuration error.
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string

	// RequestTimeout bounds every outbound upstream call.
	RequestTimeout time.Duration

	// HealthCheckCity is the reference city the health probe fetches.
	HealthCheckCity string

	// HealthProbeInterval sets how often the background probe refreshes the
	// upstream health gauge; zero disables the probe.
	HealthProbeInterval time.Duration

	Host string
	Port string

	LogLevel  string
	LogFormat string

	ShutdownTimeout time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		AppName:           "weather-forecast-service",
		AppVersion:        getenvDefault("APP_VERSION", "1.0.0"),
		OpenWeatherAPIKey: os.Getenv("OPENWEATHERMAP_API_KEY"),
		HealthCheckCity:   getenvDefault("HEALTH_CHECK_CITY", "London"),
		Host:              getenvDefault("HOST", "0.0.0.0"),
		Port:              getenvDefault("PORT", "8080"),
		LogLevel:          getenvDefault("LOG_LEVEL", "info"),
		LogFormat:         getenvDefault("LOG_FORMAT", "json"),
	}

	cfg.OpenWeatherBaseURL = strings.TrimSuffix(getenvDefault("OPENWEATHERMAP_BASE_URL", defaultBaseURL), "/")

	timeoutStr := getenvDefault("REQUEST_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}
	cfg.RequestTimeout = timeout

	shutdownStr := getenvDefault("SHUTDOWN_TIMEOUT", "10s")
	shutdown, err := time.ParseDuration(shutdownStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.ShutdownTimeout = shutdown

	probeStr := getenvDefault("HEALTH_PROBE_INTERVAL", "5m")
	probe, err := time.ParseDuration(probeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HEALTH_PROBE_INTERVAL: %w", err)
	}
	if probe < 0 {
		return nil, fmt.Errorf("invalid HEALTH_PROBE_INTERVAL: negative interval %s", probe)
	}
	cfg.HealthProbeInterval = probe

	return cfg, nil
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c *AppConfig) ListenAddr() string {
	return c.Host + ":" + c.Port
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

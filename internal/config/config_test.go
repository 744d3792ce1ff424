package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_VERSION",
		"OPENWEATHERMAP_API_KEY",
		"OPENWEATHERMAP_BASE_URL",
		"REQUEST_TIMEOUT",
		"HEALTH_CHECK_CITY",
		"HOST",
		"PORT",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"SHUTDOWN_TIMEOUT",
		"HEALTH_PROBE_INTERVAL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "weather-forecast-service", cfg.AppName)
	assert.Equal(t, "1.0.0", cfg.AppVersion)
	assert.Empty(t, cfg.OpenWeatherAPIKey)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5", cfg.OpenWeatherBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "London", cfg.HealthCheckCity)
	assert.Equal(t, "0.0.0.0:8080", cfg.ListenAddr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Minute, cfg.HealthProbeInterval)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENWEATHERMAP_API_KEY", "test-key")
	t.Setenv("OPENWEATHERMAP_BASE_URL", "http://localhost:9000/data/2.5/")
	t.Setenv("REQUEST_TIMEOUT", "2s")
	t.Setenv("HEALTH_CHECK_CITY", "Berlin")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.OpenWeatherAPIKey)
	// Trailing slash is stripped so URL building stays predictable.
	assert.Equal(t, "http://localhost:9000/data/2.5", cfg.OpenWeatherBaseURL)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "Berlin", cfg.HealthCheckCity)
	assert.Equal(t, "127.0.0.1:9090", cfg.ListenAddr())
}

func TestLoadInvalidDurations(t *testing.T) {
	clearEnv(t)
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_TIMEOUT")

	clearEnv(t)
	t.Setenv("SHUTDOWN_TIMEOUT", "10")

	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoadHealthProbeInterval(t *testing.T) {
	clearEnv(t)
	t.Setenv("HEALTH_PROBE_INTERVAL", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.HealthProbeInterval)

	// Zero disables the background probe.
	clearEnv(t)
	t.Setenv("HEALTH_PROBE_INTERVAL", "0")

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.HealthProbeInterval)

	clearEnv(t)
	t.Setenv("HEALTH_PROBE_INTERVAL", "-1m")

	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HEALTH_PROBE_INTERVAL")
}

package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/i474232898/weather-forecast-service/internal/api/http"
	"github.com/i474232898/weather-forecast-service/internal/config"
	"github.com/i474232898/weather-forecast-service/internal/observability"
	"github.com/i474232898/weather-forecast-service/internal/scheduler"
	"github.com/i474232898/weather-forecast-service/internal/weather"
	"github.com/i474232898/weather-forecast-service/internal/weather/openweather"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	if cfg.OpenWeatherAPIKey == "" {
		logger.Warn("OpenWeatherMap API key not configured; upstream requests will fail")
	}

	// Shared HTTP client for all outbound upstream calls.
	httpClient := &http.Client{
		Timeout: cfg.RequestTimeout,
	}
	defer httpClient.CloseIdleConnections()

	provider := openweather.NewClient(httpClient, cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, metrics)
	service := weather.NewService(provider, cfg.HealthCheckCity, clock, logger, metrics)

	// Background probe keeping the upstream health gauge fresh.
	if cfg.HealthProbeInterval > 0 {
		probe := scheduler.New(service, cfg.HealthProbeInterval, logger)
		if err := probe.Start(); err != nil {
			log.Fatalf("failed to start health probe: %v", err)
		}
		defer probe.Stop()
	}

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.NewErrorHandler(logger, clock),
	})

	// Global middleware
	app.Use(cors.New())
	app.Use(httpapi.RequestLogger(logger))
	app.Use(httpapi.MetricsMiddleware(metrics))
	app.Use(recover.New())

	// Service identity and liveness endpoints.
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service":   cfg.AppName,
			"version":   cfg.AppVersion,
			"status":    "running",
			"timestamp": clock.Now().UTC(),
			"health":    "/api/v1/health",
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": clock.Now().UTC(),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes.
	httpapi.NewRouter(service, cfg.AppVersion, clock, logger).Register(app)

	// Start server with graceful shutdown
	go func() {
		logger.Info("server listening", "addr", cfg.ListenAddr())
		if err := app.Listen(cfg.ListenAddr()); err != nil {
			logger.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
}

package httpapi

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-forecast-service/internal/observability"
)

// RequestLogger logs one line per request: method, path, status, duration.
func RequestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusFor(err)
		}

		logger.Info("request completed",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start),
		)

		return err
	}
}

// MetricsMiddleware records request counts and latencies per route pattern.
func MetricsMiddleware(m *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusFor(err)
		}

		path := c.Route().Path
		m.HTTPRequests.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())

		return err
	}
}

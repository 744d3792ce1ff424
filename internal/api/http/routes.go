package httpapi

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"

	"github.com/i474232898/weather-forecast-service/internal/weather"
)

// Router wires the versioned API handlers into a fiber app.
type Router struct {
	svc     *weather.Service
	version string
	clock   clockwork.Clock
	logger  *slog.Logger
}

// NewRouter creates a Router; all dependencies are injected by the caller.
func NewRouter(svc *weather.Service, version string, clock clockwork.Clock, logger *slog.Logger) *Router {
	return &Router{
		svc:     svc,
		version: version,
		clock:   clock,
		logger:  logger,
	}
}

// Register mounts the API routes.
func (r *Router) Register(app *fiber.App) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", r.handleCurrentWeather)
	v1.Get("/weather/forecast", r.handleForecast)
	v1.Get("/health", r.handleHealth)
}

func (r *Router) handleCurrentWeather(c *fiber.Ctx) error {
	q, err := parseWeatherQuery(c)
	if err != nil {
		return err
	}

	snapshot, err := r.svc.GetCurrentWeather(c.UserContext(), q.toLocation())
	if err != nil {
		return err
	}

	return c.JSON(snapshot)
}

func (r *Router) handleForecast(c *fiber.Ctx) error {
	q, err := parseForecastQuery(c)
	if err != nil {
		return err
	}

	forecast, err := r.svc.GetForecast(c.UserContext(), q.toLocation(), q.Days)
	if err != nil {
		return err
	}

	return c.JSON(forecast)
}

// handleHealth always answers 200: the body's status field carries the probe
// outcome, and a panicking probe degrades to unhealthy/unknown instead of
// propagating.
func (r *Router) handleHealth(c *fiber.Ctx) error {
	status, apiStatus := "unhealthy", "unknown"

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("health probe panicked", "panic", rec)
			}
		}()

		if r.svc.CheckAPIHealth(c.UserContext()) {
			status, apiStatus = "healthy", "healthy"
		} else {
			status, apiStatus = "degraded", "unhealthy"
		}
	}()

	return c.JSON(weather.HealthResponse{
		Status:           status,
		Timestamp:        r.clock.Now().UTC(),
		Version:          r.version,
		WeatherAPIStatus: apiStatus,
	})
}

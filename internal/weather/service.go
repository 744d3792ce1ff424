package weather

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/i474232898/weather-forecast-service/internal/observability"
)

// Service orchestrates the upstream provider and the normalizer. It holds no
// per-request state; a single instance is shared by all requests.
type Service struct {
	provider        Provider
	healthCheckCity string
	clock           clockwork.Clock
	logger          *slog.Logger
	metrics         *observability.Metrics
}

// NewService creates a new Service.
func NewService(provider Provider, healthCheckCity string, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		provider:        provider,
		healthCheckCity: healthCheckCity,
		clock:           clock,
		logger:          logger,
		metrics:         metrics,
	}
}

// GetCurrentWeather fetches and normalizes the current conditions for loc.
func (s *Service) GetCurrentWeather(ctx context.Context, loc Location) (*SimpleCurrentWeather, error) {
	s.logger.Info("fetching current weather", "location", loc.String())

	resp, err := s.provider.FetchCurrent(ctx, loc)
	if err != nil {
		return nil, err
	}

	snapshot := NormalizeCurrent(resp)
	return &snapshot, nil
}

// GetForecast fetches the raw granule forecast for loc and aggregates it
// into at most days daily summaries.
func (s *Service) GetForecast(ctx context.Context, loc Location, days int) (*SimpleForecastResponse, error) {
	s.logger.Info("fetching forecast", "location", loc.String(), "days", days)

	resp, err := s.provider.FetchForecast(ctx, loc)
	if err != nil {
		return nil, err
	}

	forecast := NormalizeForecast(resp, days, s.clock.Now())
	return &forecast, nil
}

// CheckAPIHealth probes upstream by fetching current weather for the
// configured reference city. The outcome is reported as a bool, never an
// error; the probe also drives the upstream_healthy gauge. A probe failure
// cannot distinguish an upstream outage from the reference city itself
// becoming unresolvable.
func (s *Service) CheckAPIHealth(ctx context.Context) bool {
	if _, err := s.GetCurrentWeather(ctx, Location{City: s.healthCheckCity}); err != nil {
		s.logger.Error("weather API health check failed", "city", s.healthCheckCity, "error", err)
		s.metrics.UpstreamHealthy.Set(0)
		return false
	}

	s.metrics.UpstreamHealthy.Set(1)
	return true
}

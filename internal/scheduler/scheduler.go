package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-forecast-service/internal/weather"
)

// probeTimeout bounds a single background probe independently of the HTTP
// client timeout.
const probeTimeout = 30 * time.Second

// Scheduler runs the upstream health probe on a fixed interval. The health
// endpoint probes on demand; between requests the probe keeps the upstream
// health gauge from going stale.
type Scheduler struct {
	scheduler *gocron.Scheduler
	svc       *weather.Service
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a Scheduler probing upstream health every interval.
func New(svc *weather.Service, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		svc:       svc,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the probe job and starts the scheduler in the background.
// The first probe fires immediately so the gauge is populated right after
// boot.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).StartImmediately().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()

		healthy := s.svc.CheckAPIHealth(ctx)
		s.logger.Debug("upstream health probe completed", "healthy", healthy)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler; no further probes are scheduled. A probe already
// in flight runs to completion.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

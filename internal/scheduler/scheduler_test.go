package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-forecast-service/internal/observability"
	"github.com/i474232898/weather-forecast-service/internal/weather"
)

type countingProvider struct {
	calls atomic.Int32
	fail  atomic.Bool
}

var _ weather.Provider = (*countingProvider)(nil)

func (p *countingProvider) FetchCurrent(_ context.Context, _ weather.Location) (*weather.CurrentWeatherResponse, error) {
	p.calls.Add(1)
	if p.fail.Load() {
		return nil, weather.NewError(weather.KindUpstream, "weather API request failed")
	}
	return &weather.CurrentWeatherResponse{Name: "London"}, nil
}

func (p *countingProvider) FetchForecast(_ context.Context, _ weather.Location) (*weather.ForecastResponse, error) {
	return &weather.ForecastResponse{}, nil
}

func newProbeService(p weather.Provider) *weather.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return weather.NewService(p, "London", clockwork.NewRealClock(), logger, observability.NewMetricsForTesting())
}

func TestSchedulerRunsProbeRepeatedly(t *testing.T) {
	provider := &countingProvider{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s := New(newProbeService(provider), 100*time.Millisecond, logger)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return provider.calls.Load() >= 2
	}, 3*time.Second, 20*time.Millisecond)
}

func TestSchedulerStopHaltsProbe(t *testing.T) {
	provider := &countingProvider{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s := New(newProbeService(provider), 100*time.Millisecond, logger)
	require.NoError(t, s.Start())

	assert.Eventually(t, func() bool {
		return provider.calls.Load() >= 1
	}, 3*time.Second, 20*time.Millisecond)

	s.Stop()
	// Let a probe already in flight land before taking the baseline.
	time.Sleep(200 * time.Millisecond)
	stopped := provider.calls.Load()
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, stopped, provider.calls.Load())
}

func TestSchedulerProbeSurvivesFailures(t *testing.T) {
	provider := &countingProvider{}
	provider.fail.Store(true)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s := New(newProbeService(provider), 100*time.Millisecond, logger)
	require.NoError(t, s.Start())
	defer s.Stop()

	// Failed probes keep the schedule alive.
	assert.Eventually(t, func() bool {
		return provider.calls.Load() >= 2
	}, 3*time.Second, 20*time.Millisecond)
}

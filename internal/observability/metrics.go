package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	// Inbound HTTP traffic.
	HTTPRequests *prometheus.CounterVec   // labels: method, path, status
	HTTPDuration *prometheus.HistogramVec // labels: method, path

	// Outbound OpenWeatherMap traffic.
	UpstreamRequests *prometheus.CounterVec   // labels: operation={current,forecast}, outcome={success,not_found,error}
	UpstreamDuration *prometheus.HistogramVec // labels: operation={current,forecast}

	// UpstreamHealthy reflects the last health probe: 1 healthy, 0 unhealthy.
	UpstreamHealthy prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_service",
			Name:      "http_requests_total",
			Help:      "Inbound HTTP requests by method, route, and status code.",
		}, []string{"method", "path", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_service",
			Name:      "http_request_duration_seconds",
			Help:      "Inbound HTTP request duration in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "path"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_service",
			Name:      "upstream_requests_total",
			Help:      "OpenWeatherMap API requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_service",
			Name:      "upstream_request_duration_seconds",
			Help:      "OpenWeatherMap API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		UpstreamHealthy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_service",
			Name:      "upstream_healthy",
			Help:      "1 when the last upstream health probe succeeded, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.UpstreamHealthy,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		HTTPRequests:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_service", Name: "http_requests_total"}, []string{"method", "path", "status"}),
		HTTPDuration:     prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_service", Name: "http_request_duration_seconds"}, []string{"method", "path"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_service", Name: "upstream_requests_total"}, []string{"operation", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_service", Name: "upstream_request_duration_seconds"}, []string{"operation"}),
		UpstreamHealthy:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_service", Name: "upstream_healthy"}),
	}
}

package weather

import "context"

// Provider abstracts the upstream weather data source. The production
// implementation talks to OpenWeatherMap; tests substitute stubs. Both
// operations return the decoded upstream schema untouched; normalization is
// a separate step.
type Provider interface {
	FetchCurrent(ctx context.Context, loc Location) (*CurrentWeatherResponse, error)
	FetchForecast(ctx context.Context, loc Location) (*ForecastResponse, error)
}

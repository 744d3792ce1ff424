// Package weather contains the domain model of the forecast service: the
// typed OpenWeatherMap schema, the simplified response shapes served to
// clients, the error taxonomy, and the normalization between the two.
package weather

import (
	"fmt"
	"time"
)

// Coord is a geographic coordinate pair as reported by the upstream API.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location identifies the place a request targets: either a city name or a
// complete coordinate pair. The HTTP layer guarantees exactly one form is set.
type Location struct {
	City string
	Lat  *float64
	Lon  *float64
}

// ByCoordinates reports whether the location carries a coordinate pair.
func (l Location) ByCoordinates() bool {
	return l.Lat != nil && l.Lon != nil
}

func (l Location) String() string {
	if l.ByCoordinates() {
		return fmt.Sprintf("(%v, %v)", *l.Lat, *l.Lon)
	}
	return l.City
}

// SimpleWeatherCondition is the condensed condition block of a response.
type SimpleWeatherCondition struct {
	Condition   string `json:"condition"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// SimpleCurrentWeather is the simplified current-weather snapshot.
type SimpleCurrentWeather struct {
	City          string                 `json:"city"`
	Country       string                 `json:"country"`
	Coordinates   Coord                  `json:"coordinates"`
	Temperature   float64                `json:"temperature"`
	FeelsLike     float64                `json:"feels_like"`
	Humidity      int                    `json:"humidity"`
	Pressure      int                    `json:"pressure"`
	Weather       SimpleWeatherCondition `json:"weather"`
	WindSpeed     float64                `json:"wind_speed"`
	WindDirection int                    `json:"wind_direction"`
	Cloudiness    int                    `json:"cloudiness"`
	Visibility    int                    `json:"visibility"`
	Timestamp     time.Time              `json:"timestamp"` // always UTC
}

// SimpleForecastDay is one day's aggregate over the upstream 3-hour granules.
type SimpleForecastDay struct {
	Date                     string                 `json:"date"` // YYYY-MM-DD
	TemperatureMin           float64                `json:"temperature_min"`
	TemperatureMax           float64                `json:"temperature_max"`
	Humidity                 int                    `json:"humidity"`
	Weather                  SimpleWeatherCondition `json:"weather"`
	WindSpeed                float64                `json:"wind_speed"`
	PrecipitationProbability float64                `json:"precipitation_probability"`
}

// SimpleForecastResponse is the simplified multi-day forecast.
type SimpleForecastResponse struct {
	City         string              `json:"city"`
	Country      string              `json:"country"`
	Coordinates  Coord               `json:"coordinates"`
	ForecastDays []SimpleForecastDay `json:"forecast_days"`
	GeneratedAt  time.Time           `json:"generated_at"` // always UTC
}

// HealthResponse is the body of the health endpoint; it is served with
// HTTP 200 regardless of probe outcome.
type HealthResponse struct {
	Status           string    `json:"status"`
	Timestamp        time.Time `json:"timestamp"`
	Version          string    `json:"version"`
	WeatherAPIStatus string    `json:"weather_api_status"`
}

// ErrorResponse is the single error body shape served by the API.
type ErrorResponse struct {
	Error      string    `json:"error"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	StatusCode int       `json:"status_code"`
}

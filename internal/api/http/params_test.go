package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-forecast-service/internal/weather"
)

func f64(v float64) *float64 { return &v }

func TestCheckLocationRules(t *testing.T) {
	tests := []struct {
		name    string
		q       weatherQuery
		message string
	}{
		{"city only", weatherQuery{City: "London"}, ""},
		{"coordinates only", weatherQuery{Lat: f64(51.5), Lon: f64(-0.1)}, ""},
		{"city with coordinates", weatherQuery{City: "London", Lat: f64(51.5), Lon: f64(-0.1)}, "Cannot specify both city and coordinates"},
		{"city with one coordinate", weatherQuery{City: "London", Lon: f64(-0.1)}, "Cannot specify both city and coordinates"},
		{"latitude only", weatherQuery{Lat: f64(51.5)}, "Both latitude and longitude must be provided"},
		{"longitude only", weatherQuery{Lon: f64(-0.1)}, "Both latitude and longitude must be provided"},
		{"nothing", weatherQuery{}, "Either city name or both latitude and longitude must be provided"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.q.checkLocationRules()
			if tc.message == "" {
				assert.NoError(t, err)
				return
			}

			var werr *weather.Error
			require.ErrorAs(t, err, &werr)
			assert.Equal(t, weather.KindValidation, werr.Kind)
			assert.Equal(t, tc.message, werr.Message)
		})
	}
}

func TestCoordinateBounds(t *testing.T) {
	tests := []struct {
		name    string
		q       weatherQuery
		message string
	}{
		{"boundary values pass", weatherQuery{Lat: f64(-90), Lon: f64(180)}, ""},
		{"opposite boundary values pass", weatherQuery{Lat: f64(90), Lon: f64(-180)}, ""},
		{"latitude below minimum", weatherQuery{Lat: f64(-90.0001), Lon: f64(0)}, "lat must be between -90 and 90"},
		{"latitude above maximum", weatherQuery{Lat: f64(90.0001), Lon: f64(0)}, "lat must be between -90 and 90"},
		{"longitude below minimum", weatherQuery{Lat: f64(0), Lon: f64(-180.5)}, "lon must be between -180 and 180"},
		{"longitude above maximum", weatherQuery{Lat: f64(0), Lon: f64(180.5)}, "lon must be between -180 and 180"},
		{"absent coordinates skip bounds", weatherQuery{City: "London"}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.Struct(tc.q)
			if tc.message == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			var werr *weather.Error
			require.ErrorAs(t, schemaError(err), &werr)
			assert.Equal(t, weather.KindSchema, werr.Kind)
			assert.Equal(t, tc.message, werr.Message)
		})
	}
}

func TestForecastDaysBounds(t *testing.T) {
	for days := 1; days <= 5; days++ {
		q := forecastQuery{weatherQuery: weatherQuery{City: "London"}, Days: days}
		assert.NoError(t, validate.Struct(q), "days=%d", days)
	}

	for _, days := range []int{-1, 0, 6, 10} {
		q := forecastQuery{weatherQuery: weatherQuery{City: "London"}, Days: days}
		err := validate.Struct(q)
		require.Error(t, err, "days=%d", days)

		var werr *weather.Error
		require.ErrorAs(t, schemaError(err), &werr)
		assert.Equal(t, weather.KindSchema, werr.Kind)
		assert.Equal(t, "days must be between 1 and 5", werr.Message)
	}
}

func TestToLocation(t *testing.T) {
	city := weatherQuery{City: "London"}
	assert.Equal(t, weather.Location{City: "London"}, city.toLocation())

	coords := weatherQuery{Lat: f64(51.5085), Lon: f64(-0.1257)}
	loc := coords.toLocation()
	require.True(t, loc.ByCoordinates())
	assert.Equal(t, 51.5085, *loc.Lat)
	assert.Equal(t, -0.1257, *loc.Lon)
}

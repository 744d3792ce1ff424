package httpapi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-forecast-service/internal/weather"
)

var validate = validator.New()

const defaultForecastDays = 3

// weatherQuery holds the location query parameters shared by both weather
// endpoints. Bounds tags are the schema tier (422); the city-xor-coordinates
// rules are the business tier (400) and run only after bounds pass, matching
// the order parameters are rejected in.
type weatherQuery struct {
	City string
	Lat  *float64 `validate:"omitempty,min=-90,max=90"`
	Lon  *float64 `validate:"omitempty,min=-180,max=180"`
}

// forecastQuery adds the forecast day window.
type forecastQuery struct {
	weatherQuery
	Days int `validate:"min=1,max=5"`
}

// Client-facing message per out-of-range field.
var schemaMessages = map[string]string{
	"Lat":  "lat must be between -90 and 90",
	"Lon":  "lon must be between -180 and 180",
	"Days": "days must be between 1 and 5",
}

func parseWeatherQuery(c *fiber.Ctx) (weatherQuery, error) {
	var q weatherQuery
	if err := q.bind(c); err != nil {
		return q, err
	}
	if err := validate.Struct(q); err != nil {
		return q, schemaError(err)
	}
	return q, q.checkLocationRules()
}

func parseForecastQuery(c *fiber.Ctx) (forecastQuery, error) {
	var q forecastQuery
	if err := q.bind(c); err != nil {
		return q, err
	}

	var err error
	if q.Days, err = queryDays(c); err != nil {
		return q, err
	}

	if err := validate.Struct(q); err != nil {
		return q, schemaError(err)
	}
	return q, q.checkLocationRules()
}

func (q *weatherQuery) bind(c *fiber.Ctx) error {
	q.City = c.Query("city")

	var err error
	if q.Lat, err = queryFloat(c, "lat"); err != nil {
		return err
	}
	q.Lon, err = queryFloat(c, "lon")
	return err
}

// checkLocationRules enforces the city-xor-coordinates contract: a conflict
// is reported before an incomplete pair, which is reported before a missing
// location.
func (q weatherQuery) checkLocationRules() error {
	hasCity := q.City != ""

	if hasCity && (q.Lat != nil || q.Lon != nil) {
		return weather.NewError(weather.KindValidation, "Cannot specify both city and coordinates")
	}
	if (q.Lat != nil) != (q.Lon != nil) {
		return weather.NewError(weather.KindValidation, "Both latitude and longitude must be provided")
	}
	if !hasCity && q.Lat == nil {
		return weather.NewError(weather.KindValidation, "Either city name or both latitude and longitude must be provided")
	}
	return nil
}

func (q weatherQuery) toLocation() weather.Location {
	if q.City != "" {
		return weather.Location{City: q.City}
	}
	return weather.Location{Lat: q.Lat, Lon: q.Lon}
}

// queryFloat parses an optional float query parameter; empty means absent.
func queryFloat(c *fiber.Ctx, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, weather.NewError(weather.KindSchema, fmt.Sprintf("%s must be a valid number", name))
	}
	return &v, nil
}

func queryDays(c *fiber.Ctx) (int, error) {
	raw := c.Query("days")
	if raw == "" {
		return defaultForecastDays, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, weather.NewError(weather.KindSchema, "days must be a valid integer")
	}
	return v, nil
}

// schemaError converts validator range violations into the schema tier of
// the taxonomy, reporting the first violation.
func schemaError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if msg, ok := schemaMessages[fe.Field()]; ok {
			return weather.NewError(weather.KindSchema, msg)
		}
		return weather.NewError(weather.KindSchema, fmt.Sprintf("%s failed %s validation", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return weather.WrapError(weather.KindInternal, "query validation failed", err)
}

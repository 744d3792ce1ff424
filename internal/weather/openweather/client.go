package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-forecast-service/internal/observability"
	"github.com/i474232898/weather-forecast-service/internal/weather"
)

// Operation labels for metrics.
const (
	opCurrent  = "current"
	opForecast = "forecast"
)

const (
	outcomeSuccess  = "success"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// Client talks to the OpenWeatherMap /data/2.5 API. A circuit breaker guards
// the transport: consecutive transport failures and 5xx responses trip it,
// while 4xx statuses pass through as semantic outcomes.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
	metrics    *observability.Metrics
}

var _ weather.Provider = (*Client)(nil)

// NewClient creates a Client using the shared HTTP client; the client's
// timeout bounds every upstream call.
func NewClient(client *http.Client, apiKey, baseURL string, metrics *observability.Metrics) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: client,
		circuit:    cb,
		metrics:    metrics,
	}
}

// FetchCurrent retrieves the current conditions for loc.
func (c *Client) FetchCurrent(ctx context.Context, loc weather.Location) (*weather.CurrentWeatherResponse, error) {
	var payload weather.CurrentWeatherResponse
	if err := c.getJSON(ctx, "/weather", opCurrent, loc, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchForecast retrieves the 5-day/3-hour forecast for loc.
func (c *Client) FetchForecast(ctx context.Context, loc weather.Location) (*weather.ForecastResponse, error) {
	var payload weather.ForecastResponse
	if err := c.getJSON(ctx, "/forecast", opForecast, loc, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// getJSON issues one GET against the given API path and decodes the 200 body
// into out. Every upstream HTTP status is mapped onto the service taxonomy
// here; callers never see a raw status code.
func (c *Client) getJSON(ctx context.Context, path, operation string, loc weather.Location, out any) error {
	if c.apiKey == "" {
		return weather.NewError(weather.KindConfiguration, "openweather api key is not configured")
	}

	outcome := outcomeError
	defer func() {
		c.metrics.UpstreamRequests.WithLabelValues(operation, outcome).Inc()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(path, loc), nil)
	if err != nil {
		return weather.WrapError(weather.KindInternal, "building weather API request failed", err)
	}

	start := time.Now()
	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.httpClient.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		// 5xx counts against the breaker; anything below passes through
		// for semantic mapping.
		if resp.StatusCode >= http.StatusInternalServerError {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, &statusError{status: resp.StatusCode, body: strings.TrimSpace(string(body))}
		}

		return resp, nil
	})
	c.metrics.UpstreamDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	if err != nil {
		return mapTransportError(err)
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return weather.NewError(weather.KindInternal, "unexpected result type from circuit breaker")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return weather.NewError(weather.KindConfiguration, "invalid API key")
	case resp.StatusCode == http.StatusNotFound:
		outcome = outcomeNotFound
		return weather.NewError(weather.KindLocationNotFound, "location not found")
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return weather.NewError(weather.KindUpstream, fmt.Sprintf("weather API status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return weather.WrapError(weather.KindUpstream, "decoding weather API response failed", err)
	}

	outcome = outcomeSuccess
	return nil
}

func (c *Client) requestURL(path string, loc weather.Location) string {
	values := url.Values{}
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	if loc.ByCoordinates() {
		values.Set("lat", strconv.FormatFloat(*loc.Lat, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(*loc.Lon, 'f', -1, 64))
	} else {
		values.Set("q", loc.City)
	}

	return fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())
}

// statusError carries a 5xx upstream response through the circuit breaker.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("weather API status %d: %s", e.status, e.body)
}

func mapTransportError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return weather.WrapError(weather.KindUpstream, "weather API circuit breaker open", err)
	}

	var se *statusError
	if errors.As(err, &se) {
		return weather.NewError(weather.KindUpstream, se.Error())
	}

	if isTimeout(err) {
		return weather.WrapError(weather.KindUpstream, "weather API request timed out", err)
	}

	return weather.WrapError(weather.KindUpstream, "weather API request failed", err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

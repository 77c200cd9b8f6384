// Package openweather adapts the OpenWeather HTTP API to the domain
// weather contracts: forward geocoding, current conditions, and the UV
// index, each behind its own endpoint.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/chriswiesanjaya/sun-protection/internal/domain"
	"github.com/chriswiesanjaya/sun-protection/internal/observability"
)

// Endpoint labels for provider metrics.
const (
	endpointGeocode = "geocode"
	endpointWeather = "weather"
	endpointUV      = "uv"
)

// Request outcome labels.
const (
	outcomeSuccess = "success"
	outcomeError   = "error"
	outcomeEmpty   = "empty"
)

// Client implements domain.Geocoder and domain.WeatherProvider using the
// OpenWeather API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an OpenWeather client.
func NewClient(apiKey, baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// Geocode resolves a free-form location query to the provider's best
// match. A query the provider cannot place returns a zero Place and a nil
// error.
func (c *Client) Geocode(ctx context.Context, query string) (domain.Place, error) {
	params := url.Values{
		"q":     {query},
		"limit": {"1"},
		"appid": {c.apiKey},
	}

	var results []geoResult
	if err := c.getJSON(ctx, endpointGeocode, "/geo/1.0/direct", params, &results); err != nil {
		return domain.Place{}, err
	}

	if len(results) == 0 {
		c.metrics.ProviderRequests.WithLabelValues(endpointGeocode, outcomeEmpty).Inc()
		c.logger.Debug("no geocoding match", "query", query)
		return domain.Place{}, nil
	}
	c.metrics.ProviderRequests.WithLabelValues(endpointGeocode, outcomeSuccess).Inc()

	r := results[0]
	return domain.Place{
		Name:    r.Name,
		Country: r.Country,
		Lat:     r.Lat,
		Lon:     r.Lon,
	}, nil
}

// CurrentConditions fetches the current weather at the coordinates in
// metric units.
func (c *Client) CurrentConditions(ctx context.Context, lat, lon float64) (domain.Conditions, error) {
	params := url.Values{
		"lat":   {formatCoord(lat)},
		"lon":   {formatCoord(lon)},
		"units": {"metric"},
		"appid": {c.apiKey},
	}

	var resp weatherResponse
	if err := c.getJSON(ctx, endpointWeather, "/data/2.5/weather", params, &resp); err != nil {
		return domain.Conditions{}, err
	}
	c.metrics.ProviderRequests.WithLabelValues(endpointWeather, outcomeSuccess).Inc()

	conditions := domain.Conditions{
		TemperatureC:          resp.Main.Temp,
		TimezoneOffsetSeconds: resp.Timezone,
	}
	if len(resp.Weather) > 0 {
		conditions.Description = resp.Weather[0].Description
		conditions.Icon = resp.Weather[0].Icon
	}
	return conditions, nil
}

// UVIndex fetches the current UV index at the coordinates.
func (c *Client) UVIndex(ctx context.Context, lat, lon float64) (float64, error) {
	params := url.Values{
		"lat":   {formatCoord(lat)},
		"lon":   {formatCoord(lon)},
		"appid": {c.apiKey},
	}

	var resp uvResponse
	if err := c.getJSON(ctx, endpointUV, "/data/2.5/uvi", params, &resp); err != nil {
		return 0, err
	}
	c.metrics.ProviderRequests.WithLabelValues(endpointUV, outcomeSuccess).Inc()
	return resp.Value, nil
}

// getJSON performs a GET against the provider and decodes the body into v.
// It records request duration for every call and the error outcome on
// failure; callers record their terminal outcome once they have inspected
// the payload.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, params url.Values, v any) error {
	start := time.Now()
	defer func() {
		c.metrics.ProviderDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, outcomeError).Inc()
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, outcomeError).Inc()
		return fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.ProviderRequests.WithLabelValues(endpoint, outcomeError).Inc()
		return fmt.Errorf("openweather API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, outcomeError).Inc()
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// OpenWeather API response types.

type geoResult struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}

type weatherResponse struct {
	Weather  []weatherCondition `json:"weather"`
	Main     weatherMain        `json:"main"`
	Timezone int                `json:"timezone"`
}

type weatherCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type weatherMain struct {
	Temp float64 `json:"temp"`
}

type uvResponse struct {
	Value float64 `json:"value"`
}

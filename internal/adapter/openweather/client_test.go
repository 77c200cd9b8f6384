package openweather

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriswiesanjaya/sun-protection/internal/observability"
)

const (
	testAPIKey        = "test-key"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testClient(baseURL string) *Client {
	return &Client{
		apiKey:     testAPIKey,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		metrics:    testMetrics(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_Geocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/1.0/direct", r.URL.Path)
		assert.Equal(t, "Sydney", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, testAPIKey, r.URL.Query().Get("appid"))

		resp := []geoResult{
			{
				Name:    "Sydney",
				Lat:     -33.8679,
				Lon:     151.2073,
				Country: "AU",
				State:   "New South Wales",
			},
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	place, err := c.Geocode(context.Background(), "Sydney")
	require.NoError(t, err)

	assert.True(t, place.Found())
	assert.Equal(t, "Sydney", place.Name)
	assert.Equal(t, "AU", place.Country)
	assert.Equal(t, -33.8679, place.Lat)
	assert.Equal(t, 151.2073, place.Lon)
}

func TestClient_Geocode_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode([]geoResult{}))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	place, err := c.Geocode(context.Background(), "nowhere-at-all")
	require.NoError(t, err)
	assert.False(t, place.Found())
	assert.Empty(t, place.Name)
}

func TestClient_CurrentConditions_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "-33.867900", r.URL.Query().Get("lat"))
		assert.Equal(t, "151.207300", r.URL.Query().Get("lon"))
		assert.Equal(t, testAPIKey, r.URL.Query().Get("appid"))

		resp := weatherResponse{
			Weather:  []weatherCondition{{Description: "clear sky", Icon: "01d"}},
			Main:     weatherMain{Temp: 24.6},
			Timezone: 36000,
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	conditions, err := c.CurrentConditions(context.Background(), -33.8679, 151.2073)
	require.NoError(t, err)

	assert.Equal(t, 24.6, conditions.TemperatureC)
	assert.Equal(t, "clear sky", conditions.Description)
	assert.Equal(t, "01d", conditions.Icon)
	assert.Equal(t, 36000, conditions.TimezoneOffsetSeconds)
}

func TestClient_CurrentConditions_EmptyWeatherList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := weatherResponse{Main: weatherMain{Temp: 18.2}, Timezone: 3600}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	conditions, err := c.CurrentConditions(context.Background(), 48.8566, 2.3522)
	require.NoError(t, err)

	assert.Equal(t, 18.2, conditions.TemperatureC)
	assert.Empty(t, conditions.Description)
	assert.Empty(t, conditions.Icon)
}

func TestClient_UVIndex_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/uvi", r.URL.Path)
		assert.Equal(t, testAPIKey, r.URL.Query().Get("appid"))

		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(uvResponse{Value: 7.2}))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	uv, err := c.UVIndex(context.Background(), -33.8679, 151.2073)
	require.NoError(t, err)
	assert.Equal(t, 7.2, uv)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)

	_, err := c.Geocode(context.Background(), "Sydney")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	_, err = c.UVIndex(context.Background(), 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestClient_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.CurrentConditions(context.Background(), 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := &Client{
		apiKey:     testAPIKey,
		httpClient: &http.Client{Timeout: 50 * time.Millisecond},
		baseURL:    srv.URL,
		metrics:    testMetrics(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	_, err := c.Geocode(context.Background(), "Sydney")
	require.Error(t, err)
}

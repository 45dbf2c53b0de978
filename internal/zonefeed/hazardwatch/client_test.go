package hazardwatch_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazardroute/hazardroute/internal/zonefeed"
	"github.com/hazardroute/hazardroute/internal/zonefeed/hazardwatch"
)

func TestClient_FetchZones(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/zones", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"pagination": {"current_page": 1, "last_page": 1},
			"data": [
				{"name": "San Andreas", "latitude": 34.0, "longitude": -118.0, "radius_km": 80.0, "magnitude": 8.5},
				{"name": "Rose Canyon", "latitude": 32.85, "longitude": -117.2, "radius_km": 35.0}
			]
		}`)
	}))
	defer server.Close()

	client := hazardwatch.NewClient(hazardwatch.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	zones, err := client.FetchZones(context.Background())
	require.NoError(t, err)
	require.Len(t, zones, 2)

	assert.Equal(t, "San Andreas", zones[0].Name)
	assert.Equal(t, 34.0, zones[0].Lat)
	assert.Equal(t, -118.0, zones[0].Lon)
	assert.Equal(t, 80.0, zones[0].RadiusKm)
	require.NotNil(t, zones[0].Weight)
	assert.Equal(t, 8.5, *zones[0].Weight)

	assert.Equal(t, "Rose Canyon", zones[1].Name)
	assert.Nil(t, zones[1].Weight)
}

func TestClient_FetchZones_Pagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")
		switch page {
		case "1":
			fmt.Fprint(w, `{
				"pagination": {"current_page": 1, "last_page": 2},
				"data": [{"name": "Zone A", "latitude": 34.0, "longitude": -118.0, "radius_km": 10.0}]
			}`)
		case "2":
			fmt.Fprint(w, `{
				"pagination": {"current_page": 2, "last_page": 2},
				"data": [{"name": "Zone B", "latitude": 33.0, "longitude": -117.0, "radius_km": 20.0}]
			}`)
		default:
			t.Errorf("unexpected page %q", page)
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer server.Close()

	client := hazardwatch.NewClient(hazardwatch.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	zones, err := client.FetchZones(context.Background())
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, "Zone A", zones[0].Name)
	assert.Equal(t, "Zone B", zones[1].Name)
}

func TestClient_FetchZones_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := hazardwatch.NewClient(hazardwatch.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.FetchZones(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, zonefeed.ErrProviderUnavailable))

	var feedErr *zonefeed.Error
	require.ErrorAs(t, err, &feedErr)
	assert.Equal(t, hazardwatch.ProviderName, feedErr.Provider)
	assert.Equal(t, "SERVER_ERROR", feedErr.Code)
}

func TestClient_FetchZones_AuthFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := hazardwatch.NewClient(hazardwatch.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.FetchZones(context.Background())
	require.Error(t, err)

	var feedErr *zonefeed.Error
	require.ErrorAs(t, err, &feedErr)
	assert.Equal(t, "AUTH_FAILED", feedErr.Code)
}

func TestClient_FetchZones_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer server.Close()

	client := hazardwatch.NewClient(hazardwatch.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.FetchZones(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, zonefeed.ErrInvalidFeed))
}

func TestClient_Name(t *testing.T) {
	client := hazardwatch.NewClient(hazardwatch.ClientConfig{})
	assert.Equal(t, "hazardwatch", client.Name())
}

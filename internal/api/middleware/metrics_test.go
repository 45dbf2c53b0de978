package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazardroute/hazardroute/internal/api/middleware"
)

func newMetricsHandler(t *testing.T, inner http.HandlerFunc) http.Handler {
	t.Helper()
	metrics, err := middleware.NewMetrics()
	require.NoError(t, err)
	return metrics.Middleware()(inner)
}

func TestNewMetrics(t *testing.T) {
	metrics, err := middleware.NewMetrics()
	require.NoError(t, err)
	assert.NotNil(t, metrics)
}

func TestMetricsMiddleware_PassesThrough(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{"success", http.StatusOK, "OK", http.StatusOK},
		{"client error", http.StatusBadRequest, `{"error":"bad request"}`, http.StatusBadRequest},
		{"server error", http.StatusInternalServerError, "error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newMetricsHandler(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/zones", http.NoBody))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestMetricsMiddleware_ImplicitStatus(t *testing.T) {
	handler := newMetricsHandler(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/metadata", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
}

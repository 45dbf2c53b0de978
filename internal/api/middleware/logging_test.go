package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazardroute/hazardroute/internal/api/middleware"
)

// serveLogged runs one request through the Logger middleware wrapping h
// and returns the decoded log line.
func serveLogged(t *testing.T, h http.Handler, req *http.Request) map[string]interface{} {
	t.Helper()

	var buf bytes.Buffer
	handler := middleware.Logger(zerolog.New(&buf))(h)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLogger_RequestFields(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("response body"))
	})
	req := httptest.NewRequest(http.MethodGet, "/v1/zones", http.NoBody)
	req.Header.Set("User-Agent", "test-agent")

	entry := serveLogged(t, h, req)

	assert.Equal(t, "request completed", entry["message"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/v1/zones", entry["path"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, float64(len("response body")), entry["bytes"])
	assert.Equal(t, "test-agent", entry["user_agent"])
	assert.NotEmpty(t, entry["duration"])
}

func TestLogger_ErrorStatus(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	entry := serveLogged(t, h, httptest.NewRequest(http.MethodPost, "/v1/routes/analyze", http.NoBody))

	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, float64(http.StatusInternalServerError), entry["status"])
}

func TestLogger_ImplicitOK(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	entry := serveLogged(t, h, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	assert.Equal(t, float64(http.StatusOK), entry["status"])
}

func TestLogger_CorrelatesRequestID(t *testing.T) {
	var buf bytes.Buffer
	handler := middleware.RequestID(middleware.Logger(zerolog.New(&buf))(okHandler()))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	requestID, ok := entry["request_id"].(string)
	require.True(t, ok)
	assert.Contains(t, requestID, "req_")
}

func TestLogger_CorrelatesTrace(t *testing.T) {
	setupSpanRecorder(t)

	var buf bytes.Buffer
	handler := middleware.Tracing("hazardroute-api")(middleware.Logger(zerolog.New(&buf))(okHandler()))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	traceID, ok := entry["trace_id"].(string)
	require.True(t, ok)
	assert.Len(t, traceID, 32)

	spanID, ok := entry["span_id"].(string)
	require.True(t, ok)
	assert.Len(t, spanID, 16)
}

package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/", want: "/"},
		{path: "/summaries", want: "/summaries"},
		{path: "/summaries/download", want: "/summaries/download"},
		{path: "/webhook", want: "/webhook"},
		{path: "/health", want: "/health"},
		{path: "/wp-admin/setup.php", want: unmatchedRoute},
		{path: "/summaries/123", want: unmatchedRoute},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, routeLabel(tt.path))
		})
	}
}

// Arbitrary paths collapse into a single label value.
func TestMetricsMiddleware_CardinalityBounded(t *testing.T) {
	httpRequestsTotal.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	for _, p := range []string{"/a", "/b", "/c/d", "/e?x=1"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, 1, testutil.CollectAndCount(httpRequestsTotal))
	assert.Equal(t, float64(4), testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")))
}

func TestMetricsMiddleware_StatusCodes(t *testing.T) {
	httpRequestsTotal.Reset()

	tests := []struct {
		name       string
		statusCode int
		status     string
	}{
		{"success 200", http.StatusOK, "200"},
		{"bad request 400", http.StatusBadRequest, "400"},
		{"bad gateway 502", http.StatusBadGateway, "502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/summaries", nil))

			assert.Equal(t, tt.statusCode, w.Code)
			assert.Equal(t, float64(1), testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodPost, "/summaries", tt.status)))
		})
	}
}

func TestMetricsMiddleware_Sizes(t *testing.T) {
	httpRequestSize.Reset()
	httpResponseSize.Reset()

	responseBody := []byte(`{"summary":"📍 Chunk 1:\n- point"}`)
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = w.Write(responseBody)
	}))

	body := strings.NewReader(`{"event":"ping"}`)
	req := httptest.NewRequest(http.MethodPost, "/webhook", body)
	req.ContentLength = int64(body.Len())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, len(responseBody), w.Body.Len())
	assert.Equal(t, 1, testutil.CollectAndCount(httpRequestSize))
	assert.Equal(t, 1, testutil.CollectAndCount(httpResponseSize))
}

func TestMetricsMiddleware_InFlightReturnsToZero(t *testing.T) {
	httpRequestsInFlight.Set(0)

	var during float64
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(httpRequestsInFlight)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, float64(1), during)
	assert.Equal(t, float64(0), testutil.ToFloat64(httpRequestsInFlight))
}

func TestMetricsResponseWriter(t *testing.T) {
	w := httptest.NewRecorder()
	rw := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusCreated)
	assert.Equal(t, http.StatusCreated, rw.statusCode)

	n, err := rw.Write([]byte("test response"))
	require.NoError(t, err)
	assert.Equal(t, 13, n)
	assert.Equal(t, 13, rw.size)
	assert.Same(t, w, rw.Unwrap())
}

// Streaming handlers must be able to flush through the wrapper.
func TestMetricsMiddleware_Flush(t *testing.T) {
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("event: progress\n\n"))
		assert.NoError(t, http.NewResponseController(w).Flush())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/summaries/stream", nil))
	assert.True(t, w.Flushed)
}

func TestMetricsHandler(t *testing.T) {
	handler := MetricsHandler()
	require.NotNil(t, handler)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())
}

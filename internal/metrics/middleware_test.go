package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestRouter(t *testing.T) (*chi.Mux, *HTTPMetrics) {
	t.Helper()
	m, err := NewHTTPMetrics(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewHTTPMetrics: %v", err)
	}
	r := chi.NewRouter()
	r.Use(m.Middleware())
	return r, m
}

func TestMetricsMiddleware_RecordsDurationAndCount(t *testing.T) {
	r, m := newTestRouter(t)
	r.Get("/api/v1/collections/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest("GET", "/api/v1/collections/docs", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	// Route pattern, not the concrete collection name.
	got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/v1/collections/{name}", "200"))
	if got != 1 {
		t.Errorf("http_requests_total = %f, want 1", got)
	}
	if testutil.CollectAndCount(m.requestDuration) == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMetricsMiddleware_DifferentStatusCodes(t *testing.T) {
	r, m := newTestRouter(t)
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/notfound", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/error", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	tests := []struct {
		path           string
		expectedStatus string
	}{
		{"/ok", "200"},
		{"/notfound", "404"},
		{"/error", "500"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.path, http.NoBody)
			r.ServeHTTP(httptest.NewRecorder(), req)

			val := testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", tc.path, tc.expectedStatus))
			if val != 1 {
				t.Errorf("requests_total for %s with status %s = %f, want 1", tc.path, tc.expectedStatus, val)
			}
		})
	}
}

func TestNewHTTPMetrics_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewHTTPMetrics(reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := NewHTTPMetrics(reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.requestsTotal != second.requestsTotal {
		t.Error("expected second registration to reuse the existing counter")
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "unknown"},
		{"/api/v1/collections/", "/api/v1/collections/"},
		{"/health", "/health"},
	}

	for _, tc := range tests {
		if got := normalizePath(tc.input); got != tc.expected {
			t.Errorf("normalizePath(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

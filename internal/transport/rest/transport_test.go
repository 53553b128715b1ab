package rest

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

type stubRoundTripper struct {
	calls int
	resp  *http.Response
	err   error
	last  *http.Request
}

func (s *stubRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	s.calls++
	s.last = req
	return s.resp, s.err
}

func stubResponse(status int) *http.Response {
	rr := httptest.NewRecorder()
	rr.WriteHeader(status)
	return rr.Result()
}

func TestTransportRoundTripError(t *testing.T) {
	stub := &stubRoundTripper{err: errors.New("boom")}
	tr := NewTransport(stub, false)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodPost, "https://example.org", http.NoBody)
	if err != nil {
		t.Fatal(err)
	}

	resp, err := tr.RoundTrip(req)
	if err == nil || err.Error() == "boom" {
		t.Fatalf("error = %v, want wrapped round trip error", err)
	}
	if resp != nil {
		t.Fatal("expected nil response")
	}
	if stub.calls != 1 {
		t.Fatalf("base round trips = %d, want 1", stub.calls)
	}
}

func TestTransportDefaultBase(t *testing.T) {
	tr := NewTransport(nil, false)
	if _, ok := tr.Base.(*http.Transport); !ok {
		t.Fatalf("Base = %T, want *http.Transport", tr.Base)
	}
	if tr.Base == http.DefaultTransport {
		t.Error("Base must be a clone, not http.DefaultTransport itself")
	}
}

func TestTransportTracingToggle(t *testing.T) {
	tests := map[string]struct {
		traceEnabled  bool
		wantSpanCount int
	}{
		"trace enabled":  {traceEnabled: true, wantSpanCount: 1},
		"trace disabled": {traceEnabled: false, wantSpanCount: 0},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			exporter := tracetest.NewInMemoryExporter()
			tp := sdktrace.NewTracerProvider(
				sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
			)

			prev := otel.GetTracerProvider()
			otel.SetTracerProvider(tp)
			t.Cleanup(func() {
				otel.SetTracerProvider(prev)
				_ = tp.Shutdown(t.Context())
			})

			stub := &stubRoundTripper{resp: stubResponse(http.StatusOK)}
			tr := NewTransport(stub, tc.traceEnabled)

			req, err := http.NewRequestWithContext(t.Context(), http.MethodPost,
				"https://example.com/api/v1/collections/docs/search", http.NoBody)
			if err != nil {
				t.Fatal(err)
			}
			resp, err := tr.RoundTrip(req)
			if err != nil {
				t.Fatalf("RoundTrip error: %v", err)
			}
			_ = resp.Body.Close()

			spans := exporter.GetSpans()
			if len(spans) != tc.wantSpanCount {
				t.Fatalf("ended spans = %d, want %d", len(spans), tc.wantSpanCount)
			}
			if tc.wantSpanCount == 0 {
				return
			}
			if want := "colbertdb POST /api/v1/collections/docs/search"; spans[0].Name != want {
				t.Errorf("span name = %q, want %q", spans[0].Name, want)
			}
			if spans[0].SpanKind != trace.SpanKindClient {
				t.Errorf("span kind = %v, want client", spans[0].SpanKind)
			}
		})
	}
}

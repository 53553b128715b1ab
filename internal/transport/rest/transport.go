package rest

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

// Transport implements [http.RoundTripper] with optional OpenTelemetry tracing.
type Transport struct {
	Base http.RoundTripper
	rt   http.RoundTripper
}

// NewTransport wraps base. If base is nil, a clone of http.DefaultTransport is used.
func NewTransport(base http.RoundTripper, traceEnabled bool) *Transport {
	if base == nil {
		base = http.DefaultTransport.(*http.Transport).Clone()
	}

	rt := base
	if traceEnabled {
		rt = otelhttp.NewTransport(base,
			otelhttp.WithTracerProvider(otel.GetTracerProvider()),
			otelhttp.WithMeterProvider(otel.GetMeterProvider()),
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return "colbertdb " + r.Method + " " + r.URL.Path
			}),
		)
	}

	return &Transport{Base: base, rt: rt}
}

// RoundTrip implements [http.RoundTripper].
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.rt.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}
	return resp, nil
}

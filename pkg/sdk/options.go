package colbertdb

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	apiKey    string
	storeName string

	transport http.RoundTripper
	tracing   bool
	userAgent string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithAPIKey sets the credential sent in the connect handshake.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = key
	})
}

// WithStoreName selects the store to connect to. Defaults to "default".
func WithStoreName(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.storeName = name
	})
}

// WithTransport sets the HTTP round tripper. The request timeout stays
// fixed at Timeout.
func WithTransport(rt http.RoundTripper) Option {
	return optionFunc(func(c *clientConfig) {
		c.transport = rt
	})
}

// WithTracing wraps the transport with OpenTelemetry instrumentation using
// the global tracer and meter providers.
func WithTracing() Option {
	return optionFunc(func(c *clientConfig) {
		c.tracing = true
	})
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return optionFunc(func(c *clientConfig) {
		c.userAgent = ua
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

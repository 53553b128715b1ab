package colbertdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kailas-cloud/colbertdb/internal/domain"
	"github.com/kailas-cloud/colbertdb/internal/transport/rest"
	"github.com/kailas-cloud/colbertdb/internal/version"
)

// DefaultStoreName is the store used when WithStoreName is not given.
const DefaultStoreName = "default"

// Timeout is the fixed per-request timeout.
const Timeout = rest.Timeout

// Client is a session with a ColBERT store server.
//
// The access token is obtained once by New and never changes afterwards,
// so a Client and the Collections bound to it are safe for concurrent use.
type Client struct {
	rest      *rest.Client
	apiKey    string
	storeName string
	token     string
	obs       *observer
}

// New creates a Client for the server at url and performs the connect
// handshake. It never returns a partially initialised Client: a rejected
// handshake yields an error matching ErrAuthentication.
func New(ctx context.Context, url string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		storeName: DefaultStoreName,
		userAgent: version.UserAgent(),
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("colbertdb: server URL required: %w", domain.ErrValidation)
	}
	if cfg.storeName == "" {
		return nil, fmt.Errorf("colbertdb: store name required: %w", domain.ErrValidation)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	c := &Client{
		rest: rest.New(rest.Config{
			BaseURL:   url,
			Transport: cfg.transport,
			Tracing:   cfg.tracing,
			UserAgent: cfg.userAgent,
		}),
		apiKey:    cfg.apiKey,
		storeName: cfg.storeName,
		obs:       obs,
	}
	if err := c.connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) connect(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("connect", start, err) }()

	token, err := c.rest.Connect(ctx, c.storeName, c.apiKey)
	if err != nil {
		return fmt.Errorf("colbertdb: connect to store %q: %w", c.storeName, err)
	}
	c.token = token
	return nil
}

// URL returns the server URL.
func (c *Client) URL() string { return c.rest.BaseURL() }

// StoreName returns the store this session is connected to.
func (c *Client) StoreName() string { return c.storeName }

// AccessToken returns the bearer token obtained by the connect handshake.
func (c *Client) AccessToken() string { return c.token }

// Get sends an authenticated GET to /api/v1/collections{path}.
func (c *Client) Get(ctx context.Context, path string, body any) (OperationResponse, error) {
	return c.do(ctx, http.MethodGet, path, body)
}

// Post sends an authenticated POST to /api/v1/collections{path}.
func (c *Client) Post(ctx context.Context, path string, body any) (OperationResponse, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Delete sends an authenticated DELETE to /api/v1/collections{path}.
func (c *Client) Delete(ctx context.Context, path string, body any) (OperationResponse, error) {
	return c.do(ctx, http.MethodDelete, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (OperationResponse, error) {
	if body == nil {
		body = struct{}{}
	}
	resp, err := c.rest.Do(ctx, method, path, c.token, body)
	if err != nil {
		return nil, err //nolint:wrapcheck // callers add the operation name
	}
	return OperationResponse(resp), nil
}

// Collection returns a handle for name without contacting the server.
func (c *Client) Collection(name string) *Collection {
	return &Collection{name: name, client: c}
}

// IsTimeout reports whether err was caused by the request timeout or a
// context deadline.
func IsTimeout(err error) bool {
	var te *TransportError
	if errors.As(err, &te) && te.Err != nil {
		return rest.IsTimeout(te.Err)
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// Package rest implements the HTTP/JSON wire protocol of the ColBERT store:
// the connect handshake and the authenticated collection verbs.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kailas-cloud/colbertdb/internal/domain"
)

// Timeout is the fixed per-request timeout.
const Timeout = 60 * time.Second

const (
	connectPrefix     = "/api/v1/client/connect/"
	collectionsPrefix = "/api/v1/collections"
	apiKeyHeader      = "x-api-key"
)

// Config holds the transport settings.
type Config struct {
	BaseURL   string
	Transport http.RoundTripper // nil = http.DefaultTransport
	Tracing   bool
	UserAgent string
}

// Client sends requests to a single store server. Safe for concurrent use.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
}

// New creates a Client. The timeout is always Timeout regardless of Transport.
func New(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Transport: NewTransport(cfg.Transport, cfg.Tracing),
			Timeout:   Timeout,
		},
		userAgent: cfg.UserAgent,
	}
}

// BaseURL returns the server URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

type connectResponse struct {
	AccessToken string `json:"access_token"`
}

// Connect performs the handshake for storeName and returns the access token.
// A non-200 status or a missing token yields *domain.AuthenticationError.
func (c *Client) Connect(ctx context.Context, storeName, apiKey string) (string, error) {
	path := connectPrefix + url.PathEscape(storeName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build connect request: %w", err)
	}
	if apiKey != "" {
		req.Header.Set(apiKeyHeader, apiKey)
	}
	c.setCommonHeaders(req)

	status, body, err := c.send(req)
	if err != nil {
		return "", &domain.TransportError{Method: http.MethodPost, Path: path, Err: err}
	}
	if status != http.StatusOK {
		return "", &domain.AuthenticationError{StatusCode: status, Detail: extractDetail(body)}
	}

	var resp connectResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &domain.AuthenticationError{
			StatusCode: status,
			Detail:     "malformed connect response: " + err.Error(),
		}
	}
	if resp.AccessToken == "" {
		return "", &domain.AuthenticationError{StatusCode: status, Detail: "no access token in connect response"}
	}
	return resp.AccessToken, nil
}

// Do sends an authenticated request to {base}/api/v1/collections{path}
// with body encoded as JSON and returns the decoded JSON object.
// Any failure, including a non-2xx status, is a *domain.TransportError.
func (c *Client) Do(
	ctx context.Context, method, path, token string, body any,
) (map[string]any, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
	}

	fullPath := collectionsPrefix + path
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+fullPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	c.setCommonHeaders(req)

	status, respBody, err := c.send(req)
	if err != nil {
		return nil, &domain.TransportError{Method: method, Path: fullPath, Err: err}
	}
	if status < 200 || status > 299 {
		return nil, &domain.TransportError{Method: method, Path: fullPath, StatusCode: status, Body: respBody}
	}

	out := map[string]any{}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, &domain.TransportError{
			Method:     method,
			Path:       fullPath,
			StatusCode: status,
			Body:       respBody,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	return out, nil
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}

// send executes req and reads the whole body.
func (c *Client) send(req *http.Request) (int, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err //nolint:wrapcheck // wrapped by the caller into TransportError
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

// extractDetail returns the "detail" field of a JSON error body (FastAPI
// error format), falling back to the raw body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) != nil || len(parsed.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}
	var s string
	if err := json.Unmarshal(parsed.Detail, &s); err == nil {
		return s
	}
	return string(parsed.Detail)
}

// IsTimeout reports whether err was caused by the request deadline.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

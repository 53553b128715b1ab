package colbertdb

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const testToken = "TOKEN"

// recordedRequest is one request seen by fakeServer.
type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   map[string]any
}

// fakeServer answers the connect handshake with testToken and delegates every
// other request to handleFn, recording it first.
type fakeServer struct {
	*httptest.Server

	connectFn func(w http.ResponseWriter, r *http.Request)
	handleFn  func(w http.ResponseWriter, req recordedRequest)

	mu       sync.Mutex
	connects []recordedRequest
	requests []recordedRequest
}

func newFakeServer(t *testing.T, handle func(w http.ResponseWriter, req recordedRequest)) *fakeServer {
	t.Helper()
	fs := &fakeServer{handleFn: handle}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.serve))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) serve(w http.ResponseWriter, r *http.Request) {
	rec := recordedRequest{Method: r.Method, Path: r.URL.EscapedPath(), Header: r.Header.Clone()}
	raw, _ := io.ReadAll(r.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &rec.Body)
	}

	if strings.HasPrefix(rec.Path, "/api/v1/client/connect/") {
		fs.mu.Lock()
		fs.connects = append(fs.connects, rec)
		fs.mu.Unlock()
		if fs.connectFn != nil {
			fs.connectFn(w, r)
			return
		}
		writeTestJSON(w, http.StatusOK, map[string]any{"access_token": testToken})
		return
	}

	fs.mu.Lock()
	fs.requests = append(fs.requests, rec)
	fs.mu.Unlock()
	if fs.handleFn == nil {
		writeTestJSON(w, http.StatusOK, map[string]any{"status": "success"})
		return
	}
	fs.handleFn(w, rec)
}

// apiRequests returns the recorded non-connect requests.
func (fs *fakeServer) apiRequests() []recordedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]recordedRequest(nil), fs.requests...)
}

func writeTestJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// testClient connects to fs and fails the test on error.
func testClient(t *testing.T, fs *fakeServer, opts ...Option) *Client {
	t.Helper()
	c, err := New(context.Background(), fs.URL, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// onlyRequest asserts that exactly one API request was recorded and returns it.
func onlyRequest(t *testing.T, fs *fakeServer) recordedRequest {
	t.Helper()
	reqs := fs.apiRequests()
	if len(reqs) != 1 {
		t.Fatalf("api requests = %d, want 1", len(reqs))
	}
	return reqs[0]
}

// fakeSource implements SourceDocument.
type fakeSource struct {
	id   string
	text string
	meta map[string]any
}

func (f fakeSource) ID() string               { return f.id }
func (f fakeSource) Text() string             { return f.text }
func (f fakeSource) Metadata() map[string]any { return f.meta }

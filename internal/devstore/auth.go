package devstore

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// tokenIssuer checks API keys and tracks issued bearer tokens.
// If no keys are configured, any key (or none) is accepted.
type tokenIssuer struct {
	validKeys map[string]struct{}

	mu     sync.RWMutex
	tokens map[string]string // token -> store name
}

func newTokenIssuer(apiKeys []string) *tokenIssuer {
	valid := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			valid[k] = struct{}{}
		}
	}
	return &tokenIssuer{validKeys: valid, tokens: make(map[string]string)}
}

// issue returns a new token for store, or false if apiKey is rejected.
func (t *tokenIssuer) issue(apiKey, store string) (string, bool) {
	if len(t.validKeys) > 0 {
		if _, ok := t.validKeys[apiKey]; !ok {
			return "", false
		}
	}
	token := uuid.NewString()
	t.mu.Lock()
	t.tokens[token] = store
	t.mu.Unlock()
	return token, true
}

func (t *tokenIssuer) lookup(token string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	store, ok := t.tokens[token]
	return store, ok
}

type storeCtxKey struct{}

// storeFromContext returns the store bound to the request's bearer token.
func storeFromContext(ctx context.Context) string {
	s, _ := ctx.Value(storeCtxKey{}).(string)
	return s
}

// bearerAuth validates tokens issued by the connect handshake and binds the
// token's store to the request context.
func bearerAuth(issuer *tokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			store, ok := issuer.lookup(auth[len(bearerPrefix):])
			if !ok {
				writeError(w, http.StatusUnauthorized, "invalid access token")
				return
			}

			ctx := context.WithValue(r.Context(), storeCtxKey{}, store)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package devstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/colbertdb/internal/domain"
	logpkg "github.com/kailas-cloud/colbertdb/internal/logger"
	"github.com/kailas-cloud/colbertdb/internal/metrics"
)

const defaultK = 10

// Config holds the dev store settings.
type Config struct {
	APIKeys  []string // empty = any key accepted
	DefaultK int      // results when the request omits k
	Logger   *zap.Logger
	Registry *prometheus.Registry // nil = metrics disabled
}

// Server serves the store HTTP API from memory.
type Server struct {
	store    *Store
	issuer   *tokenIssuer
	defaultK int
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics.HTTPMetrics
}

// NewServer creates a dev store server.
func NewServer(cfg Config) (*Server, error) {
	s := &Server{
		store:    NewStore(),
		issuer:   newTokenIssuer(cfg.APIKeys),
		defaultK: cfg.DefaultK,
		logger:   cfg.Logger,
		registry: cfg.Registry,
	}
	if s.defaultK <= 0 {
		s.defaultK = defaultK
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if cfg.Registry != nil {
		m, err := metrics.NewHTTPMetrics(cfg.Registry)
		if err != nil {
			return nil, fmt.Errorf("devstore: %w", err)
		}
		s.metrics = m
	}
	return s, nil
}

// Store returns the backing in-memory store.
func (s *Server) Store() *Store { return s.store }

// Handler builds the HTTP router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware())
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	r.Post("/api/v1/client/connect/{store}", s.connect)
	r.Route("/api/v1/collections", func(r chi.Router) {
		r.Use(bearerAuth(s.issuer))
		r.Get("/", s.listCollections)
		r.Post("/", s.createCollection)
		r.Get("/{name}", s.getCollection)
		r.Delete("/{name}", s.deleteCollection)
		r.Post("/{name}/search", s.searchCollection)
		r.Post("/{name}/delete", s.deleteDocuments)
		r.Post("/{name}/documents", s.addDocuments)
	})
	return r
}

func (s *Server) connect(w http.ResponseWriter, r *http.Request) {
	store, err := pathParam(r, "store")
	if err != nil || store == "" {
		writeError(w, http.StatusBadRequest, "invalid store name")
		return
	}
	token, ok := s.issuer.issue(r.Header.Get("x-api-key"), store)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid API key")
		return
	}
	logpkg.FromContext(r.Context()).Debug("client connected", zap.String("store", store))
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (s *Server) listCollections(w http.ResponseWriter, r *http.Request) {
	names := s.store.List(storeFromContext(r.Context()))
	writeJSON(w, http.StatusOK, domain.ListCollectionsResponse{Collections: names})
}

func (s *Server) createCollection(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "Collection name is required")
		return
	}

	ids, err := s.store.Create(storeFromContext(r.Context()), req)
	switch {
	case errors.Is(err, errCollectionExists):
		writeError(w, http.StatusConflict, fmt.Sprintf("Collection '%s' already exists", req.Name))
		return
	case errors.Is(err, errEmptyDocuments):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	options := req.Options
	if options == nil {
		options = domain.CollectionOptions{}
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"name":           req.Name,
		"document_count": len(ids),
		"document_ids":   ids,
		"options":        options,
	})
}

func (s *Server) getCollection(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	count, ok := s.store.Count(storeFromContext(r.Context()), name)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"name": name, "exists": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":           name,
		"exists":         true,
		"document_count": count,
	})
}

func (s *Server) deleteCollection(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.Drop(storeFromContext(r.Context()), name); err != nil {
		s.handleStoreError(w, name, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "name": name})
}

func (s *Server) searchCollection(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req domain.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body: "+err.Error())
		return
	}
	k := s.defaultK
	if req.K != nil {
		if *req.K <= 0 {
			writeError(w, http.StatusUnprocessableEntity, "k must be positive")
			return
		}
		k = *req.K
	}

	results, err := s.store.Search(storeFromContext(r.Context()), name, req.Query, k)
	if err != nil {
		s.handleStoreError(w, name, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.SearchResponse{Documents: results})
}

func (s *Server) deleteDocuments(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req domain.DeleteDocumentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body: "+err.Error())
		return
	}
	deleted, err := s.store.DeleteDocuments(storeFromContext(r.Context()), name, req.DocumentIDs)
	if err != nil {
		s.handleStoreError(w, name, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "deleted_ids": deleted})
}

func (s *Server) addDocuments(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req domain.AddDocumentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body: "+err.Error())
		return
	}
	ids, err := s.store.Add(storeFromContext(r.Context()), name, req.Documents)
	if err != nil {
		s.handleStoreError(w, name, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "document_ids": ids})
}

func (s *Server) handleStoreError(w http.ResponseWriter, name string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Collection '%s' not found", name))
		return
	}
	s.logger.Error("store operation failed", zap.String("collection", name), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

// pathParam returns a decoded chi URL parameter. chi matches on RawPath when
// it is set, leaving the parameter escaped; otherwise it is already decoded.
func pathParam(r *http.Request, key string) (string, error) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v, nil
	}
	v, err := url.PathUnescape(v)
	if err != nil {
		return "", fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a FastAPI-style {"detail": "..."} body.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

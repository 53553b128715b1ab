package colbertdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/kailas-cloud/colbertdb/internal/domain"
)

// CreateCollection creates a collection seeded with documents and returns a
// handle bound to this client. At least one document is required; an empty
// slice fails with ErrValidation before any request is sent.
func (c *Client) CreateCollection(
	ctx context.Context, name string, documents []Document, opts ...CollectionOption,
) (_ *Collection, err error) {
	start := time.Now()
	defer func() { c.obs.observe("collection.create", start, err) }()

	cfg := &collectionConfig{options: domain.CollectionOptions{}}
	for _, o := range opts {
		o.applyCollection(cfg)
	}

	req, err := domain.NewCreateCollectionRequest(name, toInternalDocuments(documents), cfg.options)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	if _, err = c.Post(ctx, "/", req); err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return c.Collection(name), nil
}

// ListCollections returns the collection names in server order.
func (c *Client) ListCollections(ctx context.Context) (_ []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("collection.list", start, err) }()

	resp, err := c.Get(ctx, "/", nil)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	var out domain.ListCollectionsResponse
	if err = resp.decodeRequired("collections", &out.Collections); err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	if out.Collections == nil {
		out.Collections = []string{}
	}
	return out.Collections, nil
}

// LoadCollection returns a handle for an existing collection. It only checks
// the server's existence flag; a missing or false flag fails with ErrNotFound.
func (c *Client) LoadCollection(ctx context.Context, name string) (_ *Collection, err error) {
	start := time.Now()
	defer func() { c.obs.observe("collection.load", start, err) }()

	resp, err := c.Get(ctx, collectionPath(name), nil)
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	var status domain.CollectionStatus
	if err = resp.decode(&status); err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	if !status.Exists {
		return nil, fmt.Errorf("load collection: %w", &domain.NotFoundError{Collection: name})
	}
	return c.Collection(name), nil
}

// SearchCollection queries a collection and returns the raw response.
// Use Collection.Search for typed results.
func (c *Client) SearchCollection(
	ctx context.Context, name, query string, opts ...SearchOption,
) (_ OperationResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("collection.search", start, err) }()

	cfg := &searchConfig{}
	for _, o := range opts {
		o.applySearch(cfg)
	}

	resp, err := c.Post(ctx, collectionPath(name)+"/search", domain.NewSearchRequest(query, cfg.k))
	if err != nil {
		return nil, fmt.Errorf("search collection: %w", err)
	}
	return resp, nil
}

// DeleteDocuments removes documents by ID from a collection.
func (c *Client) DeleteDocuments(
	ctx context.Context, name string, documentIDs []string,
) (_ OperationResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("documents.delete", start, err) }()

	resp, err := c.Post(ctx, collectionPath(name)+"/delete", domain.NewDeleteDocumentsRequest(documentIDs))
	if err != nil {
		return nil, fmt.Errorf("delete documents: %w", err)
	}
	return resp, nil
}

// AddToCollection adds documents to a collection.
func (c *Client) AddToCollection(
	ctx context.Context, name string, documents []Document,
) (_ OperationResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("documents.add", start, err) }()

	resp, err := c.Post(ctx, collectionPath(name)+"/documents",
		domain.NewAddDocumentsRequest(toInternalDocuments(documents)))
	if err != nil {
		return nil, fmt.Errorf("add documents: %w", err)
	}
	return resp, nil
}

// DeleteCollection removes a collection and all of its documents.
func (c *Client) DeleteCollection(ctx context.Context, name string) (_ OperationResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("collection.delete", start, err) }()

	resp, err := c.Delete(ctx, collectionPath(name), nil)
	if err != nil {
		return nil, fmt.Errorf("delete collection: %w", err)
	}
	return resp, nil
}

func collectionPath(name string) string {
	return "/" + url.PathEscape(name)
}

// decode converts the generic response into a typed value.
func (r OperationResponse) decode(v any) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("re-encode response: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeRequired decodes a single top-level field, failing when it is absent.
func (r OperationResponse) decodeRequired(field string, v any) error {
	val, ok := r[field]
	if !ok {
		return fmt.Errorf("decode response: missing %q field", field)
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("re-encode %q: %w", field, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %q: %w", field, err)
	}
	return nil
}

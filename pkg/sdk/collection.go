package colbertdb

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/colbertdb/internal/domain"
)

// Collection is a lightweight handle to a server-side collection.
// It holds only the name and a reference to the owning Client; no document
// data is cached. Delete does not invalidate the handle: calls issued after
// it simply fail on the server.
type Collection struct {
	name   string
	client *Client
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Client returns the owning client (the same pointer, never a copy).
func (c *Collection) Client() *Client { return c.client }

// Search queries the collection and returns typed results in rank order.
func (c *Collection) Search(ctx context.Context, query string, opts ...SearchOption) (SearchResponse, error) {
	resp, err := c.client.SearchCollection(ctx, c.name, query, opts...)
	if err != nil {
		return SearchResponse{}, err
	}
	var out domain.SearchResponse
	if err := resp.decodeRequired("documents", &out.Documents); err != nil {
		return SearchResponse{}, fmt.Errorf("search collection: %w", err)
	}
	return fromInternalSearchResponse(out), nil
}

// AddDocuments adds documents and returns the same handle for chaining.
// The server response is discarded; use Client.AddToCollection to keep it.
func (c *Collection) AddDocuments(ctx context.Context, documents []Document) (*Collection, error) {
	if _, err := c.client.AddToCollection(ctx, c.name, documents); err != nil {
		return c, err
	}
	return c, nil
}

// DeleteDocuments removes documents by ID and returns the same handle.
// The server response is discarded; use Client.DeleteDocuments to keep it.
func (c *Collection) DeleteDocuments(ctx context.Context, documentIDs []string) (*Collection, error) {
	if _, err := c.client.DeleteDocuments(ctx, c.name, documentIDs); err != nil {
		return c, err
	}
	return c, nil
}

// Delete removes the collection on the server and returns its response.
func (c *Collection) Delete(ctx context.Context) (OperationResponse, error) {
	return c.client.DeleteCollection(ctx, c.name)
}

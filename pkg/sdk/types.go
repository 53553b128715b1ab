package colbertdb

import "github.com/kailas-cloud/colbertdb/internal/domain"

// Document is a unit of text submitted to a collection.
type Document struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

// SearchResult is a single search hit.
type SearchResult struct {
	DocumentID string         `json:"document_id"`
	PassageID  int            `json:"passage_id"`
	Content    string         `json:"content"`
	Score      float64        `json:"score"`
	Rank       int            `json:"rank"`
	Metadata   map[string]any `json:"document_metadata,omitempty"`
}

// SearchResponse holds search hits in server relevance order.
type SearchResponse struct {
	Documents []SearchResult
}

// DocumentIDs returns the document IDs of all hits, in order.
func (r SearchResponse) DocumentIDs() []string {
	ids := make([]string, len(r.Documents))
	for i, d := range r.Documents {
		ids[i] = d.DocumentID
	}
	return ids
}

// OperationResponse is the decoded JSON object returned by the server.
// Its fields are server-defined.
type OperationResponse map[string]any

// CollectionOptions are server-defined tuning knobs sent as "options" when a
// collection is created.
type CollectionOptions = domain.CollectionOptions

package domain

// SearchRequest is the body of POST /{name}/search.
// K is omitted when nil so the server applies its default limit.
type SearchRequest struct {
	Query string `json:"query"`
	K     *int   `json:"k,omitempty"`
}

// NewSearchRequest builds a search request. k <= 0 means "server default".
func NewSearchRequest(query string, k int) SearchRequest {
	req := SearchRequest{Query: query}
	if k > 0 {
		req.K = &k
	}
	return req
}

// SearchResult is a single search hit, in server rank order.
type SearchResult struct {
	DocumentID string         `json:"document_id"`
	PassageID  int            `json:"passage_id"`
	Content    string         `json:"content"`
	Score      float64        `json:"score"`
	Rank       int            `json:"rank"`
	Metadata   map[string]any `json:"document_metadata,omitempty"`
}

// SearchResponse is the body returned by POST /{name}/search.
type SearchResponse struct {
	Documents []SearchResult `json:"documents"`
}

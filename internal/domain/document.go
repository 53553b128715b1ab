package domain

import "maps"

// Document is a unit of text submitted to a collection.
type Document struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

// Clone returns a copy with an independent top-level metadata map.
func (d Document) Clone() Document {
	return Document{Content: d.Content, Metadata: maps.Clone(d.Metadata)}
}

// AddDocumentsRequest is the body of POST /{name}/documents.
type AddDocumentsRequest struct {
	Documents []Document `json:"documents"`
}

// NewAddDocumentsRequest forwards documents unmodified.
// A nil slice is encoded as an empty array, never as null.
func NewAddDocumentsRequest(docs []Document) AddDocumentsRequest {
	if docs == nil {
		docs = []Document{}
	}
	return AddDocumentsRequest{Documents: docs}
}

// DeleteDocumentsRequest is the body of POST /{name}/delete.
type DeleteDocumentsRequest struct {
	DocumentIDs []string `json:"document_ids"`
}

// NewDeleteDocumentsRequest forwards IDs unmodified.
func NewDeleteDocumentsRequest(ids []string) DeleteDocumentsRequest {
	if ids == nil {
		ids = []string{}
	}
	return DeleteDocumentsRequest{DocumentIDs: ids}
}

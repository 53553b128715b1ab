package domain

import "maps"

// CollectionOptions are server-defined tuning knobs, passed through opaquely.
type CollectionOptions map[string]any

// CreateCollectionRequest is the body of POST /.
type CreateCollectionRequest struct {
	Name      string            `json:"name"`
	Documents []Document        `json:"documents"`
	Options   CollectionOptions `json:"options"`
}

// NewCreateCollectionRequest validates and builds a create request.
// At least one document is required. Nil options encode as {}.
func NewCreateCollectionRequest(
	name string, docs []Document, opts CollectionOptions,
) (CreateCollectionRequest, error) {
	if name == "" {
		return CreateCollectionRequest{}, NewValidationError("collection name is required")
	}
	if len(docs) == 0 {
		return CreateCollectionRequest{}, NewValidationError("at least one document must be provided")
	}
	if opts == nil {
		opts = CollectionOptions{}
	}
	return CreateCollectionRequest{
		Name:      name,
		Documents: docs,
		Options:   maps.Clone(opts),
	}, nil
}

// ListCollectionsResponse is the body returned by GET /.
type ListCollectionsResponse struct {
	Collections []string `json:"collections"`
}

// CollectionStatus is the body returned by GET /{name}.
// Fields other than Exists are server-defined.
type CollectionStatus struct {
	Exists bool `json:"exists"`
}

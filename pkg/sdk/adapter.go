package colbertdb

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"

	"github.com/kailas-cloud/colbertdb/internal/domain"
)

// SourceMetadataKey is the metadata key that carries a source document ID.
const SourceMetadataKey = "source"

// SourceDocument is a document produced by an external loader.
type SourceDocument interface {
	ID() string
	Text() string
	Metadata() map[string]any
}

// FromSourceDocuments converts loader documents into Documents, copying the
// text into Content and the source ID into Metadata["source"]. The loader's
// metadata maps are not modified.
func FromSourceDocuments(docs []SourceDocument) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		meta := maps.Clone(d.Metadata())
		if meta == nil {
			meta = make(map[string]any, 1)
		}
		meta[SourceMetadataKey] = d.ID()
		out = append(out, Document{Content: d.Text(), Metadata: meta})
	}
	return out
}

// LoadDocuments decodes a JSON array of {"content", "metadata"} objects.
// An empty array fails with ErrValidation.
func LoadDocuments(r io.Reader) ([]Document, error) {
	var docs []domain.Document
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("load documents: %w", domain.NewValidationError("no documents"))
	}
	return fromInternalDocuments(docs), nil
}

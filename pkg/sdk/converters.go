package colbertdb

import "github.com/kailas-cloud/colbertdb/internal/domain"

func toInternalDocuments(docs []Document) []domain.Document {
	if docs == nil {
		return nil
	}
	out := make([]domain.Document, len(docs))
	for i, d := range docs {
		out[i] = domain.Document{Content: d.Content, Metadata: d.Metadata}
	}
	return out
}

func fromInternalDocuments(docs []domain.Document) []Document {
	out := make([]Document, len(docs))
	for i, d := range docs {
		out[i] = Document{Content: d.Content, Metadata: d.Metadata}
	}
	return out
}

func fromInternalSearchResponse(r domain.SearchResponse) SearchResponse {
	out := make([]SearchResult, len(r.Documents))
	for i, d := range r.Documents {
		out[i] = SearchResult{
			DocumentID: d.DocumentID,
			PassageID:  d.PassageID,
			Content:    d.Content,
			Score:      d.Score,
			Rank:       d.Rank,
			Metadata:   d.Metadata,
		}
	}
	return SearchResponse{Documents: out}
}

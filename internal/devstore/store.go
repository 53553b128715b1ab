// Package devstore is an in-memory implementation of the ColBERT store HTTP
// API for local development and tests. Ranking is naive term overlap; it is
// not a search engine.
package devstore

import (
	"errors"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/kailas-cloud/colbertdb/internal/domain"
)

var (
	errCollectionExists = errors.New("collection already exists")
	errEmptyDocuments   = errors.New("at least one document must be provided")
)

type storedDocument struct {
	id       string
	seq      int
	content  string
	metadata map[string]any
	terms    map[string]int
}

type collection struct {
	name    string
	options domain.CollectionOptions
	docs    map[string]*storedDocument
	nextSeq int
}

func (c *collection) add(docs []domain.Document) []string {
	ids := make([]string, len(docs))
	for i, d := range docs {
		id := uuid.NewString()
		c.docs[id] = &storedDocument{
			id:       id,
			seq:      c.nextSeq,
			content:  d.Content,
			metadata: d.Clone().Metadata,
			terms:    termFrequencies(d.Content),
		}
		c.nextSeq++
		ids[i] = id
	}
	return ids
}

// Store holds collections for any number of named stores.
type Store struct {
	mu     sync.RWMutex
	stores map[string]map[string]*collection
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{stores: make(map[string]map[string]*collection)}
}

func (s *Store) collections(store string) map[string]*collection {
	cols, ok := s.stores[store]
	if !ok {
		cols = make(map[string]*collection)
		s.stores[store] = cols
	}
	return cols
}

// Create adds a collection seeded with docs and returns the new document IDs.
func (s *Store) Create(store string, req domain.CreateCollectionRequest) ([]string, error) {
	if len(req.Documents) == 0 {
		return nil, errEmptyDocuments
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cols := s.collections(store)
	if _, ok := cols[req.Name]; ok {
		return nil, errCollectionExists
	}
	col := &collection{
		name:    req.Name,
		options: req.Options,
		docs:    make(map[string]*storedDocument, len(req.Documents)),
	}
	cols[req.Name] = col
	return col.add(req.Documents), nil
}

// List returns collection names sorted alphabetically.
func (s *Store) List(store string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.stores[store]))
	for name := range s.stores[store] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of documents in a collection.
func (s *Store) Count(store, name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.stores[store][name]
	if !ok {
		return 0, false
	}
	return len(col.docs), true
}

// Add appends documents to an existing collection.
func (s *Store) Add(store, name string, docs []domain.Document) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.stores[store][name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return col.add(docs), nil
}

// DeleteDocuments removes documents by ID and returns the IDs that existed.
func (s *Store) DeleteDocuments(store, name string, ids []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.stores[store][name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	deleted := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := col.docs[id]; ok {
			delete(col.docs, id)
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}

// Drop removes a collection.
func (s *Store) Drop(store, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stores[store][name]; !ok {
		return domain.ErrNotFound
	}
	delete(s.stores[store], name)
	return nil
}

// Search ranks the collection's documents against query and returns at most k.
func (s *Store) Search(store, name, query string, k int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.stores[store][name]
	if !ok {
		return nil, domain.ErrNotFound
	}

	queryTerms := termFrequencies(query)
	type hit struct {
		doc   *storedDocument
		score float64
	}
	hits := make([]hit, 0, len(col.docs))
	for _, d := range col.docs {
		if sc := score(queryTerms, d.terms); sc > 0 {
			hits = append(hits, hit{doc: d, score: sc})
		}
	}
	slices.SortFunc(hits, func(a, b hit) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return a.doc.seq - b.doc.seq
		}
	})
	if len(hits) > k {
		hits = hits[:k]
	}

	out := make([]domain.SearchResult, len(hits))
	for i, h := range hits {
		out[i] = domain.SearchResult{
			DocumentID: h.doc.id,
			Content:    h.doc.content,
			Score:      h.score,
			Rank:       i + 1,
			Metadata:   h.doc.metadata,
		}
	}
	return out, nil
}

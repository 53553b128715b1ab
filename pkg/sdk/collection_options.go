package colbertdb

import "github.com/kailas-cloud/colbertdb/internal/domain"

// CollectionOption configures collection creation.
type CollectionOption interface {
	applyCollection(*collectionConfig)
}

// collectionOptionFunc adapts a function to the CollectionOption interface.
type collectionOptionFunc func(*collectionConfig)

func (f collectionOptionFunc) applyCollection(c *collectionConfig) { f(c) }

type collectionConfig struct {
	options domain.CollectionOptions
}

// WithCollectionOption sets a server-side tuning knob. Keys and values are
// passed through unchanged in the "options" object.
func WithCollectionOption(key string, value any) CollectionOption {
	return collectionOptionFunc(func(c *collectionConfig) {
		c.options[key] = value
	})
}

// WithCollectionOptions merges a set of tuning knobs.
func WithCollectionOptions(opts CollectionOptions) CollectionOption {
	return collectionOptionFunc(func(c *collectionConfig) {
		for k, v := range opts {
			c.options[k] = v
		}
	})
}

// SearchOption configures a search request.
type SearchOption interface {
	applySearch(*searchConfig)
}

type searchOptionFunc func(*searchConfig)

func (f searchOptionFunc) applySearch(c *searchConfig) { f(c) }

type searchConfig struct {
	k int
}

// WithK limits the number of results. Without it the server applies its
// default limit.
func WithK(k int) SearchOption {
	return searchOptionFunc(func(c *searchConfig) {
		c.k = k
	})
}

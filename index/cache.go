package index

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedIndex decorates an Index with an LRU cache of recent query
// results, for callers that repeat the same queries (an interactive
// search prompt, a batch of near-duplicate requests) against a large,
// immutable index. The underlying Index is never mutated; the cache
// only ever serves or populates itself from FindPositions.
type CachedIndex struct {
	ix    *Index
	cache *lru.Cache[string, []uint32]
}

// NewCachedIndex wraps ix with an LRU cache holding up to size distinct
// queries' results.
func NewCachedIndex(ix *Index, size int) (*CachedIndex, error) {
	cache, err := lru.New[string, []uint32](size)
	if err != nil {
		return nil, err
	}
	return &CachedIndex{ix: ix, cache: cache}, nil
}

// Index returns the underlying, undecorated Index.
func (c *CachedIndex) Index() *Index { return c.ix }

// FindPositions behaves like Index.FindPositions, serving from cache
// when query was looked up before.
func (c *CachedIndex) FindPositions(query []byte) []uint32 {
	key := string(query)
	if hit, ok := c.cache.Get(key); ok {
		return hit
	}
	result := c.ix.FindPositions(query)
	c.cache.Add(key, result)
	return result
}

// Freq behaves like Index.Freq, served through the same cache as
// FindPositions.
func (c *CachedIndex) Freq(query []byte) int {
	return len(c.FindPositions(query))
}

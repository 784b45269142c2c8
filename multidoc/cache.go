package multidoc

import (
	"iter"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DocHit is one materialized (doc_id, pos_in_doc) result from
// DocPositions, the unit CachedMultiDocIndex stores per cached query.
type DocHit struct {
	Doc int
	Pos uint32
}

// CachedMultiDocIndex decorates a MultiDocIndex with an LRU cache of
// recent DocPositions results, the multidoc equivalent of
// index.CachedIndex. DocPositions is lazy by nature (it returns an
// iter.Seq2), so a query's hits are fully materialized into a []DocHit
// before being cached; repeat queries replay from that slice instead of
// re-walking the underlying Index.
type CachedMultiDocIndex struct {
	m     *MultiDocIndex
	cache *lru.Cache[string, []DocHit]
}

// NewCachedMultiDocIndex wraps m with an LRU cache holding up to size
// distinct queries' materialized results.
func NewCachedMultiDocIndex(m *MultiDocIndex, size int) (*CachedMultiDocIndex, error) {
	cache, err := lru.New[string, []DocHit](size)
	if err != nil {
		return nil, err
	}
	return &CachedMultiDocIndex{m: m, cache: cache}, nil
}

// MultiDocIndex returns the underlying, undecorated MultiDocIndex.
func (c *CachedMultiDocIndex) MultiDocIndex() *MultiDocIndex { return c.m }

// DocPositions behaves like MultiDocIndex.DocPositions, serving from
// cache when query was looked up before. The returned sequence replays
// the materialized hits in the same order a fresh call would yield.
func (c *CachedMultiDocIndex) DocPositions(query []byte) iter.Seq2[int, uint32] {
	key := string(query)
	hits, ok := c.cache.Get(key)
	if !ok {
		for doc, pos := range c.m.DocPositions(query) {
			hits = append(hits, DocHit{Doc: doc, Pos: pos})
		}
		c.cache.Add(key, hits)
	}

	return func(yield func(int, uint32) bool) {
		for _, h := range hits {
			if !yield(h.Doc, h.Pos) {
				return
			}
		}
	}
}

// Freq behaves like MultiDocIndex.Freq; it is not itself cached since it
// delegates to the underlying Index's already-indexed suffix range, not
// to the work DocPositions caches (materializing and filtering hits).
func (c *CachedMultiDocIndex) Freq(query []byte) int {
	return c.m.Freq(query)
}

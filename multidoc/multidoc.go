// Package multidoc superimposes a document partition, derived from a
// single-character delimiter, onto an Index: it maps absolute text
// positions to (doc_id, intra-document position) pairs and suppresses
// matches that straddle a document boundary.
package multidoc

import (
	"bytes"
	"errors"
	"iter"
	"sort"
	"unicode/utf8"

	"github.com/ashgrove-labs/subix/index"
)

// ErrEmptyDelimiter is returned when the delimiter encodes to zero bytes.
var ErrEmptyDelimiter = errors.New("subix/multidoc: delimiter must not be empty")

// ErrMultiCodePointDelim is returned when a delimiter byte sequence
// decodes to anything other than exactly one code point.
var ErrMultiCodePointDelim = errors.New("subix/multidoc: delimiter must be exactly one code point")

// MultiDocIndex wraps an Index plus a sorted table of document-start
// offsets and the delimiter that separates them.
type MultiDocIndex struct {
	ix      *index.Index
	offsets []uint32
	delim   []byte
}

// New partitions ix's text into documents separated by delim and
// returns the resulting MultiDocIndex. delim must encode to exactly one
// Unicode code point.
func New(ix *index.Index, delim rune) (*MultiDocIndex, error) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], delim)
	return newFromDelimBytes(ix, buf[:n])
}

func newFromDelimBytes(ix *index.Index, delim []byte) (*MultiDocIndex, error) {
	if len(delim) == 0 {
		return nil, ErrEmptyDelimiter
	}
	if r, size := utf8.DecodeRune(delim); (r == utf8.RuneError && size <= 1) || size != len(delim) {
		return nil, ErrMultiCodePointDelim
	}

	hits := ix.FindPositions(delim)
	positions := append([]uint32(nil), hits...)
	sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })

	offsets := make([]uint32, 0, len(positions)+1)
	offsets = append(offsets, 0)
	for _, p := range positions {
		offsets = append(offsets, p+uint32(len(delim)))
	}

	return &MultiDocIndex{ix: ix, offsets: offsets, delim: delim}, nil
}

// FromParts binds an Index, a pre-built offsets table, and delimiter
// bytes directly, without recomputing the partition — the path
// persistence uses to reconstruct a MultiDocIndex from decoded or
// memory-mapped parts.
func FromParts(ix *index.Index, offsets []uint32, delim []byte) (*MultiDocIndex, error) {
	if len(delim) == 0 {
		return nil, ErrEmptyDelimiter
	}
	if r, size := utf8.DecodeRune(delim); (r == utf8.RuneError && size <= 1) || size != len(delim) {
		return nil, ErrMultiCodePointDelim
	}
	return &MultiDocIndex{ix: ix, offsets: offsets, delim: delim}, nil
}

// Index returns the underlying single-text Index.
func (m *MultiDocIndex) Index() *index.Index { return m.ix }

// Offsets returns the document-start offset table.
func (m *MultiDocIndex) Offsets() []uint32 { return m.offsets }

// DelimiterBytes returns the raw UTF-8 bytes of the delimiter.
func (m *MultiDocIndex) DelimiterBytes() []byte { return m.delim }

// NumDocs returns the number of documents in the partition.
func (m *MultiDocIndex) NumDocs() int { return len(m.offsets) }

// Doc returns the byte slice of document id, or nil if id is out of
// range.
func (m *MultiDocIndex) Doc(id int) []byte {
	if id < 0 || id >= len(m.offsets) {
		return nil
	}
	text := m.ix.Text()
	start := m.offsets[id]
	if id == len(m.offsets)-1 {
		return text[start:]
	}
	end := m.offsets[id+1] - uint32(len(m.delim))
	return text[start:end]
}

// docForPosition returns the id of the document containing absolute
// position p: the exact match in offsets, or the insertion point minus
// one.
func (m *MultiDocIndex) docForPosition(p uint32) int {
	i := sort.Search(len(m.offsets), func(i int) bool { return m.offsets[i] > p })
	return i - 1
}

// DocPositions returns a lazy sequence of (doc_id, pos_in_doc) pairs for
// every occurrence of query that lies entirely within a single
// document. If query contains the delimiter, the sequence is empty: no
// legitimate hit can cross a boundary, and the query itself could never
// match inside one document.
func (m *MultiDocIndex) DocPositions(query []byte) iter.Seq2[int, uint32] {
	return func(yield func(int, uint32) bool) {
		if containsDelim(query, m.delim) {
			return
		}
		for _, p := range m.ix.FindPositions(query) {
			doc := m.docForPosition(p)
			if doc < 0 {
				continue
			}
			if doc+1 < len(m.offsets) {
				end := m.offsets[doc+1]
				if p+uint32(len(query))+uint32(len(m.delim)) > end {
					continue
				}
			}
			if !yield(doc, p-m.offsets[doc]) {
				return
			}
		}
	}
}

// Freq returns the number of occurrences of query across all documents.
// Unlike DocPositions, it does not subtract boundary-crossing hits: it
// is the unfiltered count of Index.FindPositions, or 0 if query contains
// the delimiter.
func (m *MultiDocIndex) Freq(query []byte) int {
	if containsDelim(query, m.delim) {
		return 0
	}
	return m.ix.Freq(query)
}

func containsDelim(query, delim []byte) bool {
	return bytes.Contains(query, delim)
}

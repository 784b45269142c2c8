// Package index wraps an immutable text together with its suffix array
// and answers substring queries against it: occurrence lists and
// frequencies, both in time logarithmic in the text length plus linear
// in the output size.
package index

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/ashgrove-labs/subix/build"
)

// maxTextLen is the largest text length the format can address: suffix
// array entries are packed u32, so no offset can exceed this.
const maxTextLen = 1<<32 - 1

// ErrTextTooLong is returned when a text's length exceeds maxTextLen.
var ErrTextTooLong = errors.New("subix/index: text length exceeds u32 range")

// Index pairs a text with its suffix array. Both are held as ordinary
// slices: callers that want a zero-copy, memory-mapped Index construct
// one from parts (NewFromParts) over a mapped byte region; callers that
// just want to build and query in-process use Build.
type Index struct {
	text []byte
	sa   []uint32
}

// Build runs the Suffix-Sort Driver over text with the given block size
// and returns the resulting Index. blockSize bounds how much of text is
// sorted in memory at once during construction; it has no effect on the
// result (testable property: block independence).
func Build(text []byte, blockSize uint32) (*Index, error) {
	if len(text) > maxTextLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrTextTooLong, len(text))
	}

	var sink build.SliceSink
	if err := build.Build(text, blockSize, &sink); err != nil {
		return nil, err
	}
	return &Index{text: text, sa: sink.Positions}, nil
}

// NewFromParts binds a text and a pre-built suffix array directly,
// without running the driver — the path persistence uses to reconstruct
// an Index from a decoded or memory-mapped suffix array. Callers are
// responsible for sa actually being a valid suffix array of text; this
// constructor performs no recomputation.
func NewFromParts(text []byte, sa []uint32) *Index {
	return &Index{text: text, sa: sa}
}

// Text returns the indexed text.
func (ix *Index) Text() []byte { return ix.text }

// SuffixArray returns the backing suffix array, in suffix order.
func (ix *Index) SuffixArray() []uint32 { return ix.sa }

// FindPositions returns the byte offsets where query occurs in the
// indexed text, ordered by suffix (i.e. lexicographically by the
// remainder of the text at each offset), not by position. Empty text,
// empty query, or a query longer than the text all yield an empty
// result.
func (ix *Index) FindPositions(query []byte) []uint32 {
	if len(query) == 0 || len(query) > len(ix.text) || len(ix.sa) == 0 {
		return nil
	}

	suffixAt := func(i int) []byte { return ix.text[ix.sa[i]:] }

	lower := sort.Search(len(ix.sa), func(i int) bool {
		return bytes.Compare(suffixAt(i), query) >= 0
	})
	if lower == len(ix.sa) || !bytes.HasPrefix(suffixAt(lower), query) {
		return nil
	}

	width := sort.Search(len(ix.sa)-lower, func(i int) bool {
		return !bytes.HasPrefix(suffixAt(lower+i), query)
	})

	return ix.sa[lower : lower+width]
}

// Freq returns the number of occurrences of query in the indexed text.
func (ix *Index) Freq(query []byte) int {
	return len(ix.FindPositions(query))
}

// Package build implements the Suffix-Sort Driver: it turns a text,
// possibly larger than comfortably fits in memory, into a suffix array
// streamed to a Sink. Below a configured block size it runs the
// in-memory sorter once; above it, it partitions the text into blocks,
// spills each block's sorted, boundary-filtered offsets to a temporary
// file, and k-way merges the spilled blocks back into one global order.
package build

import (
	"errors"

	"github.com/ashgrove-labs/subix/internal/suffixsort"
	"github.com/ashgrove-labs/subix/internal/utf8span"
)

// ErrInvalidBlockSize is returned when blockSize is zero.
var ErrInvalidBlockSize = errors.New("subix/build: block size must be greater than zero")

// Build streams the suffix array of text to sink, in ascending suffix
// order. Empty text emits nothing; a one-byte text emits the single
// value 0 without invoking the sorter. blockSize bounds how much of text
// is sorted in memory at once; text no larger than blockSize is sorted
// in a single in-memory pass, larger text takes the external-memory
// block-and-merge path.
func Build(text []byte, blockSize uint32, sink Sink) error {
	if blockSize == 0 {
		return ErrInvalidBlockSize
	}

	switch len(text) {
	case 0:
		return nil
	case 1:
		return sink.Emit(0)
	}

	if uint64(len(text)) <= uint64(blockSize) {
		return emitBoundarySorted(text, len(text), sink)
	}

	return buildExternal(text, blockSize, sink)
}

// emitBoundarySorted runs the in-memory sorter over text, keeps only the
// offsets strictly below limit that land on a UTF-8 boundary, and emits
// them to sink in ascending suffix order. limit is less than len(text)
// exactly when text is a block extended with a lookahead tail: the tail
// bytes influence comparisons but must never themselves be emitted.
func emitBoundarySorted(text []byte, limit int, sink Sink) error {
	sa := suffixsort.Build(text)
	for _, x := range sa {
		pos := int(x)
		if pos >= limit {
			continue
		}
		if !utf8span.IsBoundary(text, pos) {
			continue
		}
		if err := sink.Emit(uint32(pos)); err != nil {
			return err
		}
	}
	return nil
}

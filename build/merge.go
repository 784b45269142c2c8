package build

import (
	"bytes"
	"container/heap"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

// blockCursor walks one spilled block's offsets in the order they were
// written (already ascending suffix order within the block), translating
// each stored block-relative offset back into an absolute position into
// the full text so cursors from different blocks can be compared against
// one another during the merge.
type blockCursor struct {
	text  []byte // the full text being built, never the block's slice
	begin uint32 // block's start offset into text; stored entries are relative to it
	data  []byte // remaining packed u32 entries, host-endian, trailer stripped

	front   uint32 // absolute position of the current entry
	hasMore bool
}

// openBlockCursor reads a spilled block's file in full, validates its
// CRC32 trailer, and positions the cursor at the block's first entry (if
// any).
func openBlockCursor(text []byte, b *spilledBlock) (*blockCursor, error) {
	if _, err := b.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("subix/build: seek spill file: %w", err)
	}
	raw, err := io.ReadAll(b.file)
	if err != nil {
		return nil, fmt.Errorf("subix/build: read spill file: %w", err)
	}
	if len(raw) < 4 {
		return nil, fmt.Errorf("subix/build: spill file %s: truncated trailer", b.file.Name())
	}

	body, trailer := raw[:len(raw)-4], raw[len(raw)-4:]
	if crc32.ChecksumIEEE(body) != binary.NativeEndian.Uint32(trailer) {
		return nil, fmt.Errorf("subix/build: spill file %s: checksum mismatch", b.file.Name())
	}

	c := &blockCursor{text: text, begin: uint32(b.begin), data: body}
	c.advance()
	return c, nil
}

// advance consumes the next packed u32 entry, translating it from
// block-relative to absolute, and reports whether one was available.
func (c *blockCursor) advance() bool {
	if len(c.data) < 4 {
		c.hasMore = false
		return false
	}
	rel := binary.NativeEndian.Uint32(c.data[:4])
	c.data = c.data[4:]
	c.front = c.begin + rel
	c.hasMore = true
	return true
}

// frontSuffix returns the suffix of the full text starting at the
// cursor's current entry.
func (c *blockCursor) frontSuffix() []byte {
	return c.text[c.front:]
}

// cursorHeap is a min-heap of blockCursors ordered by their current
// suffix, the merge stage's priority queue over the spilled blocks.
type cursorHeap []*blockCursor

func (h cursorHeap) Len() int { return len(h) }

func (h cursorHeap) Less(i, j int) bool {
	// Two distinct blocks never present the same suffix at the same
	// time: the tail-extension overlap guarantees every block-local
	// offset below its limit is a distinct position in text, so ties
	// here would mean two different positions compare byte-for-byte
	// equal all the way to the end of text, i.e. they're the same
	// position. That can't happen in a valid suffix array, so treat it
	// as a broken invariant rather than guess at a tie-break.
	switch c := bytes.Compare(h[i].frontSuffix(), h[j].frontSuffix()); {
	case c < 0:
		return true
	case c > 0:
		return false
	default:
		panic(fmt.Sprintf("subix/build: equal suffixes at offsets %d and %d during merge", h[i].front, h[j].front))
	}
}

func (h cursorHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *cursorHeap) Push(x any) { *h = append(*h, x.(*blockCursor)) }

func (h *cursorHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// mergeBlocks k-way merges the spilled blocks' offsets into sink, in
// ascending global suffix order.
func mergeBlocks(text []byte, blocks []*spilledBlock, sink Sink) error {
	h := make(cursorHeap, 0, len(blocks))
	for _, b := range blocks {
		c, err := openBlockCursor(text, b)
		if err != nil {
			return err
		}
		if c.hasMore {
			h = append(h, c)
		}
	}
	heap.Init(&h)

	for h.Len() > 0 {
		top := h[0]
		if err := sink.Emit(top.front); err != nil {
			return err
		}
		if top.advance() {
			heap.Fix(&h, 0)
		} else {
			heap.Pop(&h)
		}
	}
	return nil
}

// Package utf8span answers UTF-8 code-point-boundary questions about a
// byte slice: whether an offset begins a code point, and the nearest
// boundary at or after a given offset.
package utf8span

import "github.com/bits-and-blooms/bitset"

// IsBoundary reports whether pos is a UTF-8 code-point boundary in data:
// offset 0, offset len(data), or a byte whose top two bits are not the
// continuation-byte pattern 0b10.
func IsBoundary(data []byte, pos int) bool {
	if pos == 0 || pos == len(data) {
		return true
	}
	if pos < 0 || pos > len(data) {
		return false
	}
	return data[pos]&0xC0 != 0x80
}

// BoundaryBitmap precomputes which offsets of data are UTF-8 boundaries.
// The tail-extension search in build/block.go repeatedly asks for the
// next boundary at or after a scan position; decoding leading bits fresh
// on every call is wasted work once the same region is revisited, so the
// driver builds one of these over the whole text, once per external build.
type BoundaryBitmap struct {
	bits *bitset.BitSet
	n    int
}

// NewBoundaryBitmap scans data once and marks every boundary offset,
// including the implicit boundary at len(data).
func NewBoundaryBitmap(data []byte) *BoundaryBitmap {
	bm := &BoundaryBitmap{
		bits: bitset.New(uint(len(data) + 1)),
		n:    len(data),
	}
	for i, b := range data {
		if b&0xC0 != 0x80 {
			bm.bits.Set(uint(i))
		}
	}
	bm.bits.Set(uint(len(data)))
	return bm
}

// IsBoundary reports whether i is a marked boundary.
func (bm *BoundaryBitmap) IsBoundary(i int) bool {
	if i < 0 || i > bm.n {
		return false
	}
	return bm.bits.Test(uint(i))
}

// CeilBoundary returns the smallest boundary offset >= i, capped at
// len(data). i may be negative or past len(data); both are clamped.
func (bm *BoundaryBitmap) CeilBoundary(i int) int {
	if i <= 0 {
		return 0
	}
	if i >= bm.n {
		return bm.n
	}
	pos, ok := bm.bits.NextSet(uint(i))
	if !ok {
		return bm.n
	}
	return int(pos)
}

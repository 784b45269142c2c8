package build

import (
	"testing"

	"github.com/ashgrove-labs/subix/internal/utf8span"
)

func TestExtendWithTailAbsorbsWhenTailFullyRepeats(t *testing.T) {
	text := []byte("aaaaaaaa")
	bm := utf8span.NewBoundaryBitmap(text)

	// Every prefix of the remainder ("aaa") already occurs inside the
	// block ("aaaaa"), so the block must absorb the rest of the text.
	got := extendWithTail(text, bm, 0, 5, len(text))
	if got != len(text) {
		t.Fatalf("extendWithTail = %d, want %d (absorb to end)", got, len(text))
	}
}

func TestExtendWithTailFindsMinimalDistinguishingPrefix(t *testing.T) {
	text := []byte("abcabcxyz")
	bm := utf8span.NewBoundaryBitmap(text)

	// Block is "abcabc" (0..6); remainder is "xyz", which doesn't occur
	// in the block at all, so a one-byte tail already disambiguates.
	got := extendWithTail(text, bm, 0, 6, len(text))
	if got != 7 {
		t.Fatalf("extendWithTail = %d, want 7", got)
	}
}

func TestExtendWithTailNoOpAtEndOfText(t *testing.T) {
	text := []byte("hello")
	bm := utf8span.NewBoundaryBitmap(text)

	got := extendWithTail(text, bm, 0, len(text), len(text))
	if got != len(text) {
		t.Fatalf("extendWithTail at end of text = %d, want %d", got, len(text))
	}
}

func TestSpillBlocksRoundTripsThroughMerge(t *testing.T) {
	text := []byte("banana bandana")

	blocks, err := spillBlocks(text, 4)
	if err != nil {
		t.Fatalf("spillBlocks: %v", err)
	}
	defer closeAndRemoveAll(blocks)

	var sink SliceSink
	if err := mergeBlocks(text, blocks, &sink); err != nil {
		t.Fatalf("mergeBlocks: %v", err)
	}

	want := boundaryOffsets(text)
	if len(sink.Positions) != len(want) {
		t.Fatalf("merged %d positions, want %d", len(sink.Positions), len(want))
	}
}

package suffixsort

import (
	"bytes"
	"sort"
	"testing"
)

func suffixAt(text []byte, i int32) []byte {
	return text[i:]
}

func TestBuildSortsAllSuffixesAscending(t *testing.T) {
	texts := [][]byte{
		[]byte(""),
		[]byte("a"),
		[]byte("banana"),
		[]byte("aaaaaaaa"),
		[]byte("I scream, you scream, we all scream for ice cream!"),
		{0x00, 0x01, 0x00, 0xff},
	}

	for _, text := range texts {
		sa := Build(text)
		if len(sa) != len(text)+1 {
			t.Fatalf("Build(%q): got %d entries, want %d", text, len(sa), len(text)+1)
		}

		seen := make(map[int32]bool, len(sa))
		for _, x := range sa {
			if x < 0 || int(x) > len(text) {
				t.Fatalf("Build(%q): offset %d out of range", text, x)
			}
			if seen[x] {
				t.Fatalf("Build(%q): duplicate offset %d", text, x)
			}
			seen[x] = true
		}

		for i := 1; i < len(sa); i++ {
			if bytes.Compare(suffixAt(text, sa[i-1]), suffixAt(text, sa[i])) >= 0 {
				t.Fatalf("Build(%q): suffix at sa[%d]=%d not strictly less than sa[%d]=%d",
					text, i-1, sa[i-1], i, sa[i])
			}
		}
	}
}

func TestBuildMatchesNaiveSort(t *testing.T) {
	text := []byte("mississippi")
	sa := Build(text)

	want := make([]int32, len(text)+1)
	for i := range want {
		want[i] = int32(i)
	}
	sort.Slice(want, func(i, j int) bool {
		return bytes.Compare(suffixAt(text, want[i]), suffixAt(text, want[j])) < 0
	})

	if !equalInt32(sa, want) {
		t.Fatalf("Build(%q) = %v, want %v", text, sa, want)
	}
}

func equalInt32(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

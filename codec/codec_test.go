package codec

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/ashgrove-labs/subix/index"
	"github.com/ashgrove-labs/subix/multidoc"
)

func TestIndexRoundTrip(t *testing.T) {
	text := []byte("I scream, you scream, we all scream for ice cream!")
	ix, err := index.Build(text, math.MaxUint32)
	if err != nil {
		t.Fatalf("index.Build: %v", err)
	}

	data := EncodeIndex(ix, binary.NativeEndian)
	decoded, err := DecodeIndex(text, data, binary.NativeEndian)
	if err != nil {
		t.Fatalf("DecodeIndex: %v", err)
	}

	if !equalUint32(decoded.SuffixArray(), ix.SuffixArray()) {
		t.Fatalf("decoded SA = %v, want %v", decoded.SuffixArray(), ix.SuffixArray())
	}
}

func TestDecodeIndexRejectsBadSizes(t *testing.T) {
	text := []byte("hello")

	if _, err := DecodeIndex(text, []byte{1, 2, 3}, binary.NativeEndian); err == nil {
		t.Error("non-multiple-of-4 buffer: got nil error, want one")
	}

	oversized := make([]byte, 4*(len(text)+1))
	if _, err := DecodeIndex(text, oversized, binary.NativeEndian); err == nil {
		t.Error("SA longer than text: got nil error, want one")
	}
}

func TestMultiDocRoundTrip(t *testing.T) {
	text := []byte("alpha\nbeta\ngamma")
	m, err := multidoc.BuildFromText(text, multidoc.WithDelimiter('\n'))
	if err != nil {
		t.Fatalf("BuildFromText: %v", err)
	}

	data := EncodeMultiDoc(m, binary.NativeEndian)
	decoded, err := DecodeMultiDoc(text, data, binary.NativeEndian)
	if err != nil {
		t.Fatalf("DecodeMultiDoc: %v", err)
	}

	if decoded.NumDocs() != m.NumDocs() {
		t.Fatalf("NumDocs() = %d, want %d", decoded.NumDocs(), m.NumDocs())
	}
	for i := 0; i < m.NumDocs(); i++ {
		if string(decoded.Doc(i)) != string(m.Doc(i)) {
			t.Errorf("Doc(%d) = %q, want %q", i, decoded.Doc(i), m.Doc(i))
		}
	}
	if !equalUint32(decoded.Index().SuffixArray(), m.Index().SuffixArray()) {
		t.Error("decoded suffix array does not match original")
	}
}

func TestWriteIndexMatchesEncodeIndex(t *testing.T) {
	text := []byte("mississippi")
	ix, err := index.Build(text, math.MaxUint32)
	if err != nil {
		t.Fatalf("index.Build: %v", err)
	}

	var streamed bytes.Buffer
	if err := WriteIndex(&streamed, ix, binary.NativeEndian); err != nil {
		t.Fatalf("WriteIndex: %v", err)
	}

	if got, want := streamed.Bytes(), EncodeIndex(ix, binary.NativeEndian); !bytes.Equal(got, want) {
		t.Fatalf("WriteIndex output = %v, want %v (EncodeIndex)", got, want)
	}
}

func TestWriteMultiDocMatchesEncodeMultiDoc(t *testing.T) {
	text := []byte("alpha\nbeta\ngamma")
	m, err := multidoc.BuildFromText(text, multidoc.WithDelimiter('\n'))
	if err != nil {
		t.Fatalf("BuildFromText: %v", err)
	}

	var streamed bytes.Buffer
	if err := WriteMultiDoc(&streamed, m, binary.NativeEndian); err != nil {
		t.Fatalf("WriteMultiDoc: %v", err)
	}

	want := EncodeMultiDoc(m, binary.NativeEndian)
	if got := streamed.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("WriteMultiDoc output = %v, want %v (EncodeMultiDoc)", got, want)
	}

	decoded, err := DecodeMultiDoc(text, streamed.Bytes(), binary.NativeEndian)
	if err != nil {
		t.Fatalf("DecodeMultiDoc(streamed): %v", err)
	}
	if decoded.NumDocs() != m.NumDocs() {
		t.Errorf("NumDocs() = %d, want %d", decoded.NumDocs(), m.NumDocs())
	}
}

func TestDecodeMultiDocRejectsTruncatedFooter(t *testing.T) {
	if _, err := DecodeMultiDoc([]byte("x"), []byte{1, 2, 3}, binary.NativeEndian); err == nil {
		t.Error("truncated buffer: got nil error, want one")
	}
}

func TestLittleAndBigEndianVariants(t *testing.T) {
	text := []byte("mississippi")
	ix, err := index.Build(text, math.MaxUint32)
	if err != nil {
		t.Fatalf("index.Build: %v", err)
	}

	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		data := EncodeIndex(ix, order)
		decoded, err := DecodeIndex(text, data, order)
		if err != nil {
			t.Fatalf("DecodeIndex(%v): %v", order, err)
		}
		if !equalUint32(decoded.SuffixArray(), ix.SuffixArray()) {
			t.Fatalf("DecodeIndex(%v): SA mismatch", order)
		}
	}
}

func equalUint32(a, b []uint32) bool {
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

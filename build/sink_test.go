package build

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestWriterSinkStreamsPackedPositions(t *testing.T) {
	var buf bytes.Buffer
	sink := &WriterSink{W: &buf, Order: binary.BigEndian}

	for _, pos := range []uint32{0, 1, 300, 1 << 20} {
		if err := sink.Emit(pos); err != nil {
			t.Fatalf("Emit(%d): %v", pos, err)
		}
	}

	want := []byte{
		0, 0, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 44,
		0, 16, 0, 0,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("WriterSink output = %v, want %v", buf.Bytes(), want)
	}
}

func TestBuildWithWriterSinkMatchesSliceSink(t *testing.T) {
	text := []byte("the quick brown fox jumps over the lazy dog")

	var sliceSink SliceSink
	if err := Build(text, 8, &sliceSink); err != nil {
		t.Fatalf("Build into SliceSink: %v", err)
	}

	var buf bytes.Buffer
	if err := Build(text, 8, &WriterSink{W: &buf, Order: binary.NativeEndian}); err != nil {
		t.Fatalf("Build into WriterSink: %v", err)
	}

	got := make([]uint32, buf.Len()/4)
	for i := range got {
		got[i] = binary.NativeEndian.Uint32(buf.Bytes()[4*i:])
	}

	if !equalUint32(got, sliceSink.Positions) {
		t.Fatalf("WriterSink positions = %v, want %v (SliceSink)", got, sliceSink.Positions)
	}
}

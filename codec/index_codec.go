package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ashgrove-labs/subix/build"
	"github.com/ashgrove-labs/subix/index"
)

const maxTextLen = 1<<32 - 1

// WriteIndex streams ix's suffix array as packed u32 in order directly
// to w, via the same build.WriterSink the Suffix-Sort Driver uses to
// stream a freshly built index straight to a file without ever holding
// the encoded bytes in memory.
func WriteIndex(w io.Writer, ix *index.Index, order binary.ByteOrder) error {
	sink := &build.WriterSink{W: w, Order: order}
	for _, x := range ix.SuffixArray() {
		if err := sink.Emit(x); err != nil {
			return fmt.Errorf("subix/codec: write suffix array: %w", err)
		}
	}
	return nil
}

// EncodeIndex returns ix's suffix array as packed u32 in order. order is
// typically binary.NativeEndian; callers choosing portability pass
// binary.LittleEndian or binary.BigEndian explicitly.
func EncodeIndex(ix *index.Index, order binary.ByteOrder) []byte {
	var buf bytes.Buffer
	buf.Grow(4 * len(ix.SuffixArray()))
	_ = WriteIndex(&buf, ix, order) // bytes.Buffer.Write never errors
	return buf.Bytes()
}

// DecodeIndex reinterprets data as a packed u32 suffix array in order
// and binds it to text. It rejects buffers whose size isn't a multiple
// of 4 or whose implied suffix-array length exceeds the text length.
func DecodeIndex(text []byte, data []byte, order binary.ByteOrder) (*index.Index, error) {
	if len(text) > maxTextLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrTextTooLong, len(text))
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: length %d not a multiple of 4", ErrInvalidIndex, len(data))
	}

	n := len(data) / 4
	if n > len(text) {
		return nil, fmt.Errorf("%w: suffix array length %d exceeds text length %d", ErrInvalidIndex, n, len(text))
	}

	sa := make([]uint32, n)
	for i := range sa {
		sa[i] = order.Uint32(data[4*i:])
	}
	return index.NewFromParts(text, sa), nil
}

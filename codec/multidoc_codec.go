package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ashgrove-labs/subix/build"
	"github.com/ashgrove-labs/subix/multidoc"
)

// footerSize is the three packed u32 fields trailing every encoded
// MultiDocIndex: |SA|, |O|, delim_byte_len.
const footerSize = 12

// WriteMultiDoc streams m to w as SA bytes, O bytes, delimiter bytes,
// then the footer, all in order, via build.WriterSink for the two
// packed-u32 sections — the same streaming-to-a-sink path the
// Suffix-Sort Driver itself uses, so an index built once never has to
// be re-materialized as a []byte just to be written out.
func WriteMultiDoc(w io.Writer, m *multidoc.MultiDocIndex, order binary.ByteOrder) error {
	sa := m.Index().SuffixArray()
	offsets := m.Offsets()
	delim := m.DelimiterBytes()

	sink := &build.WriterSink{W: w, Order: order}
	for _, x := range sa {
		if err := sink.Emit(x); err != nil {
			return fmt.Errorf("subix/codec: write suffix array: %w", err)
		}
	}
	for _, x := range offsets {
		if err := sink.Emit(x); err != nil {
			return fmt.Errorf("subix/codec: write offsets table: %w", err)
		}
	}
	if _, err := w.Write(delim); err != nil {
		return fmt.Errorf("subix/codec: write delimiter: %w", err)
	}

	footer := make([]byte, footerSize)
	order.PutUint32(footer[0:4], uint32(len(sa)))
	order.PutUint32(footer[4:8], uint32(len(offsets)))
	order.PutUint32(footer[8:12], uint32(len(delim)))
	if _, err := w.Write(footer); err != nil {
		return fmt.Errorf("subix/codec: write footer: %w", err)
	}
	return nil
}

// EncodeMultiDoc serializes m as SA bytes, O bytes, delimiter bytes,
// then the footer, all in order.
func EncodeMultiDoc(m *multidoc.MultiDocIndex, order binary.ByteOrder) []byte {
	var buf bytes.Buffer
	buf.Grow(4*len(m.Index().SuffixArray()) + 4*len(m.Offsets()) + len(m.DelimiterBytes()) + footerSize)
	_ = WriteMultiDoc(&buf, m, order) // bytes.Buffer.Write never errors
	return buf.Bytes()
}

// DecodeMultiDoc reads the footer from the last 12 bytes of data, uses
// it to slice SA bytes, O bytes and delimiter bytes out of the
// remainder, validates the delimiter, and binds everything (plus text)
// into a MultiDocIndex.
func DecodeMultiDoc(text []byte, data []byte, order binary.ByteOrder) (*multidoc.MultiDocIndex, error) {
	if len(data) < footerSize {
		return nil, fmt.Errorf("%w: buffer shorter than footer", ErrInvalidIndex)
	}

	footer := data[len(data)-footerSize:]
	saLen := order.Uint32(footer[0:4])
	oLen := order.Uint32(footer[4:8])
	delimLen := order.Uint32(footer[8:12])

	expected := uint64(4)*uint64(saLen) + uint64(4)*uint64(oLen) + uint64(delimLen) + footerSize
	if expected != uint64(len(data)) {
		return nil, fmt.Errorf("%w: footer implies %d bytes, buffer has %d", ErrInvalidIndex, expected, len(data))
	}

	body := data[:len(data)-footerSize]
	saBytes := body[:4*saLen]
	oBytes := body[4*saLen : 4*saLen+4*oLen]
	delimBytes := body[4*saLen+4*oLen:]

	if r, size := utf8.DecodeRune(delimBytes); (r == utf8.RuneError && size <= 1) || size != len(delimBytes) {
		return nil, fmt.Errorf("%w: delimiter is not exactly one UTF-8 code point", ErrInvalidIndex)
	}

	ix, err := DecodeIndex(text, saBytes, order)
	if err != nil {
		return nil, err
	}

	offsets := make([]uint32, oLen)
	for i := range offsets {
		offsets[i] = order.Uint32(oBytes[4*i:])
	}

	return multidoc.FromParts(ix, offsets, append([]byte(nil), delimBytes...))
}

package index

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/bits-and-blooms/bloom/v3"
)

// QueryFilter is an optional Bloom-filter sidecar over an Index's text:
// a fast, approximate "could this query possibly occur" pre-check that
// lets a caller skip the binary search entirely for queries that can't
// hit. It is never part of the persisted Index format (§4.4 of the
// design fixes that format exactly) — it's a separate artifact, built
// from an Index and serialized on its own, that a caller may choose to
// keep alongside the index bytes.
//
// The filter only ever errs in the direction that is safe (false
// positives, never false negatives): MayContain never says "no" for a
// query that actually occurs.
// It may say "maybe" for a query that doesn't; callers must still run
// FindPositions to get an exact answer.
type QueryFilter struct {
	k      int
	filter *bloom.BloomFilter
}

// NewQueryFilter builds a QueryFilter over ix's text, indexing every
// contiguous window of k bytes. k should be chosen no larger than the
// shortest query the caller expects to pre-check; queries shorter than k
// can't be tested against k-byte windows and MayContain reports them as
// "maybe" unconditionally.
func NewQueryFilter(ix *Index, k int, falsePositiveRate float64) (*QueryFilter, error) {
	if k <= 0 {
		return nil, fmt.Errorf("subix/index: filter window length must be positive, got %d", k)
	}

	text := ix.Text()
	n := len(text) - k + 1
	if n < 0 {
		n = 0
	}
	filter := bloom.NewWithEstimates(uint(n+1), falsePositiveRate)
	for i := 0; i < n; i++ {
		filter.Add(text[i : i+k])
	}

	return &QueryFilter{k: k, filter: filter}, nil
}

// MayContain reports whether query could possibly occur in the text the
// filter was built over. A false result is conclusive; a true result
// means the caller must still check with FindPositions.
func (qf *QueryFilter) MayContain(query []byte) bool {
	if len(query) < qf.k {
		return true
	}
	return qf.filter.Test(query[:qf.k])
}

// WriteTo serializes the filter: a u32 window length k, followed by the
// Bloom filter's own self-describing encoding, followed by a CRC32 of
// everything before it. This framing is grounded in the same
// checksummed-block technique the Suffix-Sort Driver uses for its
// temporary spill files; like those files, it has nothing to do with
// the core Index wire format.
func (qf *QueryFilter) WriteTo(w io.Writer) (int64, error) {
	crc := crc32.NewIEEE()
	mw := io.MultiWriter(w, crc)

	var written int64
	if err := binary.Write(mw, binary.NativeEndian, uint32(qf.k)); err != nil {
		return written, fmt.Errorf("subix/index: write filter header: %w", err)
	}
	written += 4

	n, err := qf.filter.WriteTo(mw)
	written += n
	if err != nil {
		return written, fmt.Errorf("subix/index: write filter body: %w", err)
	}

	if err := binary.Write(w, binary.NativeEndian, crc.Sum32()); err != nil {
		return written, fmt.Errorf("subix/index: write filter trailer: %w", err)
	}
	written += 4

	return written, nil
}

// ReadQueryFilter deserializes a filter written by WriteTo.
func ReadQueryFilter(data []byte) (*QueryFilter, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("subix/index: filter data too short")
	}

	body, trailer := data[:len(data)-4], data[len(data)-4:]
	if crc32.ChecksumIEEE(body) != binary.NativeEndian.Uint32(trailer) {
		return nil, fmt.Errorf("subix/index: filter checksum mismatch")
	}

	k := binary.NativeEndian.Uint32(body[:4])
	filter := &bloom.BloomFilter{}
	if _, err := filter.ReadFrom(bytes.NewReader(body[4:])); err != nil {
		return nil, fmt.Errorf("subix/index: decode filter body: %w", err)
	}

	return &QueryFilter{k: int(k), filter: filter}, nil
}

package build

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/ashgrove-labs/subix/internal/utf8span"
)

// spilledBlock is one block's sorted, boundary-filtered suffix offsets
// (relative to begin), persisted to a temporary file so they do not stay
// in memory while later blocks are sorted. The file handle stays open
// after the spill; the merge stage seeks it back to the start and reads
// the whole file into memory, so during the merge every block's offsets
// are held in memory at once.
type spilledBlock struct {
	begin int
	file  *os.File
	count int
}

// buildExternal partitions text into blocks bounded by blockSize, spills
// each block's sorted offsets to a temporary file, and merges the
// spilled blocks into sink in global suffix order.
func buildExternal(text []byte, blockSize uint32, sink Sink) error {
	blocks, err := spillBlocks(text, blockSize)
	if blocks != nil {
		defer closeAndRemoveAll(blocks)
	}
	if err != nil {
		return err
	}

	return mergeBlocks(text, blocks, sink)
}

// spillBlocks partitions text into blocks of approximately blockSize
// bytes, each snapped up to a UTF-8 boundary, extends each block with
// just enough of a lookahead tail to make its in-block sort agree with
// the whole text's suffix order (see extendWithTail), and spills each
// block's sorted offsets to its own temporary file.
func spillBlocks(text []byte, blockSize uint32) ([]*spilledBlock, error) {
	n := len(text)
	bm := utf8span.NewBoundaryBitmap(text)

	var blocks []*spilledBlock
	for begin := 0; begin < n; {
		end := blockEnd(bm, begin, blockSize, n)
		endWithTail := extendWithTail(text, bm, begin, end, n)

		blk, err := spillBlock(text, begin, endWithTail, end-begin)
		if err != nil {
			return blocks, err
		}
		blocks = append(blocks, blk)

		begin = end
	}
	return blocks, nil
}

// blockEnd returns the end of the (un-extended) block starting at begin:
// begin+blockSize snapped up to the next UTF-8 boundary, capped at n.
func blockEnd(bm *utf8span.BoundaryBitmap, begin int, blockSize uint32, n int) int {
	raw := begin + int(blockSize)
	if raw < 0 || raw >= n { // raw < 0 guards against blockSize overflowing int on 32-bit platforms
		return n
	}
	return bm.CeilBoundary(raw)
}

// extendWithTail computes end-with-tail for the block [begin, end): the
// smallest boundary-aligned prefix length of text[end:] that does not
// already occur as a substring of text[begin:end]. If every prefix of
// text[end:] occurs in the block, the block absorbs the rest of the text.
func extendWithTail(text []byte, bm *utf8span.BoundaryBitmap, begin, end, n int) int {
	if end >= n {
		return n
	}
	blk := text[begin:end]

	l := bm.CeilBoundary(end+1) - end
	for {
		if end+l >= n {
			return n
		}
		if !bytes.Contains(blk, text[end:end+l]) {
			return end + l
		}
		l = bm.CeilBoundary(end+l+1) - end
	}
}

// spillBlock sorts text[begin:endWithTail] in memory, keeps only the
// offsets less than blockLen that land on a UTF-8 boundary, and writes
// them — in ascending suffix order, as raw host-endian u32 — to a new
// temporary file, followed by a CRC32 trailer. This per-file CRC framing
// never appears in the persisted Index/MultiDocIndex format (that has
// none); it only protects these ephemeral spill files against a
// truncated or corrupted write poisoning the merge.
func spillBlock(text []byte, begin, endWithTail, blockLen int) (*spilledBlock, error) {
	f, err := os.CreateTemp("", "subix-block-*")
	if err != nil {
		return nil, fmt.Errorf("subix/build: create spill file: %w", err)
	}

	bw := bufio.NewWriter(f)
	crc := crc32.NewIEEE()
	mw := io.MultiWriter(bw, crc)

	count := 0
	emit := sinkFunc(func(pos uint32) error {
		if err := binary.Write(mw, binary.NativeEndian, pos); err != nil {
			return err
		}
		count++
		return nil
	})

	if err := emitBoundarySorted(text[begin:endWithTail], blockLen, emit); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("subix/build: sort block: %w", err)
	}

	if err := binary.Write(bw, binary.NativeEndian, crc.Sum32()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("subix/build: write spill trailer: %w", err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("subix/build: flush spill file: %w", err)
	}

	return &spilledBlock{begin: begin, file: f, count: count}, nil
}

// closeAndRemoveAll closes and deletes every spilled block's temporary
// file, best-effort. It runs from a defer after the merge has already
// either succeeded or failed, so an error here can't be propagated to a
// caller that's already moved on; it's reported the same way the
// teacher's WAL writer reports a background-goroutine error it can't
// return: a line on stderr.
func closeAndRemoveAll(blocks []*spilledBlock) {
	for _, b := range blocks {
		name := b.file.Name()
		if err := b.file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "subix/build: close spill file %s: %v\n", name, err)
		}
		if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "subix/build: remove spill file %s: %v\n", name, err)
		}
	}
}

package build

import (
	"encoding/binary"
	"io"
)

// Sink receives suffix-array entries in ascending suffix order, exactly
// as the Suffix-Sort Driver produces them, one at a time, so a caller
// never has to hold the whole array in memory if it doesn't want to.
type Sink interface {
	Emit(pos uint32) error
}

// sinkFunc adapts a plain function to Sink, for the driver's own
// internal pipeline stages that don't warrant a named type.
type sinkFunc func(pos uint32) error

func (f sinkFunc) Emit(pos uint32) error { return f(pos) }

// SliceSink accumulates emitted positions into Positions, for callers
// building an Index directly without going through a file.
type SliceSink struct {
	Positions []uint32
}

func (s *SliceSink) Emit(pos uint32) error {
	s.Positions = append(s.Positions, pos)
	return nil
}

// WriterSink streams emitted positions as packed u32 in Order directly
// to W, so a persisted Index can be produced without ever materializing
// the full suffix array in memory.
type WriterSink struct {
	W     io.Writer
	Order binary.ByteOrder
}

func (s *WriterSink) Emit(pos uint32) error {
	return binary.Write(s.W, s.Order, pos)
}

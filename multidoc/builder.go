package multidoc

import (
	"math"

	"github.com/ashgrove-labs/subix/index"
)

// Option configures BuildFromText.
type Option func(*options)

type options struct {
	blockSize uint32
	delim     rune
}

// WithBlockSize sets the block size the underlying Suffix-Sort Driver
// uses during construction. It has no effect on the result.
func WithBlockSize(size uint32) Option {
	return func(o *options) { o.blockSize = size }
}

// WithDelimiter sets the document delimiter. It defaults to newline.
func WithDelimiter(delim rune) Option {
	return func(o *options) { o.delim = delim }
}

// BuildFromText builds a single-text Index over text and wraps it in a
// MultiDocIndex partitioned on the configured delimiter.
func BuildFromText(text []byte, opts ...Option) (*MultiDocIndex, error) {
	o := options{blockSize: math.MaxUint32, delim: '\n'}
	for _, opt := range opts {
		opt(&o)
	}

	ix, err := index.Build(text, o.blockSize)
	if err != nil {
		return nil, err
	}
	return New(ix, o.delim)
}

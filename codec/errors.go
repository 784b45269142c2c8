// Package codec (de)serializes Index and MultiDocIndex to and from raw
// bytes, in the host-endian-by-default format fixed by the design, with
// explicit little- and big-endian variants for portability.
package codec

import "errors"

// ErrInvalidIndex is returned when a byte buffer cannot be a valid
// encoded Index or MultiDocIndex: wrong size, not a multiple of 4,
// inconsistent footer, or (for MultiDocIndex) a malformed delimiter.
var ErrInvalidIndex = errors.New("subix/codec: invalid index bytes")

// ErrTextTooLong is returned when a text's length exceeds what u32
// suffix-array entries can address.
var ErrTextTooLong = errors.New("subix/codec: text length exceeds u32 range")

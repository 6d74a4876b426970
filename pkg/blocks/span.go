package blocks

import (
	"fmt"
	"math"
)

// A Span is the part of a request that falls inside a single block.
type Span struct {
	// Index is the block number.
	Index int64
	// Offset is the position of the span within the block.
	Offset int64
	// Length is the number of bytes covered, at most BlockSize - Offset.
	Length int64
}

// Full reports whether the span covers its whole block.
func (s Span) Full() bool {
	return s.Offset == 0 && s.Length == BlockSize
}

// Spans splits the byte range [offset, offset+length) into the block spans
// that cover it, in block order. The spans tile the range exactly. The result
// is empty when length is zero.
func Spans(offset, length int64) ([]Span, error) {
	if offset < 0 || length < 0 {
		return nil, fmt.Errorf("%w: offset %d, length %d", ErrInvalidArgument, offset, length)
	}

	if length > math.MaxInt64-offset {
		return nil, fmt.Errorf("%w: range at %d of %d bytes overflows", ErrInvalidArgument, offset, length)
	}

	if length == 0 {
		return nil, nil
	}

	first := offset / BlockSize
	last := (offset + length - 1) / BlockSize
	spans := make([]Span, 0, last-first+1)

	for length > 0 {
		span := Span{
			Index:  offset / BlockSize,
			Offset: offset % BlockSize,
		}

		span.Length = min(length, BlockSize-span.Offset)
		spans = append(spans, span)

		offset += span.Length
		length -= span.Length
	}

	return spans, nil
}

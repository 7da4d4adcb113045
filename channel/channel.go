// Package channel defines the in-memory channel of fixed-width telemetry elements
// that flows from the quantizer into the segment dispatcher.
//
// A Channel is a contiguous byte slice holding Len() elements of Width() bytes
// each, packed back-to-back without padding. Channels are read fully into memory
// before any transform runs and are never mutated concurrently; Split returns
// views that share the parent's memory.
package channel

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/planar/endian"
	"github.com/arloliu/planar/errs"
)

// Channel is an ordered sequence of equal-width elements.
type Channel struct {
	data  []byte
	width int
}

// New wraps data as a channel of width-byte elements without copying.
//
// Returns errs.ErrInvalidWidth if width is not positive and errs.ErrInvalidLength
// if len(data) is not a multiple of width.
func New(data []byte, width int) (Channel, error) {
	if width <= 0 {
		return Channel{}, fmt.Errorf("%w: width=%d", errs.ErrInvalidWidth, width)
	}
	if len(data)%width != 0 {
		return Channel{}, fmt.Errorf("%w: %d bytes is not a multiple of width %d", errs.ErrInvalidLength, len(data), width)
	}

	return Channel{data: data, width: width}, nil
}

// Make allocates a zeroed channel of n elements of the given width.
func Make(n, width int) (Channel, error) {
	if n < 0 {
		return Channel{}, fmt.Errorf("%w: negative element count %d", errs.ErrInvalidLength, n)
	}

	return New(make([]byte, n*width), width)
}

// Len returns the number of elements.
func (c Channel) Len() int {
	if c.width == 0 {
		return 0
	}

	return len(c.data) / c.width
}

// Width returns the element width in bytes.
func (c Channel) Width() int {
	return c.width
}

// Size returns the channel size in bytes.
func (c Channel) Size() int {
	return len(c.data)
}

// Bytes returns the underlying bytes. The slice aliases the channel.
func (c Channel) Bytes() []byte {
	return c.data
}

// IsEmpty reports whether the channel holds no elements.
func (c Channel) IsEmpty() bool {
	return len(c.data) == 0
}

// Element returns the raw bytes of element i. The slice aliases the channel.
func (c Channel) Element(i int) []byte {
	off := i * c.width
	return c.data[off : off+c.width : off+c.width]
}

// Uint returns element i interpreted as an unsigned integer in the engine's byte
// order. Only widths 1, 2, 4 and 8 can be interpreted; other widths panic.
func (c Channel) Uint(engine endian.EndianEngine, i int) uint64 {
	return endian.Uint(engine, c.Element(i), c.width)
}

// Clone returns a deep copy of the channel.
func (c Channel) Clone() Channel {
	data := make([]byte, len(c.data))
	copy(data, c.data)

	return Channel{data: data, width: c.width}
}

// Slice returns the sub-channel of elements [from, to). The result aliases c.
func (c Channel) Slice(from, to int) Channel {
	return Channel{data: c.data[from*c.width : to*c.width : to*c.width], width: c.width}
}

// Split partitions the channel into factor contiguous segments of equal element
// count. Segments alias the channel memory.
//
// Returns errs.ErrSegmentFactor if factor is not positive or does not divide Len().
func (c Channel) Split(factor int) ([]Channel, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("%w: factor=%d", errs.ErrSegmentFactor, factor)
	}

	n := c.Len()
	if n%factor != 0 {
		return nil, fmt.Errorf("%w: %d elements, factor %d", errs.ErrSegmentFactor, n, factor)
	}

	segLen := n / factor
	segments := make([]Channel, factor)
	for i := range segments {
		segments[i] = c.Slice(i*segLen, (i+1)*segLen)
	}

	return segments, nil
}

// Concat joins channels of identical width into a newly allocated channel.
func Concat(parts ...Channel) (Channel, error) {
	if len(parts) == 0 {
		return Channel{}, errs.ErrEmptyBuffer
	}

	width := parts[0].width
	total := 0
	for i, p := range parts {
		if p.width != width {
			return Channel{}, fmt.Errorf("%w: part %d has width %d, want %d", errs.ErrInvalidWidth, i, p.width, width)
		}
		total += len(p.data)
	}

	data := make([]byte, 0, total)
	for _, p := range parts {
		data = append(data, p.data...)
	}

	return Channel{data: data, width: width}, nil
}

// WriteTo writes the channel bytes to w.
func (c Channel) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c.data)
	return int64(n), err
}

// ReadFrom reads at most count elements of the given width from r.
//
// A stream holding fewer elements yields a shorter channel; a trailing partial
// element is discarded. Read errors other than end-of-stream are returned wrapped.
func ReadFrom(r io.Reader, width, count int) (Channel, error) {
	if width <= 0 {
		return Channel{}, fmt.Errorf("%w: width=%d", errs.ErrInvalidWidth, width)
	}
	if count < 0 {
		return Channel{}, fmt.Errorf("%w: negative element count %d", errs.ErrInvalidLength, count)
	}

	buf := make([]byte, width*count)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return Channel{}, fmt.Errorf("failed to read channel: %w", err)
	}

	n -= n % width

	return Channel{data: buf[:n:n], width: width}, nil
}

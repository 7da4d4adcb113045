package transform

import (
	"fmt"

	"github.com/arloliu/planar/endian"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
)

// deltaParams describes the integer range of one supported element width.
type deltaParams struct {
	bits    uint
	mask    uint64 // all element bits
	signBit uint64 // top bit, the sign flag of sign-magnitude codes
	maxMag  int64  // largest signed positive value
	minVal  int64  // smallest signed value
}

func paramsFor(buf []byte, width int) (deltaParams, error) {
	if width != 2 && width != 4 {
		return deltaParams{}, fmt.Errorf("%w: delta encoding needs width 2 or 4, got %d", errs.ErrInvalidWidth, width)
	}
	if len(buf) == 0 {
		return deltaParams{}, errs.ErrEmptyBuffer
	}
	if len(buf)%width != 0 {
		return deltaParams{}, fmt.Errorf("%w: %d bytes is not a multiple of width %d", errs.ErrInvalidLength, len(buf), width)
	}

	bits := uint(width * 8) //nolint:gosec
	signBit := uint64(1) << (bits - 1)

	return deltaParams{
		bits:    bits,
		mask:    signBit<<1 - 1,
		signBit: signBit,
		maxMag:  int64(signBit - 1), //nolint:gosec
		minVal:  -int64(signBit),    //nolint:gosec
	}, nil
}

// DeltaSignMagnitude replaces every element after the first with the
// sign-magnitude encoding of its difference from the original previous element.
//
// The difference is computed in 64-bit signed arithmetic, its magnitude clamped
// to 0x7FFF (width 2) or 0x7FFFFFFF (width 4), and the top bit set when the
// difference is negative. The first element is kept as the reference value.
//
// Returns the number of clamped differences. Fails with errs.ErrInvalidWidth for
// widths other than 2 and 4, and before touching buf for any invalid input.
func DeltaSignMagnitude(buf []byte, width int, engine endian.EndianEngine) (int, error) {
	p, err := paramsFor(buf, width)
	if err != nil {
		return 0, err
	}

	clamped := 0
	prev := int64(endian.Uint(engine, buf, width)) //nolint:gosec
	for off := width; off < len(buf); off += width {
		curr := int64(endian.Uint(engine, buf[off:], width)) //nolint:gosec
		diff := curr - prev
		prev = curr

		mag := diff
		if mag < 0 {
			mag = -mag
		}
		if mag > p.maxMag {
			mag = p.maxMag
			clamped++
		}

		code := uint64(mag) //nolint:gosec
		if diff < 0 {
			code |= p.signBit
		}
		endian.PutUint(engine, buf[off:], width, code)
	}

	return clamped, nil
}

// UndoDeltaSignMagnitude restores a channel encoded by DeltaSignMagnitude.
// The result is exact when the encoding reported zero clamped differences.
func UndoDeltaSignMagnitude(buf []byte, width int, engine endian.EndianEngine) error {
	p, err := paramsFor(buf, width)
	if err != nil {
		return err
	}

	prev := endian.Uint(engine, buf, width)
	for off := width; off < len(buf); off += width {
		code := endian.Uint(engine, buf[off:], width)
		mag := code &^ p.signBit

		curr := prev + mag
		if code&p.signBit != 0 {
			curr = prev - mag
		}
		curr &= p.mask

		endian.PutUint(engine, buf[off:], width, curr)
		prev = curr
	}

	return nil
}

// DeltaZigzag replaces every element after the first with the zigzag code of
// its difference from the original previous element, the difference first
// clamped to [-32768, 32767] (width 2) or [-2^31, 2^31-1] (width 4).
//
// Returns the number of clamped differences.
func DeltaZigzag(buf []byte, width int, engine endian.EndianEngine) (int, error) {
	p, err := paramsFor(buf, width)
	if err != nil {
		return 0, err
	}

	clamped := 0
	prev := int64(endian.Uint(engine, buf, width)) //nolint:gosec
	for off := width; off < len(buf); off += width {
		curr := int64(endian.Uint(engine, buf[off:], width)) //nolint:gosec
		diff := curr - prev
		prev = curr

		switch {
		case diff > p.maxMag:
			diff = p.maxMag
			clamped++
		case diff < p.minVal:
			diff = p.minVal
			clamped++
		}

		endian.PutUint(engine, buf[off:], width, zigzag(diff, p.bits))
	}

	return clamped, nil
}

// UndoDeltaZigzag restores a channel encoded by DeltaZigzag.
// The result is exact when the encoding reported zero clamped differences.
func UndoDeltaZigzag(buf []byte, width int, engine endian.EndianEngine) error {
	p, err := paramsFor(buf, width)
	if err != nil {
		return err
	}

	prev := endian.Uint(engine, buf, width)
	for off := width; off < len(buf); off += width {
		diff := unzigzag(endian.Uint(engine, buf[off:], width))
		curr := (prev + uint64(diff)) & p.mask //nolint:gosec

		endian.PutUint(engine, buf[off:], width, curr)
		prev = curr
	}

	return nil
}

// Delta applies the delta variant selected by mode in place.
func Delta(buf []byte, width int, mode format.DeltaMode, engine endian.EndianEngine) (int, error) {
	switch mode {
	case format.DeltaSignMagnitude:
		return DeltaSignMagnitude(buf, width, engine)
	case format.DeltaZigzag:
		return DeltaZigzag(buf, width, engine)
	default:
		return 0, fmt.Errorf("%w: delta mode %s", errs.ErrUnknownTransform, mode)
	}
}

// UndoDelta inverts Delta for the given mode.
func UndoDelta(buf []byte, width int, mode format.DeltaMode, engine endian.EndianEngine) error {
	switch mode {
	case format.DeltaSignMagnitude:
		return UndoDeltaSignMagnitude(buf, width, engine)
	case format.DeltaZigzag:
		return UndoDeltaZigzag(buf, width, engine)
	default:
		return fmt.Errorf("%w: delta mode %s", errs.ErrUnknownTransform, mode)
	}
}

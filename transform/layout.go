package transform

import (
	"fmt"

	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
	"github.com/arloliu/planar/internal/pool"
)

// Apply writes the layout transform kind of src, a sequence of width-byte
// elements, into dst.
//
//   - TransformRaw copies src.
//   - TransformBytePlane is BytePlane.
//   - TransformBitPlane byte-plane transposes src and bit-shuffles the result.
//     len(src) must be a multiple of 8.
func Apply(kind format.TransformKind, dst, src []byte, width int) error {
	switch kind {
	case format.TransformRaw:
		if _, err := elementRows(dst, src, width); err != nil {
			return err
		}
		copy(dst, src)

		return nil
	case format.TransformBytePlane:
		return BytePlane(dst, src, width)
	case format.TransformBitPlane:
		if _, err := bitGroups(dst, src); err != nil {
			return err
		}
		if _, err := elementRows(dst, src, width); err != nil {
			return err
		}

		scratch := pool.GetScratch(len(src))
		defer pool.PutScratch(scratch)

		planes := scratch.Bytes()
		transpose(planes, src, len(src)/width, width)

		return BitShuffle(dst, planes)
	default:
		return fmt.Errorf("%w: layout %s", errs.ErrUnknownTransform, kind)
	}
}

// Invert reverses Apply for the same kind and width.
func Invert(kind format.TransformKind, dst, src []byte, width int) error {
	switch kind {
	case format.TransformRaw:
		if _, err := elementRows(dst, src, width); err != nil {
			return err
		}
		copy(dst, src)

		return nil
	case format.TransformBytePlane:
		return InverseBytePlane(dst, src, width)
	case format.TransformBitPlane:
		if _, err := bitGroups(dst, src); err != nil {
			return err
		}
		if _, err := elementRows(dst, src, width); err != nil {
			return err
		}

		scratch := pool.GetScratch(len(src))
		defer pool.PutScratch(scratch)

		planes := scratch.Bytes()
		if err := BitUnshuffle(planes, src); err != nil {
			return err
		}
		transpose(dst, planes, width, len(src)/width)

		return nil
	default:
		return fmt.Errorf("%w: layout %s", errs.ErrUnknownTransform, kind)
	}
}

package transform

import (
	"fmt"

	"github.com/arloliu/planar/errs"
)

// Transpose writes the cols×rows transpose of the rows×cols byte matrix src into dst:
//
//	dst[j*rows+i] = src[i*cols+j]
//
// Transposing with swapped dimensions restores the original matrix.
func Transpose(dst, src []byte, rows, cols int) error {
	if err := checkPair(dst, src); err != nil {
		return err
	}
	if rows <= 0 || cols <= 0 || rows*cols != len(src) {
		return fmt.Errorf("%w: %d bytes is not a %dx%d matrix", errs.ErrInvalidLength, len(src), rows, cols)
	}

	transpose(dst, src, rows, cols)

	return nil
}

func transpose(dst, src []byte, rows, cols int) {
	switch cols {
	case 1:
		copy(dst, src)
	case 2:
		p0, p1 := dst[:rows], dst[rows:2*rows]
		for i := range rows {
			p0[i] = src[2*i]
			p1[i] = src[2*i+1]
		}
	case 4:
		p0, p1, p2, p3 := dst[:rows], dst[rows:2*rows], dst[2*rows:3*rows], dst[3*rows:4*rows]
		for i := range rows {
			e := src[4*i : 4*i+4 : 4*i+4]
			p0[i], p1[i], p2[i], p3[i] = e[0], e[1], e[2], e[3]
		}
	default:
		for i := range rows {
			row := src[i*cols : (i+1)*cols]
			for j, b := range row {
				dst[j*rows+i] = b
			}
		}
	}
}

// BytePlane reorganizes src, a sequence of width-byte elements, into width
// contiguous planes written to dst. Plane j holds byte j of every element in
// element order.
//
// Returns errs.ErrInvalidWidth for a non-positive width and errs.ErrInvalidLength
// if width does not divide len(src).
func BytePlane(dst, src []byte, width int) error {
	rows, err := elementRows(dst, src, width)
	if err != nil {
		return err
	}

	transpose(dst, src, rows, width)

	return nil
}

// InverseBytePlane restores the element-major layout from the plane-major output
// of BytePlane.
func InverseBytePlane(dst, src []byte, width int) error {
	rows, err := elementRows(dst, src, width)
	if err != nil {
		return err
	}

	transpose(dst, src, width, rows)

	return nil
}

func elementRows(dst, src []byte, width int) (int, error) {
	if err := checkPair(dst, src); err != nil {
		return 0, err
	}
	if width <= 0 {
		return 0, fmt.Errorf("%w: width=%d", errs.ErrInvalidWidth, width)
	}
	if len(src)%width != 0 {
		return 0, fmt.Errorf("%w: %d bytes is not a multiple of width %d", errs.ErrInvalidLength, len(src), width)
	}

	return len(src) / width, nil
}

// checkPair validates a dst/src buffer pair.
func checkPair(dst, src []byte) error {
	if len(src) == 0 || len(dst) == 0 {
		return errs.ErrEmptyBuffer
	}
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst has %d bytes, src has %d", errs.ErrInvalidLength, len(dst), len(src))
	}
	if &dst[0] == &src[0] {
		return fmt.Errorf("%w: dst and src share memory", errs.ErrInvalidArgument)
	}

	return nil
}

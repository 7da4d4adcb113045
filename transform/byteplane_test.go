package transform

import (
	"math/rand/v2"
	"testing"

	"github.com/arloliu/planar/errs"
	"github.com/stretchr/testify/require"
)

func TestBytePlane_Width2(t *testing.T) {
	// Three little-endian uint16 values 0x0201, 0x0403, 0x0605.
	src := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	dst := make([]byte, len(src))

	require.NoError(t, BytePlane(dst, src, 2))
	require.Equal(t, []byte{0x01, 0x03, 0x05, 0x02, 0x04, 0x06}, dst)
}

func TestBytePlane_Width4(t *testing.T) {
	src := []byte{
		0xA0, 0xA1, 0xA2, 0xA3,
		0xB0, 0xB1, 0xB2, 0xB3,
	}
	dst := make([]byte, len(src))

	require.NoError(t, BytePlane(dst, src, 4))
	require.Equal(t, []byte{0xA0, 0xB0, 0xA1, 0xB1, 0xA2, 0xB2, 0xA3, 0xB3}, dst)
}

func TestBytePlane_RecordWidth(t *testing.T) {
	const width, n = 10, 3
	src := make([]byte, width*n)
	for i := range n {
		for j := range width {
			src[i*width+j] = byte(i<<4 | j)
		}
	}
	dst := make([]byte, len(src))

	require.NoError(t, BytePlane(dst, src, width))
	for j := range width {
		for i := range n {
			require.Equal(t, byte(i<<4|j), dst[j*n+i], "plane %d element %d", j, i)
		}
	}
}

func TestBytePlane_Width1IsIdentity(t *testing.T) {
	src := []byte{9, 8, 7, 6}
	dst := make([]byte, 4)

	require.NoError(t, BytePlane(dst, src, 1))
	require.Equal(t, src, dst)
}

func TestBytePlane_RoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))
	for _, width := range []int{1, 2, 3, 4, 8, 10} {
		for _, n := range []int{1, 2, 7, 64, 1000} {
			src := randomBytes(r, width*n)
			planes := make([]byte, len(src))
			back := make([]byte, len(src))

			require.NoError(t, BytePlane(planes, src, width))
			require.NoError(t, InverseBytePlane(back, planes, width))
			require.Equal(t, src, back, "width=%d n=%d", width, n)

			// The inverse is the transpose with swapped dimensions.
			swapped := make([]byte, len(src))
			require.NoError(t, Transpose(swapped, planes, width, n))
			require.Equal(t, src, swapped)
		}
	}
}

func TestBytePlane_InvalidInput(t *testing.T) {
	require.ErrorIs(t, BytePlane(make([]byte, 6), make([]byte, 6), 4), errs.ErrInvalidLength)
	require.ErrorIs(t, BytePlane(make([]byte, 6), make([]byte, 6), 0), errs.ErrInvalidWidth)
	require.ErrorIs(t, BytePlane(nil, nil, 2), errs.ErrEmptyBuffer)
	require.ErrorIs(t, BytePlane(make([]byte, 4), make([]byte, 6), 2), errs.ErrInvalidLength)
	require.ErrorIs(t, InverseBytePlane(make([]byte, 5), make([]byte, 5), 2), errs.ErrInvalidLength)
}

func TestTranspose_InvalidShape(t *testing.T) {
	err := Transpose(make([]byte, 6), make([]byte, 6), 4, 2)
	require.ErrorIs(t, err, errs.ErrInvalidLength)

	err = Transpose(make([]byte, 6), make([]byte, 6), 0, 6)
	require.ErrorIs(t, err, errs.ErrInvalidLength)
}

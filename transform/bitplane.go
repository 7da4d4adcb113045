package transform

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/planar/errs"
)

// bitGroup is the number of bytes contributing one bit to every bit-plane byte.
const bitGroup = 8

// BitShuffle bit-transposes src into dst in plane-major order.
//
// src is split into len(src)/8 groups of 8 bytes. For bit position b (0 = MSB) and
// group g, bit b of the group's 8 bytes is packed MSB-first into
// dst[b*(len/8)+g]. len(src) must be a positive multiple of 8.
func BitShuffle(dst, src []byte) error {
	groups, err := bitGroups(dst, src)
	if err != nil {
		return err
	}

	for g := range groups {
		x := transpose8(binary.BigEndian.Uint64(src[g*bitGroup:]))
		for b := range bitGroup {
			dst[b*groups+g] = byte(x >> (56 - 8*b))
		}
	}

	return nil
}

// BitUnshuffle reverses BitShuffle: byte i of dst is rebuilt from bit i%8 of
// src[i/8 + b*(len/8)] for every plane b, plane b supplying output bit 7-b.
func BitUnshuffle(dst, src []byte) error {
	groups, err := bitGroups(dst, src)
	if err != nil {
		return err
	}

	for g := range groups {
		var x uint64
		for b := range bitGroup {
			x = x<<8 | uint64(src[b*groups+g])
		}
		binary.BigEndian.PutUint64(dst[g*bitGroup:], transpose8(x))
	}

	return nil
}

func bitGroups(dst, src []byte) (int, error) {
	if err := checkPair(dst, src); err != nil {
		return 0, err
	}
	if len(src)%bitGroup != 0 {
		return 0, fmt.Errorf("%w: %d bytes is not a multiple of %d", errs.ErrInvalidLength, len(src), bitGroup)
	}

	return len(src) / bitGroup, nil
}

// transpose8 transposes the 8x8 bit matrix packed in x, row r being byte r from
// the most significant end and column c being bit 7-c of that byte.
// The transpose is its own inverse.
func transpose8(x uint64) uint64 {
	t := (x ^ (x >> 7)) & 0x00AA00AA00AA00AA
	x = x ^ t ^ (t << 7)
	t = (x ^ (x >> 14)) & 0x0000CCCC0000CCCC
	x = x ^ t ^ (t << 14)
	t = (x ^ (x >> 28)) & 0x00000000F0F0F0F0
	x = x ^ t ^ (t << 28)

	return x
}

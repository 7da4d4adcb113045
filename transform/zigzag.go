package transform

// Zigzag16 maps a signed 16-bit value to an unsigned one keeping small
// magnitudes small: 0→0, -1→1, 1→2, -2→3, ...
func Zigzag16(v int16) uint16 {
	return uint16(v<<1) ^ uint16(v>>15) //nolint:gosec
}

// Unzigzag16 inverts Zigzag16.
func Unzigzag16(z uint16) int16 {
	return int16(z>>1) ^ -int16(z&1) //nolint:gosec
}

// Zigzag32 is the 32-bit form of Zigzag16.
func Zigzag32(v int32) uint32 {
	return uint32(v<<1) ^ uint32(v>>31) //nolint:gosec
}

// Unzigzag32 inverts Zigzag32.
func Unzigzag32(z uint32) int32 {
	return int32(z>>1) ^ -int32(z&1) //nolint:gosec
}

// zigzag maps v, which must lie in the signed range of a bits-wide integer, to
// its zigzag code of the same width.
func zigzag(v int64, bits uint) uint64 {
	mask := uint64(1)<<bits - 1
	return ((uint64(v) << 1) ^ uint64(v>>(bits-1))) & mask //nolint:gosec
}

// unzigzag inverts zigzag.
func unzigzag(z uint64) int64 {
	return int64(z>>1) ^ -int64(z&1) //nolint:gosec
}

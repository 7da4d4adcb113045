// Package transform implements the reversible byte and bit rearrangements and
// the delta encodings that make fixed-width telemetry channels easier to compress.
//
// # Layout transforms
//
// Layout transforms move bytes or bits without changing their values. Each has
// an exact inverse and preserves the buffer length:
//
//   - BytePlane: an N×W byte matrix (N elements of W bytes) becomes W planes of N
//     bytes, out[j*N+i] = element[i].byte[j]. InverseBytePlane transposes back.
//   - BitShuffle: a byte array of length L (a multiple of 8) is cut into L/8
//     groups of 8 bytes; bit b (MSB first) of the 8 bytes of group g is packed into
//     out[b*(L/8)+g], the first byte of the group landing in the MSB.
//     BitUnshuffle inverts it.
//
// Apply and Invert combine these into the three segment layouts (Raw, BytePlane
// and BitPlane, where BitPlane is a byte-plane transpose followed by a bit
// shuffle of the result).
//
// # Delta transforms
//
// DeltaSignMagnitude and DeltaZigzag rewrite a 16- or 32-bit channel in place,
// leaving element 0 as the reference and replacing every later element with its
// difference from the original predecessor:
//
//   - sign-magnitude: |diff| clamped to 0x7FFF / 0x7FFFFFFF, negative
//     differences flagged by the top bit;
//   - zigzag: diff clamped to the signed range of the width, then mapped by
//     (v << 1) ^ (v >> (bits-1)).
//
// Both saturate out-of-range differences instead of wrapping and report how
// many elements were clamped. UndoDeltaSignMagnitude and UndoDeltaZigzag restore
// the channel exactly when nothing was clamped.
//
// # Buffers
//
// Functions taking dst and src require len(dst) == len(src) and non-overlapping
// buffers. Every validation happens before the first write, so a failed call
// leaves dst untouched.
package transform

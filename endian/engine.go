// Package endian provides byte order utilities for fixed-width telemetry elements.
//
// Channels produced by the quantizer store every multi-byte field in a single byte
// order. The order is carried around as an EndianEngine so that the transforms which
// need to interpret element values (delta encoding) and the ones which only move
// bytes (byte-plane, bit-plane) agree on what "byte j of element i" means.
//
// # Basic Usage
//
// Little-endian is the default for planar artifacts because it matches the byte
// layout of the reference test vectors:
//
//	engine := endian.GetLittleEndianEngine()
//	q := quantize.NewQuantizer(quantize.WithEngine(engine))
//
// To reproduce host-order files exactly as a C program writing packed structs would:
//
//	engine := endian.GetNativeEndianEngine()
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() EndianEngine {
	// 0x0100 is 256: on a little-endian host the low byte (0x00) comes first.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetNativeEndianEngine returns the engine matching the host byte order.
func GetNativeEndianEngine() EndianEngine {
	return CheckEndianness()
}

// Uint reads an unsigned element of the given width (1, 2, 4 or 8 bytes) from b.
//
// Panics if width is not one of the supported sizes or b is shorter than width;
// callers validate widths before entering element loops.
func Uint(engine EndianEngine, b []byte, width int) uint64 {
	switch width {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(engine.Uint16(b))
	case 4:
		return uint64(engine.Uint32(b))
	case 8:
		return engine.Uint64(b)
	default:
		panic("endian: unsupported element width")
	}
}

// PutUint writes the low width bytes of v into b using the engine's byte order.
//
// Panics under the same conditions as Uint.
func PutUint(engine EndianEngine, b []byte, width int, v uint64) {
	switch width {
	case 1:
		b[0] = byte(v)
	case 2:
		engine.PutUint16(b, uint16(v)) //nolint:gosec
	case 4:
		engine.PutUint32(b, uint32(v)) //nolint:gosec
	case 8:
		engine.PutUint64(b, v)
	default:
		panic("endian: unsupported element width")
	}
}

package format

import "fmt"

type (
	TransformKind   uint8
	DeltaMode       uint8
	Field           uint8
	CompressionType uint8
)

const (
	TransformRaw       TransformKind = 0x1 // TransformRaw passes segment bytes through unchanged.
	TransformBytePlane TransformKind = 0x2 // TransformBytePlane groups bytes of equal offset into planes.
	TransformBitPlane  TransformKind = 0x3 // TransformBitPlane byte-plane transposes, then bit-transposes.
	TransformDelta     TransformKind = 0x4 // TransformDelta applies first-order delta encoding.

	DeltaSignMagnitude DeltaMode = 0x1 // DeltaSignMagnitude stores |diff| with a sign bit in the MSB.
	DeltaZigzag        DeltaMode = 0x2 // DeltaZigzag maps the clamped signed diff through zigzag.

	FieldRecord  Field = 0x1 // FieldRecord keeps the full packed record.
	FieldPower   Field = 0x2 // FieldPower selects the 32-bit power field.
	FieldVoltage Field = 0x3 // FieldVoltage selects the 16-bit voltage field.
	FieldCurrent Field = 0x4 // FieldCurrent selects the 32-bit current field.

	CompressionNone    CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd    CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2      CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4     CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
	CompressionDeflate CompressionType = 0x5 // CompressionDeflate represents raw DEFLATE (LZ77 + Huffman).
)

func (k TransformKind) String() string {
	switch k {
	case TransformRaw:
		return "Raw"
	case TransformBytePlane:
		return "BytePlane"
	case TransformBitPlane:
		return "BitPlane"
	case TransformDelta:
		return "Delta"
	default:
		return "Unknown"
	}
}

// IsLayout reports whether k only repositions bytes (Raw, BytePlane or BitPlane).
func (k TransformKind) IsLayout() bool {
	return k == TransformRaw || k == TransformBytePlane || k == TransformBitPlane
}

func (m DeltaMode) String() string {
	switch m {
	case DeltaSignMagnitude:
		return "SignMagnitude"
	case DeltaZigzag:
		return "Zigzag"
	default:
		return "Unknown"
	}
}

func (f Field) String() string {
	switch f {
	case FieldRecord:
		return "Record"
	case FieldPower:
		return "Power"
	case FieldVoltage:
		return "Voltage"
	case FieldCurrent:
		return "Current"
	default:
		return "Unknown"
	}
}

// Suffix returns the short channel tag used in artifact base names
// ("" for full records, "p", "u" and "i" for the scalar fields).
func (f Field) Suffix() string {
	switch f {
	case FieldPower:
		return "p"
	case FieldVoltage:
		return "u"
	case FieldCurrent:
		return "i"
	default:
		return ""
	}
}

// Tag returns the channel tag accepted by ParseField.
func (f Field) Tag() string {
	if f == FieldRecord {
		return "pui"
	}

	return f.Suffix()
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionDeflate:
		return "Deflate"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a case-insensitive codec name to its CompressionType.
func ParseCompression(name string) (CompressionType, error) {
	switch name {
	case "none", "None", "NONE":
		return CompressionNone, nil
	case "zstd", "Zstd", "ZSTD":
		return CompressionZstd, nil
	case "s2", "S2":
		return CompressionS2, nil
	case "lz4", "LZ4":
		return CompressionLZ4, nil
	case "deflate", "Deflate", "DEFLATE":
		return CompressionDeflate, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

// ParseField maps a channel tag ("pui", "p", "u", "i") to its Field.
func ParseField(tag string) (Field, error) {
	switch tag {
	case "pui":
		return FieldRecord, nil
	case "p":
		return FieldPower, nil
	case "u":
		return FieldVoltage, nil
	case "i":
		return FieldCurrent, nil
	default:
		return 0, fmt.Errorf("unknown channel: %q", tag)
	}
}

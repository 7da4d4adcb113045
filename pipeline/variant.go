package pipeline

import (
	"github.com/arloliu/planar/format"
	"github.com/arloliu/planar/segment"
)

// Variant is one transform applied to a channel, with the artifact base name it
// is written under.
type Variant struct {
	Base string
	Plan segment.Plan
}

// DeltaMode returns the delta variant used for field f: zigzag for power,
// sign-magnitude for voltage and current.
func DeltaMode(f format.Field) format.DeltaMode {
	if f == format.FieldPower {
		return format.DeltaZigzag
	}

	return format.DeltaSignMagnitude
}

// Variants returns the transforms applied to field f, in run order.
//
// Full records are only rearranged ("byte", "bit"). Scalar fields get the raw,
// byte-plane and bit-plane layouts, then the same three after delta encoding:
// raw_s, byte_s, bit_s, diff_s, diff_byte_s, diff_bit_s for suffix s.
func Variants(f format.Field) []Variant {
	if f == format.FieldRecord {
		return []Variant{
			{Base: "byte", Plan: segment.LayoutPlan(format.TransformBytePlane)},
			{Base: "bit", Plan: segment.LayoutPlan(format.TransformBitPlane)},
		}
	}

	s := "_" + f.Suffix()
	mode := DeltaMode(f)

	return []Variant{
		{Base: "raw" + s, Plan: segment.LayoutPlan(format.TransformRaw)},
		{Base: "byte" + s, Plan: segment.LayoutPlan(format.TransformBytePlane)},
		{Base: "bit" + s, Plan: segment.LayoutPlan(format.TransformBitPlane)},
		{Base: "diff" + s, Plan: segment.DeltaPlan(mode, format.TransformRaw)},
		{Base: "diff_byte" + s, Plan: segment.DeltaPlan(mode, format.TransformBytePlane)},
		{Base: "diff_bit" + s, Plan: segment.DeltaPlan(mode, format.TransformBitPlane)},
	}
}

// InputName returns the file name the quantized channel of f is written under.
func InputName(f format.Field) string {
	return f.Tag() + "_input.b"
}

package segment

import (
	"fmt"

	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
)

// Plan selects the transform applied to every segment.
type Plan struct {
	// Kind is the top-level transform.
	Kind format.TransformKind

	// Delta selects the delta variant when Kind is TransformDelta.
	Delta format.DeltaMode

	// Layout is the rearrangement applied after delta encoding when Kind is
	// TransformDelta (TransformRaw, TransformBytePlane or TransformBitPlane).
	Layout format.TransformKind
}

// LayoutPlan returns a plan applying a single layout transform.
func LayoutPlan(kind format.TransformKind) Plan {
	return Plan{Kind: kind, Layout: kind}
}

// DeltaPlan returns a plan that delta-encodes with mode and then rearranges with layout.
func DeltaPlan(mode format.DeltaMode, layout format.TransformKind) Plan {
	return Plan{Kind: format.TransformDelta, Delta: mode, Layout: layout}
}

// layout returns the byte rearrangement performed by the plan.
func (p Plan) layout() format.TransformKind {
	if p.Kind == format.TransformDelta {
		return p.Layout
	}

	return p.Kind
}

// String renders the plan as "Kind" or "Delta(Mode)+Layout".
func (p Plan) String() string {
	if p.Kind == format.TransformDelta {
		return fmt.Sprintf("%s(%s)+%s", p.Kind, p.Delta, p.Layout)
	}

	return p.Kind.String()
}

// validate checks the plan against a segment of segSize bytes holding
// elements of the given width.
func (p Plan) validate(width, segSize int) error {
	switch p.Kind {
	case format.TransformRaw, format.TransformBytePlane, format.TransformBitPlane:
	case format.TransformDelta:
		if p.Delta != format.DeltaSignMagnitude && p.Delta != format.DeltaZigzag {
			return fmt.Errorf("%w: delta mode %s", errs.ErrUnknownTransform, p.Delta)
		}
		if !p.Layout.IsLayout() {
			return fmt.Errorf("%w: delta layout %s", errs.ErrUnknownTransform, p.Layout)
		}
		if width != 2 && width != 4 {
			return fmt.Errorf("%w: delta encoding needs width 2 or 4, got %d", errs.ErrInvalidWidth, width)
		}
	default:
		return fmt.Errorf("%w: kind %s", errs.ErrUnknownTransform, p.Kind)
	}

	if p.layout() == format.TransformBitPlane && segSize%8 != 0 {
		return fmt.Errorf("%w: bit-plane segment of %d bytes is not a multiple of 8", errs.ErrInvalidLength, segSize)
	}

	return nil
}

// Artifact is the transformed output of one segment.
type Artifact struct {
	Name     string // Base plus zero-padded index, e.g. "bit_p.03"
	Base     string
	Index    int
	Plan     Plan
	Width    int    // element width of the source channel
	Elements int    // element count of the segment
	Clamped  int    // delta differences saturated while encoding
	Data     []byte // transformed bytes, Elements*Width long
}

// Size returns the payload size in bytes.
func (a Artifact) Size() int {
	return len(a.Data)
}

// ArtifactName returns the name of segment index of base: "<base>.<NN>".
func ArtifactName(base string, index int) string {
	return fmt.Sprintf("%s.%02d", base, index)
}

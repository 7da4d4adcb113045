package segment

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/arloliu/planar/channel"
	"github.com/arloliu/planar/endian"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
	"github.com/arloliu/planar/transform"
)

// Decode inverts a single artifact back into the bytes of its source segment.
// Delta artifacts with clamped differences decode to the saturated stream,
// not the original.
func Decode(a Artifact, engine endian.EndianEngine) ([]byte, error) {
	out := make([]byte, len(a.Data))
	if err := decodeInto(out, a, engine); err != nil {
		return nil, err
	}

	return out, nil
}

func decodeInto(dst []byte, a Artifact, engine endian.EndianEngine) error {
	if err := a.Plan.validate(a.Width, len(a.Data)); err != nil {
		return err
	}

	if err := transform.Invert(a.Plan.layout(), dst, a.Data, a.Width); err != nil {
		return err
	}

	if a.Plan.Kind == format.TransformDelta {
		return transform.UndoDelta(dst, a.Width, a.Plan.Delta, engine)
	}

	return nil
}

// Restore reassembles the channel an artifact set was dispatched from.
//
// Artifacts may be given in any order but must form the complete index range
// 0..n-1 of a single base name, plan and width; otherwise
// errs.ErrArtifactMismatch is returned.
func Restore(engine endian.EndianEngine, artifacts ...Artifact) (channel.Channel, error) {
	if len(artifacts) == 0 {
		return channel.Channel{}, errs.ErrEmptyBuffer
	}

	sorted := slices.SortedFunc(slices.Values(artifacts), func(a, b Artifact) int {
		return cmp.Compare(a.Index, b.Index)
	})

	first := sorted[0]
	parts := make([]channel.Channel, len(sorted))
	for i, a := range sorted {
		switch {
		case a.Index != i:
			return channel.Channel{}, fmt.Errorf("%w: missing segment %d of %s", errs.ErrArtifactMismatch, i, first.Base)
		case a.Base != first.Base || a.Plan != first.Plan || a.Width != first.Width:
			return channel.Channel{}, fmt.Errorf("%w: %s does not belong with %s", errs.ErrArtifactMismatch, a.Name, first.Name)
		case len(a.Data) != len(first.Data):
			return channel.Channel{}, fmt.Errorf("%w: %s is %d bytes, want %d", errs.ErrArtifactMismatch, a.Name, len(a.Data), len(first.Data))
		}

		data, err := Decode(a, engine)
		if err != nil {
			return channel.Channel{}, fmt.Errorf("failed to decode %s: %w", a.Name, err)
		}

		if parts[i], err = channel.New(data, a.Width); err != nil {
			return channel.Channel{}, err
		}
	}

	return channel.Concat(parts...)
}

package segment

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/planar/channel"
	"github.com/arloliu/planar/endian"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
	"github.com/arloliu/planar/internal/options"
	"github.com/arloliu/planar/internal/pool"
	"github.com/arloliu/planar/transform"
)

// Dispatcher splits channels into segments and transforms each segment with a
// fixed Plan. A Dispatcher is immutable after construction and safe for
// concurrent use.
type Dispatcher struct {
	factor      int
	kind        format.TransformKind
	deltaMode   format.DeltaMode
	deltaLayout format.TransformKind
	parallelism int
	verify      bool
	engine      endian.EndianEngine
	logger      *slog.Logger
}

// NewDispatcher creates a Dispatcher.
//
// Defaults: factor 1, TransformRaw, sign-magnitude delta followed by the raw
// layout, sequential processing, no verification, little-endian elements and a
// discarding logger.
func NewDispatcher(opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		factor:      1,
		kind:        format.TransformRaw,
		deltaMode:   format.DeltaSignMagnitude,
		deltaLayout: format.TransformRaw,
		parallelism: 1,
		engine:      endian.GetLittleEndianEngine(),
		logger:      slog.New(slog.DiscardHandler),
	}

	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	return d, nil
}

// Factor returns the configured segment count.
func (d *Dispatcher) Factor() int {
	return d.factor
}

// Plan returns the configured transform plan.
func (d *Dispatcher) Plan() Plan {
	if d.kind == format.TransformDelta {
		return DeltaPlan(d.deltaMode, d.deltaLayout)
	}

	return LayoutPlan(d.kind)
}

// Dispatch transforms ch with the configured plan and writes one artifact per
// segment to sink, in segment order.
//
// Parameters:
//   - ctx: Cancels the dispatch between segments
//   - ch: Source channel; its length must be divisible by the segment factor
//   - base: Artifact base name; artifact i is named "<base>.<i:02>"
//   - sink: Receiver of the artifacts
//
// Returns:
//   - []Artifact: The emitted artifacts in index order
//   - error: A validation error (before anything is written), an errs.ErrRoundTrip
//     verification failure, or the first sink error
func (d *Dispatcher) Dispatch(ctx context.Context, ch channel.Channel, base string, sink Sink) ([]Artifact, error) {
	return d.DispatchPlan(ctx, ch, d.Plan(), base, sink)
}

// DispatchPlan is Dispatch with an explicit plan overriding the configured one.
func (d *Dispatcher) DispatchPlan(ctx context.Context, ch channel.Channel, plan Plan, base string, sink Sink) ([]Artifact, error) {
	if sink == nil {
		return nil, errs.ErrNilSink
	}

	artifacts, err := d.Transform(ctx, ch, plan, base)
	if err != nil {
		return nil, err
	}

	for i, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return artifacts[:i], err
		}
		if err := sink.WriteArtifact(ctx, a); err != nil {
			return artifacts[:i], fmt.Errorf("failed to write artifact %s: %w", a.Name, err)
		}
	}

	d.logger.Debug("segments dispatched",
		slog.String("base", base),
		slog.String("plan", plan.String()),
		slog.Int("segments", len(artifacts)),
		slog.Int("bytes", ch.Size()))

	return artifacts, nil
}

// Transform computes the artifacts of ch under plan without writing them anywhere.
func (d *Dispatcher) Transform(ctx context.Context, ch channel.Channel, plan Plan, base string) ([]Artifact, error) {
	segments, err := d.split(ch, plan)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", base, err)
	}

	artifacts := make([]Artifact, len(segments))

	if d.parallelism <= 1 || len(segments) == 1 {
		for i, seg := range segments {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if artifacts[i], err = d.encode(seg, plan, base, i); err != nil {
				return nil, err
			}
		}

		return artifacts, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.parallelism)
	for i, seg := range segments {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			a, err := d.encode(seg, plan, base, i)
			if err != nil {
				return err
			}
			artifacts[i] = a

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return artifacts, nil
}

// Check reports whether ch can be dispatched under plan, without transforming
// anything.
func (d *Dispatcher) Check(ch channel.Channel, plan Plan) error {
	_, err := d.split(ch, plan)
	return err
}

func (d *Dispatcher) split(ch channel.Channel, plan Plan) ([]channel.Channel, error) {
	if ch.IsEmpty() {
		return nil, errs.ErrEmptyBuffer
	}

	segments, err := ch.Split(d.factor)
	if err != nil {
		return nil, err
	}

	if err := plan.validate(ch.Width(), segments[0].Size()); err != nil {
		return nil, err
	}

	return segments, nil
}

// encode transforms one segment. It never touches seg's memory.
func (d *Dispatcher) encode(seg channel.Channel, plan Plan, base string, index int) (Artifact, error) {
	width := seg.Width()
	src := seg.Bytes()
	out := make([]byte, len(src))

	a := Artifact{
		Name:     ArtifactName(base, index),
		Base:     base,
		Index:    index,
		Plan:     plan,
		Width:    width,
		Elements: seg.Len(),
		Data:     out,
	}

	if plan.Kind == format.TransformDelta {
		work := pool.GetScratch(len(src))
		defer pool.PutScratch(work)

		deltas := work.Bytes()
		copy(deltas, src)

		clamped, err := transform.Delta(deltas, width, plan.Delta, d.engine)
		if err != nil {
			return Artifact{}, err
		}
		a.Clamped = clamped

		if err := transform.Apply(plan.Layout, out, deltas, width); err != nil {
			return Artifact{}, err
		}
	} else if err := transform.Apply(plan.Kind, out, src, width); err != nil {
		return Artifact{}, err
	}

	if a.Clamped > 0 {
		d.logger.Warn("delta differences saturated",
			slog.String("artifact", a.Name),
			slog.Int("clamped", a.Clamped))
	}

	if d.verify && a.Clamped == 0 {
		if err := d.check(a, src); err != nil {
			return Artifact{}, err
		}
	}

	d.logger.Debug("segment transformed",
		slog.String("artifact", a.Name),
		slog.Int("elements", a.Elements),
		slog.Int("bytes", len(out)))

	return a, nil
}

func (d *Dispatcher) check(a Artifact, src []byte) error {
	scratch := pool.GetScratch(len(a.Data))
	defer pool.PutScratch(scratch)

	back := scratch.Bytes()
	if err := decodeInto(back, a, d.engine); err != nil {
		return fmt.Errorf("%w: %s: %w", errs.ErrRoundTrip, a.Name, err)
	}
	if !bytes.Equal(back, src) {
		return fmt.Errorf("%w: %s does not reproduce its segment", errs.ErrRoundTrip, a.Name)
	}

	return nil
}

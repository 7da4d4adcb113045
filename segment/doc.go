// Package segment splits a channel into equal segments and transforms each one
// independently, emitting one artifact per segment.
//
// # Dispatch
//
// A Dispatcher is configured once with a segment factor F and a Plan, then run
// over channels:
//
//	d, err := segment.NewDispatcher(
//	    segment.WithFactor(10),
//	    segment.WithKind(format.TransformBitPlane),
//	)
//	artifacts, err := d.Dispatch(ctx, ch, "bit_p", segment.NewDirSink("out"))
//
// The channel length must be divisible by F; all validation (factor, element
// width, bit-plane length) runs before the first segment is transformed, so a
// rejected dispatch writes nothing. Segments share no state: the output for
// segment i is identical to dispatching that segment alone with F = 1. Delta
// plans restart from a fresh reference element at each segment boundary.
//
// Segments may be transformed concurrently (WithParallelism); artifacts are
// still handed to the sink strictly in segment order.
//
// # Artifacts
//
// Artifact i of base name b is named "b.NN" (two-digit, zero-padded index).
// Restore inverts a complete artifact set back into the original channel.
package segment

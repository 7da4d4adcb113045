// Package planar rearranges fixed-point telemetry so that general-purpose
// compressors see more redundancy.
//
// Raw samples (power, voltage, current as float64) are quantized into packed
// 10-byte records and per-field channels, split into independent segments, and
// every segment is rewritten by one of a small set of reversible transforms:
//
//   - Raw: bytes unchanged
//   - BytePlane: all bytes of equal offset grouped into planes
//   - BitPlane: byte-plane transpose followed by an 8x8 bit-matrix transpose
//     (bitshuffle) of every 8-byte group
//   - Delta: first-order differences in sign-magnitude or zigzag form,
//     optionally followed by one of the layouts above
//
// # Basic Usage
//
//	channels, _ := planar.Quantize(samples)
//	sink := segment.NewDirSink("out")
//	artifacts, _ := planar.Dispatch(ctx, channels.Current, "bit_i", sink,
//	    segment.WithFactor(10),
//	    segment.WithKind(format.TransformBitPlane),
//	)
//
// Single buffers can be transformed without segmenting:
//
//	shuffled, _ := planar.Encode(format.TransformBitPlane, data, 4)
//	original, _ := planar.Decode(format.TransformBitPlane, shuffled, 4)
//
// # Package Structure
//
// This package holds convenience wrappers. The building blocks live in:
//   - quantize: float samples to packed fixed-point records and channels
//   - channel: element-width-aware byte buffers and segment views
//   - transform: byte-plane, bit-plane, delta and zigzag kernels
//   - segment: the segment dispatcher, artifact sinks and restore
//   - compress, measure: codecs and compressibility reports
//   - ingest, pipeline: CSV reading and the full variant run
package planar

import (
	"context"

	"github.com/arloliu/planar/channel"
	"github.com/arloliu/planar/format"
	"github.com/arloliu/planar/quantize"
	"github.com/arloliu/planar/segment"
	"github.com/arloliu/planar/transform"
)

// Quantize packs samples little-endian into record and field channels.
//
// Parameters:
//   - samples: Raw telemetry samples in index order
//   - opts: Optional quantizer options (byte order, logger)
//
// Returns:
//   - quantize.Channels: Records (width 10), Power (4), Voltage (2), Current (4)
//   - error: Invalid option
func Quantize(samples []quantize.Sample, opts ...quantize.Option) (quantize.Channels, error) {
	q, err := quantize.NewQuantizer(opts...)
	if err != nil {
		return quantize.Channels{}, err
	}

	return q.Channels(samples), nil
}

// Encode applies the layout transform kind to src, a sequence of width-byte
// elements, and returns the result in a new buffer.
func Encode(kind format.TransformKind, src []byte, width int) ([]byte, error) {
	dst := make([]byte, len(src))
	if err := transform.Apply(kind, dst, src, width); err != nil {
		return nil, err
	}

	return dst, nil
}

// Decode reverses Encode for the same kind and width.
func Decode(kind format.TransformKind, src []byte, width int) ([]byte, error) {
	dst := make([]byte, len(src))
	if err := transform.Invert(kind, dst, src, width); err != nil {
		return nil, err
	}

	return dst, nil
}

// Dispatch splits ch into segments and writes one transformed artifact per
// segment to sink, using a Dispatcher built from opts.
func Dispatch(ctx context.Context, ch channel.Channel, base string, sink segment.Sink, opts ...segment.Option) ([]segment.Artifact, error) {
	d, err := segment.NewDispatcher(opts...)
	if err != nil {
		return nil, err
	}

	return d.Dispatch(ctx, ch, base, sink)
}

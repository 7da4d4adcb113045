// Package pipeline runs the full transform experiment over a batch of samples:
// quantize, split every channel into segments, write each transform variant, and
// optionally measure how well the artifacts compress.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arloliu/planar/endian"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
	"github.com/arloliu/planar/internal/hash"
	"github.com/arloliu/planar/internal/options"
	"github.com/arloliu/planar/measure"
	"github.com/arloliu/planar/quantize"
	"github.com/arloliu/planar/segment"
)

const (
	// DefaultSegments is the segment factor of a run without WithSegments.
	DefaultSegments = 10

	// ReadmeName is the manifest file written next to the artifacts.
	ReadmeName = "readme"
)

// Config is the resolved configuration of a Runner.
type Config struct {
	Segments    int
	Fields      []format.Field
	Codecs      []format.CompressionType // empty disables measurement
	Parallelism int
	Verify      bool
	WriteInputs bool
	Engine      endian.EndianEngine
}

// Runner executes runs against one artifact sink.
type Runner struct {
	cfg    Config
	sink   segment.Sink
	logger *slog.Logger
}

// Result describes a completed run.
type Result struct {
	Samples   int
	Artifacts []segment.Artifact
	Clamped   int             // saturated delta differences across all artifacts
	Digest    uint64          // xxHash64 over every artifact payload in write order
	Report    *measure.Report // nil when no codecs are configured
}

// New creates a Runner writing to sink.
//
// Defaults: 10 segments, all four channels (records, power, voltage, current),
// no measurement, sequential processing, little-endian.
func New(sink segment.Sink, opts ...Option) (*Runner, error) {
	if sink == nil {
		return nil, errs.ErrNilSink
	}

	r := &Runner{
		cfg: Config{
			Segments:    DefaultSegments,
			Fields:      []format.Field{format.FieldRecord, format.FieldPower, format.FieldVoltage, format.FieldCurrent},
			Parallelism: 1,
			Engine:      endian.GetLittleEndianEngine(),
		},
		sink:   sink,
		logger: slog.New(slog.DiscardHandler),
	}

	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	return r, nil
}

// Config returns the resolved configuration.
func (r *Runner) Config() Config {
	return r.cfg
}

type job struct {
	field   format.Field
	variant Variant
}

// Run processes samples through every selected channel and variant.
//
// Every (channel, variant) pair is validated before anything is written, so a
// sample count that does not divide into the configured segments, or segments
// too short for the bit-plane layout, fail the run with no output.
func (r *Runner) Run(ctx context.Context, samples []quantize.Sample) (*Result, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no samples", errs.ErrEmptyBuffer)
	}

	q, err := quantize.NewQuantizer(quantize.WithEngine(r.cfg.Engine), quantize.WithLogger(r.logger))
	if err != nil {
		return nil, err
	}

	d, err := segment.NewDispatcher(
		segment.WithFactor(r.cfg.Segments),
		segment.WithParallelism(r.cfg.Parallelism),
		segment.WithVerify(r.cfg.Verify),
		segment.WithEngine(r.cfg.Engine),
		segment.WithLogger(r.logger),
	)
	if err != nil {
		return nil, err
	}

	channels := q.Channels(samples)

	var jobs []job
	for _, f := range r.cfg.Fields {
		ch, err := channels.Get(f)
		if err != nil {
			return nil, err
		}
		for _, v := range Variants(f) {
			if err := d.Check(ch, v.Plan); err != nil {
				return nil, fmt.Errorf("%s: %w", v.Base, err)
			}
			jobs = append(jobs, job{field: f, variant: v})
		}
	}

	files, canWriteFiles := r.sink.(segment.FileWriter)
	if r.cfg.WriteInputs {
		if !canWriteFiles {
			return nil, fmt.Errorf("%w: sink cannot store input files", errs.ErrInvalidArgument)
		}
		for _, f := range r.cfg.Fields {
			ch, _ := channels.Get(f)
			if err := files.WriteFile(ctx, InputName(f), ch.Bytes()); err != nil {
				return nil, fmt.Errorf("failed to write input channel: %w", err)
			}
		}
	}

	result := &Result{Samples: len(samples)}
	digest := hash.NewDigest()

	for _, j := range jobs {
		ch, _ := channels.Get(j.field)

		artifacts, err := d.DispatchPlan(ctx, ch, j.variant.Plan, j.variant.Base, r.sink)
		if err != nil {
			return nil, err
		}

		for _, a := range artifacts {
			_, _ = digest.Write(a.Data)
			result.Clamped += a.Clamped
		}
		result.Artifacts = append(result.Artifacts, artifacts...)

		r.logger.Info("variant written",
			slog.String("field", j.field.String()),
			slog.String("base", j.variant.Base),
			slog.String("plan", j.variant.Plan.String()),
			slog.Int("segments", len(artifacts)))
	}
	result.Digest = digest.Sum64()

	if canWriteFiles {
		if err := files.WriteFile(ctx, ReadmeName, []byte(r.readme(len(samples), result.Digest))); err != nil {
			return nil, fmt.Errorf("failed to write readme: %w", err)
		}
	}

	if len(r.cfg.Codecs) > 0 {
		m, err := measure.NewMeasurer(
			measure.WithCodecs(r.cfg.Codecs...),
			measure.WithParallelism(r.cfg.Parallelism),
			measure.WithLogger(r.logger),
		)
		if err != nil {
			return nil, err
		}

		report, err := m.Measure(ctx, result.Artifacts)
		if err != nil {
			return nil, err
		}
		result.Report = &report
	}

	return result, nil
}

// readme renders one manifest line per processed channel.
func (r *Runner) readme(lines int, digest uint64) string {
	var b strings.Builder
	segLen := lines / r.cfg.Segments

	for _, f := range r.cfg.Fields {
		name := strings.ToLower(f.String())
		if f == format.FieldRecord {
			name = "puis"
		}

		width, _ := quantize.FieldWidth(f)
		fmt.Fprintf(&b, "####  test %s, segments %d, segsize %d*%d  ####\n",
			name, r.cfg.Segments, width, segLen)
	}
	fmt.Fprintf(&b, "xxh64 %016x\n", digest)

	return b.String()
}

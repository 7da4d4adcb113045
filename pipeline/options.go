package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/arloliu/planar/endian"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
	"github.com/arloliu/planar/internal/options"
)

// Option configures a Runner.
type Option = options.Option[*Runner]

// WithSegments sets the segment factor applied to every channel.
func WithSegments(n int) Option {
	return options.New(func(r *Runner) error {
		if n <= 0 {
			return fmt.Errorf("%w: segments=%d", errs.ErrSegmentFactor, n)
		}
		r.cfg.Segments = n

		return nil
	})
}

// WithFields selects the channels to process, in order. Duplicates are dropped.
func WithFields(fields ...format.Field) Option {
	return options.New(func(r *Runner) error {
		if len(fields) == 0 {
			return errors.New("no channels selected")
		}

		out := make([]format.Field, 0, len(fields))
		for _, f := range fields {
			if f.Tag() == "" {
				return fmt.Errorf("%w: field %s", errs.ErrInvalidArgument, f)
			}
			if !slices.Contains(out, f) {
				out = append(out, f)
			}
		}
		r.cfg.Fields = out

		return nil
	})
}

// WithCodecs enables compressibility measurement with the given codecs.
func WithCodecs(types ...format.CompressionType) Option {
	return options.NoError(func(r *Runner) {
		r.cfg.Codecs = slices.Clone(types)
	})
}

// WithParallelism bounds concurrent segment transforms and compressions.
func WithParallelism(n int) Option {
	return options.NoError(func(r *Runner) {
		r.cfg.Parallelism = max(n, 1)
	})
}

// WithVerify round-trips every segment through its inverse before writing it.
func WithVerify(verify bool) Option {
	return options.NoError(func(r *Runner) {
		r.cfg.Verify = verify
	})
}

// WithWriteInputs also writes the quantized channels as <tag>_input.b files
// when the sink can store named files.
func WithWriteInputs(write bool) Option {
	return options.NoError(func(r *Runner) {
		r.cfg.WriteInputs = write
	})
}

// WithEngine sets the byte order of quantized records and delta elements.
func WithEngine(engine endian.EndianEngine) Option {
	return options.New(func(r *Runner) error {
		if engine == nil {
			return errors.New("nil endian engine")
		}
		r.cfg.Engine = engine

		return nil
	})
}

// WithLogger sets the logger passed down to every stage.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	})
}

package segment

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/arloliu/planar/endian"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
	"github.com/arloliu/planar/internal/options"
)

// Option configures a Dispatcher.
type Option = options.Option[*Dispatcher]

// WithFactor sets the number of segments each channel is split into. The default is 1.
func WithFactor(factor int) Option {
	return options.New(func(d *Dispatcher) error {
		if factor <= 0 {
			return fmt.Errorf("%w: factor=%d", errs.ErrSegmentFactor, factor)
		}
		d.factor = factor

		return nil
	})
}

// WithKind sets the top-level transform. TransformDelta uses the delta mode and
// layout given by WithDeltaMode and WithDeltaLayout.
func WithKind(kind format.TransformKind) Option {
	return options.NoError(func(d *Dispatcher) {
		d.kind = kind
	})
}

// WithPlan sets the whole transform plan at once.
func WithPlan(plan Plan) Option {
	return options.NoError(func(d *Dispatcher) {
		d.kind = plan.Kind
		d.deltaMode = plan.Delta
		d.deltaLayout = plan.Layout
	})
}

// WithDeltaMode selects the delta variant. The default is sign-magnitude.
func WithDeltaMode(mode format.DeltaMode) Option {
	return options.NoError(func(d *Dispatcher) {
		d.deltaMode = mode
	})
}

// WithDeltaLayout sets the layout applied after delta encoding. The default is raw.
func WithDeltaLayout(kind format.TransformKind) Option {
	return options.NoError(func(d *Dispatcher) {
		d.deltaLayout = kind
	})
}

// WithParallelism bounds how many segments are transformed concurrently.
// Values below 1 are treated as 1.
func WithParallelism(n int) Option {
	return options.NoError(func(d *Dispatcher) {
		d.parallelism = max(n, 1)
	})
}

// WithVerify makes the dispatcher invert every segment and compare it to the
// source before emitting it. Delta segments with clamped differences are not
// verified because saturation is lossy.
func WithVerify(verify bool) Option {
	return options.NoError(func(d *Dispatcher) {
		d.verify = verify
	})
}

// WithEngine sets the byte order used to interpret elements for delta encoding.
// The default is little-endian.
func WithEngine(engine endian.EndianEngine) Option {
	return options.New(func(d *Dispatcher) error {
		if engine == nil {
			return errors.New("nil endian engine")
		}
		d.engine = engine

		return nil
	})
}

// WithLogger sets the logger for per-segment debug output.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	})
}

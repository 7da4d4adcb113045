package quantize

import (
	"errors"
	"log/slog"

	"github.com/arloliu/planar/endian"
	"github.com/arloliu/planar/internal/options"
)

// Option configures a Quantizer.
type Option = options.Option[*Quantizer]

func applyOptions(q *Quantizer, opts ...Option) error {
	return options.Apply(q, opts...)
}

// WithEngine sets the byte order of packed fields.
func WithEngine(engine endian.EndianEngine) Option {
	return options.New(func(q *Quantizer) error {
		if engine == nil {
			return errors.New("nil endian engine")
		}
		q.engine = engine

		return nil
	})
}

// WithLittleEndian packs fields little-endian (the default).
func WithLittleEndian() Option {
	return options.NoError(func(q *Quantizer) {
		q.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian packs fields big-endian.
func WithBigEndian() Option {
	return options.NoError(func(q *Quantizer) {
		q.engine = endian.GetBigEndianEngine()
	})
}

// WithNativeEndian packs fields in host byte order.
func WithNativeEndian() Option {
	return options.NoError(func(q *Quantizer) {
		q.engine = endian.GetNativeEndianEngine()
	})
}

// WithLogger sets the logger used for per-sample debug output.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(q *Quantizer) {
		if logger != nil {
			q.logger = logger
		}
	})
}

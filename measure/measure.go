// Package measure reports how well segment artifacts compress under a set of
// general-purpose codecs.
package measure

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/planar/compress"
	"github.com/arloliu/planar/format"
	"github.com/arloliu/planar/internal/hash"
	"github.com/arloliu/planar/internal/options"
	"github.com/arloliu/planar/segment"
)

// Entry is the result of compressing one artifact with one codec.
type Entry struct {
	Artifact string
	Base     string
	Index    int
	Checksum uint64 // xxHash64 of the uncompressed artifact
	compress.CompressionStats
}

// Measurer compresses artifacts with each configured codec.
type Measurer struct {
	codecs      []format.CompressionType
	parallelism int
	logger      *slog.Logger
}

// Option configures a Measurer.
type Option = options.Option[*Measurer]

// NewMeasurer creates a Measurer. By default every built-in codec except
// CompressionNone is measured, with up to 4 compressions in flight.
func NewMeasurer(opts ...Option) (*Measurer, error) {
	m := &Measurer{
		codecs:      defaultCodecs(),
		parallelism: 4,
		logger:      slog.New(slog.DiscardHandler),
	}

	if err := options.Apply(m, opts...); err != nil {
		return nil, err
	}

	return m, nil
}

func defaultCodecs() []format.CompressionType {
	return slices.DeleteFunc(compress.BuiltinTypes(), func(ct format.CompressionType) bool {
		return ct == format.CompressionNone
	})
}

// WithCodecs replaces the measured codecs. Duplicates are dropped.
func WithCodecs(types ...format.CompressionType) Option {
	return options.New(func(m *Measurer) error {
		if len(types) == 0 {
			return fmt.Errorf("no codecs to measure")
		}

		codecs := make([]format.CompressionType, 0, len(types))
		for _, ct := range types {
			if _, err := compress.GetCodec(ct); err != nil {
				return err
			}
			if !slices.Contains(codecs, ct) {
				codecs = append(codecs, ct)
			}
		}
		m.codecs = codecs

		return nil
	})
}

// WithParallelism bounds the number of concurrent compressions. Values below 1
// are treated as 1.
func WithParallelism(n int) Option {
	return options.NoError(func(m *Measurer) {
		m.parallelism = max(n, 1)
	})
}

// WithLogger sets the logger for per-entry debug output.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(m *Measurer) {
		if logger != nil {
			m.logger = logger
		}
	})
}

// Codecs returns the measured compression types.
func (m *Measurer) Codecs() []format.CompressionType {
	return slices.Clone(m.codecs)
}

// Measure compresses every artifact with every codec and verifies each
// decompression.
//
// The entries of the returned report are sorted by artifact name, then codec,
// regardless of completion order.
func (m *Measurer) Measure(ctx context.Context, artifacts []segment.Artifact) (Report, error) {
	entries := make([]Entry, len(artifacts)*len(m.codecs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.parallelism)

	for i, a := range artifacts {
		sum := hash.Checksum(a.Data)
		for j, ct := range m.codecs {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				stats, err := compress.Measure(ct, a.Data)
				if err != nil {
					return fmt.Errorf("failed to measure %s: %w", a.Name, err)
				}

				entries[i*len(m.codecs)+j] = Entry{
					Artifact:         a.Name,
					Base:             a.Base,
					Index:            a.Index,
					Checksum:         sum,
					CompressionStats: stats,
				}

				m.logger.Debug("artifact measured",
					slog.String("artifact", a.Name),
					slog.String("codec", ct.String()),
					slog.Int64("compressed", stats.CompressedSize))

				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(a.Artifact, b.Artifact),
			cmp.Compare(a.Algorithm, b.Algorithm),
		)
	})

	return Report{Entries: entries}, nil
}

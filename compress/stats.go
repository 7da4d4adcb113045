package compress

import (
	"bytes"
	"fmt"
	"time"

	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
)

// CompressionStats describes one compress/decompress cycle of a payload.
type CompressionStats struct {
	// Algorithm identifies the codec used.
	Algorithm format.CompressionType

	// OriginalSize is the payload size before compression.
	OriginalSize int64

	// CompressedSize is the payload size after compression.
	CompressedSize int64

	// CompressionTimeNs is the wall time spent compressing.
	CompressionTimeNs int64

	// DecompressionTimeNs is the wall time spent decompressing.
	DecompressionTimeNs int64
}

// CompressionRatio returns CompressedSize / OriginalSize, or 0 for an empty payload.
// Values below 1.0 mean the payload shrank.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space as a percentage of the original size.
// It is negative when compression expanded the payload.
func (s CompressionStats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.CompressionRatio()) * 100.0
}

// Measure compresses data with the built-in codec for compressionType,
// decompresses the result and checks it reproduces data.
//
// Returns errs.ErrRoundTrip when the decompressed payload differs from data.
func Measure(compressionType format.CompressionType, data []byte) (CompressionStats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return CompressionStats{}, err
	}

	stats := CompressionStats{
		Algorithm:    compressionType,
		OriginalSize: int64(len(data)),
	}

	start := time.Now()
	packed, err := codec.Compress(data)
	if err != nil {
		return CompressionStats{}, fmt.Errorf("%s compression failed: %w", compressionType, err)
	}
	stats.CompressionTimeNs = time.Since(start).Nanoseconds()
	stats.CompressedSize = int64(len(packed))

	start = time.Now()
	unpacked, err := codec.Decompress(packed)
	if err != nil {
		return CompressionStats{}, fmt.Errorf("%s decompression failed: %w", compressionType, err)
	}
	stats.DecompressionTimeNs = time.Since(start).Nanoseconds()

	if !bytes.Equal(unpacked, data) {
		return CompressionStats{}, fmt.Errorf("%w: %s codec", errs.ErrRoundTrip, compressionType)
	}

	return stats, nil
}

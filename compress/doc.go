// Package compress provides the general-purpose codecs used to measure how well
// transformed telemetry artifacts compress.
//
// The transforms in this module never shrink data by themselves; they reorder
// bytes and bits so that a downstream entropy coder sees longer runs and more
// repetitive structure. This package wraps the coders that decide whether a
// transform paid off:
//   - None: identity, the baseline every ratio is compared against
//   - Zstd: best ratio, moderate speed (klauspost/compress/zstd)
//   - S2: Snappy-compatible, fast with a good ratio (klauspost/compress/s2)
//   - LZ4: fastest decompression, block format (pierrec/lz4/v4)
//   - Deflate: raw DEFLATE at the default level, the zlib-family reference point
//     (klauspost/compress/flate)
//
// All codecs share one interface:
//
//	type Codec interface {
//	    Compress(data []byte) ([]byte, error)
//	    Decompress(data []byte) ([]byte, error)
//	}
//
// Codecs are stateless values backed by pooled encoders and are safe for
// concurrent use:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	packed, err := codec.Compress(artifact.Data)
//
// Measure runs a full compress/decompress cycle, checks that the payload
// survives it, and reports sizes and timings as CompressionStats.
package compress

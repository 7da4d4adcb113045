package hash

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Checksum computes the xxHash64 of an artifact payload.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// ChecksumHex formats Checksum(data) as 16 lower-case hex digits.
func ChecksumHex(data []byte) string {
	s := strconv.FormatUint(Checksum(data), 16)
	for len(s) < 16 {
		s = "0" + s
	}

	return s
}

// Digest accumulates a checksum over several payloads written in order,
// equal to Checksum of their concatenation.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest creates an empty Digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// Write adds p to the running checksum. It never fails.
func (d *Digest) Write(p []byte) (int, error) {
	return d.d.Write(p)
}

// Sum64 returns the checksum of everything written so far.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}

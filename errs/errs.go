// Package errs defines the sentinel errors returned by planar packages.
//
// Argument-validation errors wrap ErrInvalidArgument, so callers can test for the
// whole family with errors.Is(err, errs.ErrInvalidArgument) or for a precise cause
// with the specific sentinel.
package errs

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the root of every validation failure detected before a
// transform mutates or emits anything.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	// ErrInvalidWidth indicates an element width outside the set supported by the operation.
	ErrInvalidWidth = fmt.Errorf("%w: unsupported element width", ErrInvalidArgument)

	// ErrInvalidLength indicates a buffer length incompatible with the operation
	// (not a multiple of the element width, not a multiple of 8, mismatched dst/src).
	ErrInvalidLength = fmt.Errorf("%w: invalid buffer length", ErrInvalidArgument)

	// ErrEmptyBuffer indicates a nil or zero-length input buffer.
	ErrEmptyBuffer = fmt.Errorf("%w: empty buffer", ErrInvalidArgument)

	// ErrSegmentFactor indicates a segment factor that is not positive or does not
	// divide the channel length.
	ErrSegmentFactor = fmt.Errorf("%w: invalid segment factor", ErrInvalidArgument)

	// ErrUnknownTransform indicates a transform kind or delta mode that is not defined.
	ErrUnknownTransform = fmt.Errorf("%w: unknown transform", ErrInvalidArgument)

	// ErrNilSink indicates a dispatcher configured without an artifact sink.
	ErrNilSink = fmt.Errorf("%w: nil artifact sink", ErrInvalidArgument)
)

var (
	// ErrInvalidRecord indicates a byte sequence too short to hold a packed record.
	ErrInvalidRecord = errors.New("invalid fixed-point record")

	// ErrRoundTrip indicates an inverse transform that failed to reproduce its input.
	ErrRoundTrip = errors.New("round-trip verification failed")

	// ErrArtifactMismatch indicates an artifact set that cannot be restored
	// (missing indices or inconsistent sizes).
	ErrArtifactMismatch = errors.New("artifact set mismatch")
)

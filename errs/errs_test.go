package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvalidArgumentFamily(t *testing.T) {
	family := []error{ErrInvalidWidth, ErrInvalidLength, ErrEmptyBuffer, ErrSegmentFactor, ErrUnknownTransform, ErrNilSink}
	for _, err := range family {
		require.ErrorIs(t, err, ErrInvalidArgument, err.Error())

		wrapped := fmt.Errorf("%w: width=3", err)
		require.ErrorIs(t, wrapped, err)
		require.ErrorIs(t, wrapped, ErrInvalidArgument)
	}
}

func TestNonArgumentErrors(t *testing.T) {
	for _, err := range []error{ErrInvalidRecord, ErrRoundTrip, ErrArtifactMismatch} {
		require.False(t, errors.Is(err, ErrInvalidArgument), err.Error())
	}
}

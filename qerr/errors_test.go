package qerr_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gabereiser/qalg/qerr"
)

func TestKindsAreDistinctAndRecognizable(t *testing.T) {
	require := require.New(t)

	err := qerr.EmptyAggregate.New("sum")
	require.True(qerr.EmptyAggregate.Is(err))
	require.False(qerr.MultipleResults.Is(err))
	require.Contains(err.Error(), "sum")
}

func TestBackendFailureWrapsUnderlyingError(t *testing.T) {
	require := require.New(t)

	cause := fmt.Errorf("connection reset")
	wrapped := qerr.BackendFailure.Wrap(cause, cause.Error())
	require.True(qerr.BackendFailure.Is(wrapped))
	require.Contains(wrapped.Error(), "connection reset")
}

func TestUnsupportedByBackendIsDistinguishableFromBackendFailure(t *testing.T) {
	require := require.New(t)

	unsupported := qerr.UnsupportedByBackend.New("non-equality predicate")
	require.True(qerr.UnsupportedByBackend.Is(unsupported))
	require.False(qerr.BackendFailure.Is(unsupported))
}

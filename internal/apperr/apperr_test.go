package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	require.Equal(t, 400, CodeValidation.HTTPStatus())
	require.Equal(t, 400, CodeConflict.HTTPStatus())
	require.Equal(t, 400, CodeInvalidState.HTTPStatus())
	require.Equal(t, 404, CodeNotFound.HTTPStatus())
	require.Equal(t, 403, CodeUnauthorized.HTTPStatus())
	require.Equal(t, 500, CodeInternal.HTTPStatus())
	require.Equal(t, 500, Code("bogus").HTTPStatus())
}

func TestCodeOfUnwrapsChain(t *testing.T) {
	inner := InvalidState("gig is no longer open")
	wrapped := fmt.Errorf("hire: %w", inner)

	require.Equal(t, CodeInvalidState, CodeOf(wrapped))
	require.True(t, IsCode(wrapped, CodeInvalidState))
	require.False(t, IsCode(wrapped, CodeNotFound))
}

func TestCodeOfPlainError(t *testing.T) {
	require.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "internal server error", err.Message)
}

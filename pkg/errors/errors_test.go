package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := ErrInternalServer.WithInternal(cause)

	require.Equal(t, "Internal server error: disk full", err.Error())
	require.ErrorIs(t, err, cause)
	require.Nil(t, ErrInternalServer.Internal, "sentinel must not be mutated")
}

func TestErrorMessageSkipsDuplicateCause(t *testing.T) {
	sentinel := New(CodeNotFound, "gone", http.StatusNotFound)
	err := sentinel.WithInternal(stderrors.New("gone"))
	require.Equal(t, "gone", err.Error())

	var nilErr *AppError
	require.Equal(t, "<nil>", nilErr.Error())
	require.Nil(t, nilErr.Unwrap())
}

func TestWithMessage(t *testing.T) {
	err := NewNotFound("Hero with ID %d not found", 7)
	require.Equal(t, CodeNotFound, err.Code)
	require.Equal(t, http.StatusNotFound, err.StatusCode)
	require.Equal(t, "Hero with ID 7 not found", err.Message)

	verbatim := NewBadRequest("100% wrong")
	require.Equal(t, "100% wrong", verbatim.Message)
	require.Equal(t, CodeBadRequest, verbatim.Code)
	require.Equal(t, "Invalid request", ErrBadRequest.Message)
}

func TestFromError(t *testing.T) {
	require.Nil(t, FromError(nil))
	require.Same(t, ErrRateLimit, FromError(ErrRateLimit))

	wrapped := fmt.Errorf("lookup: %w", ErrNotFound)
	require.Same(t, ErrNotFound, FromError(wrapped))

	raw := stderrors.New("raw")
	out := FromError(raw)
	require.Equal(t, CodeInternal, out.Code)
	require.ErrorIs(t, out, raw)
}

func TestHTTPStatus(t *testing.T) {
	require.Equal(t, http.StatusOK, HTTPStatus(nil))
	require.Equal(t, http.StatusTooManyRequests, HTTPStatus(ErrRateLimit))
	require.Equal(t, http.StatusInternalServerError, HTTPStatus(stderrors.New("x")))
	require.Equal(t, http.StatusInternalServerError, HTTPStatus(&AppError{Code: "ODD"}))
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes rendered in the "error.code" field of API responses.
const (
	CodeBadRequest  = "BAD_REQUEST"
	CodeNotFound    = "NOT_FOUND"
	CodeRateLimited = "RATE_LIMIT_EXCEEDED"
	CodeInternal    = "INTERNAL_SERVER_ERROR"
)

// AppError is an error that knows how it should be presented to API clients. Internal is
// kept for logs and errors.Is checks but never serialised.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

var (
	ErrBadRequest     = New(CodeBadRequest, "Invalid request", http.StatusBadRequest)
	ErrNotFound       = New(CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrRateLimit      = New(CodeRateLimited, "Too many requests, please slow down", http.StatusTooManyRequests)
	ErrInternalServer = New(CodeInternal, "Internal server error", http.StatusInternalServerError)
)

// New builds an application error.
func New(code, message string, statusCode int) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: statusCode}
}

// NewBadRequest reports a client mistake with a specific message.
func NewBadRequest(message string) *AppError {
	return ErrBadRequest.WithMessage("%s", message)
}

// NewNotFound reports a missing resource with a specific message.
func NewNotFound(format string, args ...any) *AppError {
	return ErrNotFound.WithMessage(format, args...)
}

func (e *AppError) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.Internal != nil && e.Internal.Error() != e.Message:
		return e.Message + ": " + e.Internal.Error()
	default:
		return e.Message
	}
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Internal
}

// WithMessage returns a copy carrying a new client facing message. The format is used
// verbatim when no arguments are supplied.
func (e *AppError) WithMessage(format string, args ...any) *AppError {
	if e == nil {
		return nil
	}
	cpy := *e
	cpy.Message = format
	if len(args) > 0 {
		cpy.Message = fmt.Sprintf(format, args...)
	}
	return &cpy
}

// WithInternal returns a copy wrapping err.
func (e *AppError) WithInternal(err error) *AppError {
	if e == nil {
		return nil
	}
	cpy := *e
	cpy.Internal = err
	return &cpy
}

// FromError finds the AppError in err's chain. Anything else becomes an internal server
// error that still wraps the cause.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServer.WithInternal(err)
}

// HTTPStatus reports the status code err should be answered with.
func HTTPStatus(err error) int {
	appErr := FromError(err)
	if appErr == nil {
		return http.StatusOK
	}
	if appErr.StatusCode == 0 {
		return http.StatusInternalServerError
	}
	return appErr.StatusCode
}

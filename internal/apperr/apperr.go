// Package apperr defines the recoverable error kinds the API reports to
// callers, plus the mapping to HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a stable error code for programmatic handling.
type Code string

const (
	CodeValidation   Code = "validation"
	CodeNotFound     Code = "not_found"
	CodeUnauthorized Code = "unauthorized"
	CodeConflict     Code = "conflict"
	CodeInvalidState Code = "invalid_state"
	CodeInternal     Code = "internal"
)

// HTTPStatus maps a code to its response status. Conflict and invalid-state
// are deliberately 400s, not 409s, to match what API clients expect.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation, CodeConflict, CodeInvalidState:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a code, a user-facing message, and an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Validation, NotFound, Unauthorized, Conflict and InvalidState are
// shorthands for the five user-facing kinds.
func Validation(message string) *Error   { return New(CodeValidation, message) }
func NotFound(message string) *Error     { return New(CodeNotFound, message) }
func Unauthorized(message string) *Error { return New(CodeUnauthorized, message) }
func Conflict(message string) *Error     { return New(CodeConflict, message) }
func InvalidState(message string) *Error { return New(CodeInvalidState, message) }

// Internal wraps an infrastructure failure. These surface as 500s and are
// logged, never shown verbatim to the caller.
func Internal(err error) *Error {
	return Wrap(err, CodeInternal, "internal server error")
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code Code) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

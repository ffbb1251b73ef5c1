// Package apperrors defines the error taxonomy shared by all handlers and
// repositories. Repositories classify provider failures into one of the
// sentinel classes below; handlers map the class to an HTTP status code.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrGone         = errors.New("gone")
	ErrConflict     = errors.New("conflict")
	ErrServer       = errors.New("internal server error")
)

// Error carries a caller-facing message while remaining matchable against
// one of the sentinel classes via errors.Is.
type Error struct {
	class   error
	message string
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.class }

// Wrap attaches a message to an error class.
func Wrap(class error, message string) error {
	return &Error{class: class, message: message}
}

// StatusCode maps an error to its HTTP status code. Unclassified errors are
// treated as server errors.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrGone):
		return http.StatusGone
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// IsClientError reports whether the error maps to a 4xx response.
func IsClientError(err error) bool {
	code := StatusCode(err)
	return code >= 400 && code < 500
}

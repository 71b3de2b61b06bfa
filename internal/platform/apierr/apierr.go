package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks malformed mutation input.
	ErrValidation = errors.New("validation error")
	// ErrDuplicateName is a validation failure on a unique name.
	ErrDuplicateName = fmt.Errorf("%w: duplicate name", ErrValidation)
	// ErrUnauthorized marks missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks an authenticated actor without the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrDanglingReference marks a selection whose template no longer resolves.
	ErrDanglingReference = errors.New("dangling template reference")
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Validation wraps ErrValidation with a formatted reason.
func Validation(format string, args ...any) *Error {
	return New(http.StatusBadRequest, "validation_error", fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...)))
}

// Duplicate reports a unique-name conflict.
func Duplicate(name string) *Error {
	return New(http.StatusConflict, "duplicate_name", fmt.Errorf("%w: %q", ErrDuplicateName, name))
}

func NotFound(what string) *Error {
	return New(http.StatusNotFound, "not_found", fmt.Errorf("%s: %w", what, ErrNotFound))
}

func Unauthorized(reason string) *Error {
	return New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("%w: %s", ErrUnauthorized, reason))
}

func Forbidden(reason string) *Error {
	return New(http.StatusForbidden, "forbidden", fmt.Errorf("%w: %s", ErrForbidden, reason))
}

// StatusOf returns the HTTP status and code carried by err, or 500/internal.
func StatusOf(err error) (int, string) {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status, ae.Code
	}
	switch {
	case errors.Is(err, ErrDuplicateName):
		return http.StatusConflict, "duplicate_name"
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, "forbidden"
	}
	return http.StatusInternalServerError, "internal"
}

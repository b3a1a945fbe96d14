package store

import (
	"fmt"
	"net/http"
)

// Error is a storage error with an HTTP status code.
type Error struct {
	Code    int    // HTTP status code
	Message string // User-facing message
	Err     error  // Underlying error (optional)

	kind string // sentinel identity, preserved by WithMessage/WithCause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPCode returns the HTTP status code associated with this error.
func (e *Error) HTTPCode() int { return e.Code }

// WithMessage returns a new error with a custom message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{
		Code:    e.Code,
		Message: msg,
		Err:     e.Err,
		kind:    e.kind,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
		kind:    e.kind,
	}
}

// Is reports whether target is the same sentinel, so errors.Is matches
// WithMessage/WithCause variants.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.kind == t.kind
}

// Sentinel errors. The sqlite layer translates constraint violations into
// these; services translate them into domain error codes.
var (
	ErrNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "resource not found",
		kind:    "not_found",
	}

	ErrAlreadyExists = &Error{
		Code:    http.StatusConflict,
		Message: "resource already exists",
		kind:    "already_exists",
	}

	ErrConflict = &Error{
		Code:    http.StatusConflict,
		Message: "resource has dependent records",
		kind:    "conflict",
	}

	ErrInUse = &Error{
		Code:    http.StatusBadRequest,
		Message: "resource is still referenced",
		kind:    "in_use",
	}
)

// Package errors provides standardized domain errors with codes for the Stockroom API.
//
// Usage:
//
//	// In services - return typed errors
//	if tagExists {
//	    return errors.AlreadyExists("a tag with that name already exists in that store")
//	}
//
//	// In handlers - check with errors.Is
//	if errors.Is(err, errors.ErrNotFound) {
//	    response.NotFound(w, err.Error(), logger)
//	    return
//	}
//
//	// Or use the Code directly for switch statements
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    response.Error(w, domainErr.HTTPStatus(), domainErr, logger)
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
// Codes are the wire contract: clients switch on them, so they are
// lowercase snake_case and never renamed.
type Code string

// Error codes used throughout the application.
const (
	CodeNotFound           Code = "not_found"
	CodeAlreadyExists      Code = "already_exists"
	CodeValidation         Code = "validation_error"
	CodeConflict           Code = "conflict"
	CodeInternal           Code = "internal_error"
	CodeInvalidCredentials Code = "invalid_credentials"
	CodeMissingToken       Code = "missing_token"
	CodeInvalidToken       Code = "invalid_token"
	CodeTokenExpired       Code = "token_expired"
	CodeTokenRevoked       Code = "revoked_token"
	CodeFreshRequired      Code = "fresh_token_required"
	CodeCrossStoreLink     Code = "cross_store_link"
	CodeTagInUse           Code = "tag_in_use"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeConflict:
		return http.StatusConflict
	case CodeInvalidCredentials, CodeMissingToken, CodeInvalidToken,
		CodeTokenExpired, CodeTokenRevoked, CodeFreshRequired:
		return http.StatusUnauthorized
	case CodeValidation, CodeCrossStoreLink, CodeTagInUse:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound           = &Error{Code: CodeNotFound, Message: "not found"}
	ErrAlreadyExists      = &Error{Code: CodeAlreadyExists, Message: "already exists"}
	ErrValidation         = &Error{Code: CodeValidation, Message: "validation error"}
	ErrConflict           = &Error{Code: CodeConflict, Message: "conflict"}
	ErrInternal           = &Error{Code: CodeInternal, Message: "internal error"}
	ErrInvalidCredentials = &Error{Code: CodeInvalidCredentials, Message: "invalid credentials"}
	ErrMissingToken       = &Error{Code: CodeMissingToken, Message: "request does not contain an access token"}
	ErrInvalidToken       = &Error{Code: CodeInvalidToken, Message: "signature verification failed"}
	ErrTokenExpired       = &Error{Code: CodeTokenExpired, Message: "the token has expired"}
	ErrTokenRevoked       = &Error{Code: CodeTokenRevoked, Message: "the token has been revoked"}
	ErrFreshRequired      = &Error{Code: CodeFreshRequired, Message: "token is not fresh"}
	ErrCrossStoreLink     = &Error{Code: CodeCrossStoreLink, Message: "item and tag belong to different stores"}
	ErrTagInUse           = &Error{Code: CodeTagInUse, Message: "tag is still linked to items"}
)

// Constructor functions for creating errors with custom messages.

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// AlreadyExists creates an already exists error.
func AlreadyExists(msg string) *Error {
	return &Error{Code: CodeAlreadyExists, Message: msg}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Conflict creates a conflict error.
func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// InvalidCredentials creates an invalid credentials error.
func InvalidCredentials(msg string) *Error {
	return &Error{Code: CodeInvalidCredentials, Message: msg}
}

// CrossStoreLink creates a cross-store link error.
func CrossStoreLink(msg string) *Error {
	return &Error{Code: CodeCrossStoreLink, Message: msg}
}

// TagInUse creates a tag in use error.
func TagInUse(msg string) *Error {
	return &Error{Code: CodeTagInUse, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

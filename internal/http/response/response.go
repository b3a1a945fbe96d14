// Package response provides standardized HTTP response formatting and error handling utilities.
package response

import (
	"github.com/go-json-experiment/json"
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/stockroomapp/stockroom-server/internal/errors"
	"github.com/stockroomapp/stockroom-server/internal/store"
)

// JSON writes a JSON response with the given status code using json/v2.
func JSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	// json/v2 MarshalWrite doesn't add a newline, but that's fine for HTTP responses.
	if err := json.MarshalWrite(w, data); err != nil {
		if logger != nil {
			logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// Success writes a successful JSON response (200 OK).
func Success(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusOK, data, logger)
}

// Created writes a created response (201 Created).
func Created(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusCreated, data, logger)
}

// NoContent writes a no content response (204 No Content).
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Message writes a 200 OK response with a plain message body.
func Message(w http.ResponseWriter, message string, logger *slog.Logger) {
	JSON(w, http.StatusOK, map[string]string{"message": message}, logger)
}

// Error writes an error response for the given domain error.
// The body carries the machine-readable code and a human message.
func Error(w http.ResponseWriter, domainErr *errors.Error, logger *slog.Logger) {
	JSON(w, domainErr.HTTPStatus(), domainErr, logger)
}

// HandleError writes an appropriate HTTP response based on the error type.
// Domain errors carry their own code and status, store errors are translated,
// and anything else becomes a 500.
func HandleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var domainErr *errors.Error
	if stderrors.As(err, &domainErr) {
		Error(w, domainErr, logger)
		return
	}

	var storeErr *store.Error
	if stderrors.As(err, &storeErr) {
		Error(w, translateStoreError(storeErr), logger)
		return
	}

	// Unknown error = 500
	if logger != nil {
		logger.Error("Unhandled error", "error", err)
	}
	Error(w, errors.Internal("internal server error"), logger)
}

// translateStoreError maps storage sentinels onto the wire error codes.
// Services normally do this themselves; this is the handler-level fallback.
func translateStoreError(err *store.Error) *errors.Error {
	switch {
	case stderrors.Is(err, store.ErrNotFound):
		return errors.NotFound(err.Message)
	case stderrors.Is(err, store.ErrAlreadyExists):
		return errors.AlreadyExists(err.Message)
	case stderrors.Is(err, store.ErrConflict):
		return errors.Conflict(err.Message)
	case stderrors.Is(err, store.ErrInUse):
		return errors.TagInUse(err.Message)
	default:
		return errors.Internal(err.Message)
	}
}

package api

import (
	"github.com/go-json-experiment/json"
	"net/http"

	domainerrors "github.com/stockroomapp/stockroom-server/internal/errors"
)

// decodeJSON reads and decodes a JSON request body.
func decodeJSON[T any](r *http.Request) (T, error) {
	var v T
	if err := json.UnmarshalRead(r.Body, &v); err != nil {
		return v, domainerrors.Validation("request body must be valid JSON")
	}
	return v, nil
}

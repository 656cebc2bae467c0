package client

import (
	"errors"
	"fmt"

	"github.com/figofit/itfit-mvp-lite/internal/model"
)

// ErrNotFound is returned when the server has nothing for the lookup.
var ErrNotFound = errors.New("not found")

// IsValidationError reports whether the server rejected the request payload.
func IsValidationError(err error) bool { return model.IsValidationError(err) }

// APIError is any other non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("itfit api: status %d: %s", e.Status, e.Message)
}

type errorBody struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field"`
}

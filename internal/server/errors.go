// Package server provides the HTTP API for the style remixer.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/style-remixer/internal/presets"
	"github.com/jonathan/style-remixer/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrStreamingUnsupported indicates the response writer cannot flush server-sent events.
var ErrStreamingUnsupported = errors.New("streaming not supported")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		fieldErrs     validator.ValidationErrors
		schemaErr     *schemas.ValidationError
		notFoundErr   *presets.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.Is(err, ErrStreamingUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

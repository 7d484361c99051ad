package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/party-optimizer/internal/catalog"
	"github.com/jonathan/party-optimizer/internal/optimizer"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPersistenceDisabled is returned when a request asks to save a run but no database is configured
type ErrPersistenceDisabled struct{}

func (e *ErrPersistenceDisabled) Error() string {
	return "run persistence is not configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		persistenceErr *ErrPersistenceDisabled
		fieldErrs      validator.ValidationErrors
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.Is(err, optimizer.ErrInvalidConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, optimizer.ErrEmptyCatalog):
		return http.StatusUnprocessableEntity
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrDuplicate):
		return http.StatusConflict
	case errors.As(err, &persistenceErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

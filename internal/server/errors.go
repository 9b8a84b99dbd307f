package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	templatedomain "github.com/druckwerk/belegdesigner/internal/template/domain"
)

// APIError is the error envelope every handler returns.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *APIError) Error() string { return e.Code }

var ErrNotFound = &APIError{
	Status:  http.StatusNotFound,
	Code:    "not_found",
	Message: "resource not found",
}

func invalidRequestError() *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "request body or query could not be parsed",
	}
}

func newValidationError(field, code, message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    code,
		Message: message,
		Field:   field,
	}
}

// AbortWithError maps domain errors to the API envelope. Unknown errors are
// reported as opaque internal failures so persistence faults reach the
// caller without leaking internals.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	switch {
	case errors.Is(err, templatedomain.ErrNotFound):
		AbortWithError(c, ErrNotFound)
	case errors.Is(err, templatedomain.ErrInvalidID),
		errors.Is(err, templatedomain.ErrInvalidName),
		errors.Is(err, templatedomain.ErrInvalidDocumentType):
		AbortWithError(c, &APIError{
			Status:  http.StatusBadRequest,
			Code:    err.Error(),
			Message: "request failed validation",
		})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": &APIError{
			Code:    "internal_error",
			Message: "unexpected failure",
		}})
	}
}

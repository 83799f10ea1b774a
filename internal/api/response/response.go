package response

import (
	"net/http"

	"github.com/cuongbtq/jobboard-be/internal/api/domain"
)

// Success is the envelope of every successful operation
type Success struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Additional any    `json:"additional,omitempty"`
}

// NewSuccess creates a success envelope
func NewSuccess(message string, statusCode int, additional any) *Success {
	return &Success{
		Message:    message,
		StatusCode: statusCode,
		Additional: additional,
	}
}

// Failure is the envelope of every failed operation
type Failure struct {
	Message string              `json:"message"`
	Error   domain.Kind         `json:"error"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// FromError builds the failure envelope for err and the HTTP status it maps to.
// Internal causes are never copied into the envelope.
func FromError(err error) (int, Failure) {
	e := domain.AsError(err)
	return StatusFor(e.Kind), Failure{
		Message: e.Message,
		Error:   e.Kind,
		Fields:  e.Fields,
	}
}

// StatusFor maps an error kind to an HTTP status code
func StatusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

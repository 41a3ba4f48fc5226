// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// Sentinel errors for domain layer.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrConflict   = errors.New("resource already exists")
	ErrValidation = errors.New("validation failed")
)

// FieldError describes a single violated field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type fieldErrorer interface {
	FieldErrors() []FieldError
}

// RespondError maps domain errors to HTTP responses using RFC7807.
// For unmapped errors it returns the correlation id written to the client so
// callers can log it next to the cause.
func RespondError(w http.ResponseWriter, err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		problem := ProblemDetail{Title: "Validation Failed", Status: http.StatusBadRequest, Detail: err.Error()}
		var fe fieldErrorer
		if errors.As(err, &fe) {
			problem.Errors = fe.FieldErrors()
		}
		writeProblem(w, problem)
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrConflict):
		Problem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		instance := "urn:uuid:" + uuid.NewString()
		writeProblem(w, ProblemDetail{
			Title:    "Internal Error",
			Status:   http.StatusInternalServerError,
			Instance: instance,
		})
		return instance
	}
	return ""
}

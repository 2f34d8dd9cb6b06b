package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/lexiplay/internal/api/shared"
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/service"
	"github.com/phrazzld/lexiplay/internal/service/play"
	"github.com/phrazzld/lexiplay/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes so that
// internal error types never reach clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, play.ErrSessionNotFound),
		errors.Is(err, play.ErrContentUnavailable):
		return http.StatusNotFound

	case errors.Is(err, play.ErrSessionNotActive),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, play.ErrServiceClosed):
		return http.StatusServiceUnavailable

	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrUnknownGame),
		errors.Is(err, domain.ErrInvalidLevel),
		errors.Is(err, domain.ErrInvalidAssignment),
		errors.Is(err, domain.ErrDuplicateGame),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrChildNameTooLong):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.Is(err, store.ErrChildNotFound):
		return "Child not found"
	case errors.Is(err, play.ErrSessionNotFound):
		return "Session not found"
	case errors.Is(err, play.ErrContentUnavailable):
		return "No content available"
	case errors.Is(err, play.ErrSessionNotActive):
		return "Session is not active"
	case errors.Is(err, play.ErrServiceClosed):
		return "Service is shutting down"
	case errors.Is(err, domain.ErrUnknownGame):
		return "Unknown game"
	case errors.Is(err, domain.ErrInvalidLevel):
		return "Invalid level"
	case errors.Is(err, domain.ErrDuplicateGame):
		return "Game assigned more than once"
	case errors.Is(err, domain.ErrEmptyName):
		return "Name is required"
	case errors.Is(err, domain.ErrChildNameTooLong):
		return "Name is too long"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case MapErrorToStatusCode(err) == http.StatusBadRequest:
		return "Invalid request"
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted error. fallback replaces the generic 500 message when set.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError turns validator errors into a short message that
// names the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), validationTagMessage(fe.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gte", "lte":
		return "out of range"
	case "oneof":
		return "invalid value"
	case "uuid":
		return "invalid ID"
	default:
		return "validation failed"
	}
}

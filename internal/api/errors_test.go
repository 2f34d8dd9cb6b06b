package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/service"
	"github.com/phrazzld/lexiplay/internal/service/play"
	"github.com/phrazzld/lexiplay/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"child not found", service.NewProgressServiceError("report", "failed", store.ErrChildNotFound), http.StatusNotFound, "Child not found"},
		{"session not found", play.NewServiceError("get_session", "x", play.ErrSessionNotFound), http.StatusNotFound, "Session not found"},
		{"content unavailable", play.NewServiceError("start_session", "x", play.ErrContentUnavailable), http.StatusNotFound, "No content available"},
		{"session not active", play.NewServiceError("quit_session", "x", play.ErrSessionNotActive), http.StatusConflict, "Session is not active"},
		{"unknown game", fmt.Errorf("%w: %q", domain.ErrUnknownGame, "chess"), http.StatusBadRequest, "Unknown game"},
		{"invalid level", fmt.Errorf("%w: 9", domain.ErrInvalidLevel), http.StatusBadRequest, "Invalid level"},
		{"invalid request", fmt.Errorf("%w: bad", service.ErrInvalidRequest), http.StatusBadRequest, "Invalid request"},
		{"invalid entity", fmt.Errorf("%w: bad", store.ErrInvalidEntity), http.StatusBadRequest, "Invalid request"},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.status, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.message, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestSanitizeValidationErrorWithoutValidatorError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}

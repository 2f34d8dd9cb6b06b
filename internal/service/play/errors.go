package play

import (
	"errors"
	"fmt"

	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/domain/session"
)

// Errors returned by the play service, wrapped in a ServiceError.
var (
	// ErrSessionNotFound indicates an unknown or evicted session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionNotActive indicates the session already ended or was quit.
	ErrSessionNotActive = session.ErrSessionNotActive

	// ErrContentUnavailable indicates an empty level pool.
	ErrContentUnavailable = session.ErrContentUnavailable

	// ErrUnknownGame indicates a game name that is not supported.
	ErrUnknownGame = domain.ErrUnknownGame

	// ErrServiceClosed is returned after Close.
	ErrServiceClosed = errors.New("play service is closed")
)

// ServiceError is a custom error type for play service errors.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("play service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("play service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

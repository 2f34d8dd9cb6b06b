package service

import (
	"errors"
	"fmt"
)

// Common service errors. Callers check them with errors.Is; the API layer
// maps them to HTTP status codes.
var (
	// ErrInvalidRequest indicates input rejected before reaching the store.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNilDependency is returned by constructors given a nil dependency.
	ErrNilDependency = errors.New("required dependency is nil")
)

// ServiceError is a custom error type for service errors.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewChildServiceError creates a ServiceError for the child service.
func NewChildServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "child", Operation: operation, Message: message, Err: err}
}

// NewProgressServiceError creates a ServiceError for the progress service.
func NewProgressServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "progress", Operation: operation, Message: message, Err: err}
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
}

package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by every store implementation. Implementations
// wrap them, so callers test with errors.Is.
var (
	ErrNotFound  = errors.New("entity not found")
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity covers values rejected before or by the database:
	// failed domain validation, check constraints and dangling child IDs.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a transaction cannot begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")

	ErrChildNotFound   = fmt.Errorf("%w: child", ErrNotFound)
	ErrGameNotAssigned = fmt.Errorf("%w: game assignment", ErrNotFound)
)

// IsNotFoundError reports whether err is any kind of not found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is any kind of duplicate error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

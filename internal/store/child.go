package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lexiplay/internal/domain"
)

// ChildStore defines the interface for child and game assignment persistence.
type ChildStore interface {
	// Create saves a new child together with its game assignments.
	// Returns ErrInvalidEntity if validation fails and ErrDuplicate if the
	// child ID already exists.
	Create(ctx context.Context, child *domain.Child) error

	// GetByID retrieves a child and its game assignments.
	// Returns ErrChildNotFound if the child does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Child, error)

	// AssignGame creates or replaces the assignment of a game to a child.
	// The current level of an existing assignment is kept unless the
	// assignment carries a different one.
	// Returns ErrChildNotFound if the child does not exist.
	AssignGame(ctx context.Context, childID uuid.UUID, assignment domain.GameAssignment) error

	// WithTx returns a new ChildStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ChildStore
}

package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lexiplay/internal/domain"
)

// ProgressStore persists per-game levels and the session history of children.
// It is the session record sink of the level engine.
type ProgressStore interface {
	// GetLevel returns the child's current level for a game. A game that was
	// never assigned or played is at level 0.
	GetLevel(ctx context.Context, childID uuid.UUID, game domain.GameName) (int, error)

	// SetCurrentLevel stores the child's current level for a game, creating
	// the assignment when needed.
	// Returns ErrChildNotFound if the child does not exist.
	SetCurrentLevel(ctx context.Context, childID uuid.UUID, game domain.GameName, level int) error

	// AppendSessionRecord adds one entry to the child's session history.
	// Returns ErrInvalidEntity if validation fails and ErrChildNotFound if
	// the child does not exist.
	AppendSessionRecord(ctx context.Context, record *domain.SessionRecord) error

	// ListSessionRecords returns the child's session history, newest first.
	// A limit of zero or less returns every record.
	ListSessionRecords(ctx context.Context, childID uuid.UUID, limit int) ([]*domain.SessionRecord, error)

	// WithTx returns a new ProgressStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ProgressStore
}

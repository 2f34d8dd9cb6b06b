package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/store"
)

// ChildRepository defines the child persistence the services need.
type ChildRepository interface {
	Create(ctx context.Context, child *domain.Child) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Child, error)
	AssignGame(ctx context.Context, childID uuid.UUID, assignment domain.GameAssignment) error

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) ChildRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// ProgressRepository defines the level and history persistence the services need.
type ProgressRepository interface {
	GetLevel(ctx context.Context, childID uuid.UUID, game domain.GameName) (int, error)
	SetCurrentLevel(ctx context.Context, childID uuid.UUID, game domain.GameName, level int) error
	AppendSessionRecord(ctx context.Context, record *domain.SessionRecord) error
	ListSessionRecords(ctx context.Context, childID uuid.UUID, limit int) ([]*domain.SessionRecord, error)

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) ProgressRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// NewChildRepositoryAdapter allows a store.ChildStore to be used where a
// ChildRepository is expected.
func NewChildRepositoryAdapter(childStore store.ChildStore, db *sql.DB) ChildRepository {
	return &childRepositoryAdapter{childStore: childStore, db: db}
}

type childRepositoryAdapter struct {
	childStore store.ChildStore
	db         *sql.DB
}

func (a *childRepositoryAdapter) Create(ctx context.Context, child *domain.Child) error {
	return a.childStore.Create(ctx, child)
}

func (a *childRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Child, error) {
	return a.childStore.GetByID(ctx, id)
}

func (a *childRepositoryAdapter) AssignGame(
	ctx context.Context,
	childID uuid.UUID,
	assignment domain.GameAssignment,
) error {
	return a.childStore.AssignGame(ctx, childID, assignment)
}

func (a *childRepositoryAdapter) WithTx(tx *sql.Tx) ChildRepository {
	return &childRepositoryAdapter{childStore: a.childStore.WithTx(tx), db: a.db}
}

func (a *childRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// NewProgressRepositoryAdapter allows a store.ProgressStore to be used where a
// ProgressRepository is expected.
func NewProgressRepositoryAdapter(progressStore store.ProgressStore, db *sql.DB) ProgressRepository {
	return &progressRepositoryAdapter{progressStore: progressStore, db: db}
}

type progressRepositoryAdapter struct {
	progressStore store.ProgressStore
	db            *sql.DB
}

func (a *progressRepositoryAdapter) GetLevel(
	ctx context.Context,
	childID uuid.UUID,
	game domain.GameName,
) (int, error) {
	return a.progressStore.GetLevel(ctx, childID, game)
}

func (a *progressRepositoryAdapter) SetCurrentLevel(
	ctx context.Context,
	childID uuid.UUID,
	game domain.GameName,
	level int,
) error {
	return a.progressStore.SetCurrentLevel(ctx, childID, game, level)
}

func (a *progressRepositoryAdapter) AppendSessionRecord(ctx context.Context, record *domain.SessionRecord) error {
	return a.progressStore.AppendSessionRecord(ctx, record)
}

func (a *progressRepositoryAdapter) ListSessionRecords(
	ctx context.Context,
	childID uuid.UUID,
	limit int,
) ([]*domain.SessionRecord, error) {
	return a.progressStore.ListSessionRecords(ctx, childID, limit)
}

func (a *progressRepositoryAdapter) WithTx(tx *sql.Tx) ProgressRepository {
	return &progressRepositoryAdapter{progressStore: a.progressStore.WithTx(tx), db: a.db}
}

func (a *progressRepositoryAdapter) DB() *sql.DB {
	return a.db
}

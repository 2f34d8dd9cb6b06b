package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/platform/logger"
	"github.com/phrazzld/lexiplay/internal/store"
)

// PostgresChildStore implements the store.ChildStore interface
// using a PostgreSQL database as the storage backend.
type PostgresChildStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresChildStore creates a new PostgreSQL implementation of the ChildStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresChildStore(db store.DBTX, logger *slog.Logger) *PostgresChildStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresChildStore{
		db:     db,
		logger: logger.With(slog.String("component", "child_store")),
	}
}

// Ensure PostgresChildStore implements store.ChildStore interface
var _ store.ChildStore = (*PostgresChildStore)(nil)

// Create implements store.ChildStore.Create.
// The child row and its assignments are written with the store's DBTX; run it
// inside a transaction (see WithTx) to make the write atomic.
func (s *PostgresChildStore) Create(ctx context.Context, child *domain.Child) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := child.Validate(); err != nil {
		log.Warn("child validation failed during create",
			slog.String("error", err.Error()),
			slog.String("child_id", child.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO children (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.db.ExecContext(ctx, query, child.ID, child.Name, child.CreatedAt, child.UpdatedAt); err != nil {
		log.Error("failed to create child",
			slog.String("error", err.Error()),
			slog.String("child_id", child.ID.String()))
		return MapError(err)
	}

	for _, game := range child.Games {
		if err := s.insertAssignment(ctx, child.ID, game, child.UpdatedAt); err != nil {
			log.Error("failed to create game assignment",
				slog.String("error", err.Error()),
				slog.String("child_id", child.ID.String()),
				slog.String("game", string(game.GameName)))
			return err
		}
	}

	log.Info("child created successfully",
		slog.String("child_id", child.ID.String()),
		slog.Int("games", len(child.Games)))
	return nil
}

func (s *PostgresChildStore) insertAssignment(
	ctx context.Context,
	childID uuid.UUID,
	game domain.GameAssignment,
	now time.Time,
) error {
	query := `
		INSERT INTO child_games (child_id, game_name, assigned_level, current_level, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query, childID, string(game.GameName), game.AssignedLevel, game.CurrentLevel, now)
	return MapError(err)
}

// GetByID implements store.ChildStore.GetByID.
// Returns store.ErrChildNotFound if the child does not exist.
func (s *PostgresChildStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Child, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving child by ID", slog.String("child_id", id.String()))

	query := `
		SELECT id, name, created_at, updated_at
		FROM children
		WHERE id = $1
	`

	var child domain.Child
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&child.ID,
		&child.Name,
		&child.CreatedAt,
		&child.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("child not found", slog.String("child_id", id.String()))
			return nil, store.ErrChildNotFound
		}
		log.Error("failed to get child by ID",
			slog.String("error", err.Error()),
			slog.String("child_id", id.String()))
		return nil, MapError(err)
	}

	games, err := s.listAssignments(ctx, id)
	if err != nil {
		log.Error("failed to list game assignments",
			slog.String("error", err.Error()),
			slog.String("child_id", id.String()))
		return nil, err
	}
	child.Games = games

	return &child, nil
}

func (s *PostgresChildStore) listAssignments(ctx context.Context, childID uuid.UUID) ([]domain.GameAssignment, error) {
	query := `
		SELECT game_name, assigned_level, current_level
		FROM child_games
		WHERE child_id = $1
		ORDER BY game_name
	`

	rows, err := s.db.QueryContext(ctx, query, childID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	games := []domain.GameAssignment{}
	for rows.Next() {
		var (
			g    domain.GameAssignment
			name string
		)
		if err := rows.Scan(&name, &g.AssignedLevel, &g.CurrentLevel); err != nil {
			return nil, MapError(err)
		}
		g.GameName = domain.GameName(name)
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return games, nil
}

// AssignGame implements store.ChildStore.AssignGame.
// A new assignment starts at the given current level; an existing one only
// has its assigned level replaced.
// Returns store.ErrChildNotFound if the child does not exist.
func (s *PostgresChildStore) AssignGame(
	ctx context.Context,
	childID uuid.UUID,
	assignment domain.GameAssignment,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := assignment.Validate(); err != nil {
		log.Warn("game assignment validation failed",
			slog.String("error", err.Error()),
			slog.String("child_id", childID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO child_games (child_id, game_name, assigned_level, current_level, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (child_id, game_name)
		DO UPDATE SET assigned_level = EXCLUDED.assigned_level, updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		childID,
		string(assignment.GameName),
		assignment.AssignedLevel,
		assignment.CurrentLevel,
		time.Now().UTC(),
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Debug("assignment for unknown child", slog.String("child_id", childID.String()))
			return store.ErrChildNotFound
		}
		log.Error("failed to assign game",
			slog.String("error", err.Error()),
			slog.String("child_id", childID.String()),
			slog.String("game", string(assignment.GameName)))
		return MapError(err)
	}

	log.Info("game assigned",
		slog.String("child_id", childID.String()),
		slog.String("game", string(assignment.GameName)),
		slog.Int("assigned_level", assignment.AssignedLevel))
	return nil
}

// WithTx implements store.ChildStore.WithTx.
func (s *PostgresChildStore) WithTx(tx *sql.Tx) store.ChildStore {
	return &PostgresChildStore{
		db:     tx,
		logger: s.logger,
	}
}

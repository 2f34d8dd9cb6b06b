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

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the ProgressStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// GetLevel implements store.ProgressStore.GetLevel.
// The child row is joined so that an unknown child is distinguished from an
// unassigned game.
func (s *PostgresProgressStore) GetLevel(ctx context.Context, childID uuid.UUID, game domain.GameName) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT cg.current_level
		FROM children c
		LEFT JOIN child_games cg ON cg.child_id = c.id AND cg.game_name = $2
		WHERE c.id = $1
	`

	var level sql.NullInt64
	err := s.db.QueryRowContext(ctx, query, childID, string(game)).Scan(&level)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("child not found", slog.String("child_id", childID.String()))
			return 0, store.ErrChildNotFound
		}
		log.Error("failed to get level",
			slog.String("error", err.Error()),
			slog.String("child_id", childID.String()),
			slog.String("game", string(game)))
		return 0, MapError(err)
	}

	if !level.Valid {
		return domain.MinLevel, nil
	}
	return int(level.Int64), nil
}

// SetCurrentLevel implements store.ProgressStore.SetCurrentLevel.
func (s *PostgresProgressStore) SetCurrentLevel(
	ctx context.Context,
	childID uuid.UUID,
	game domain.GameName,
	level int,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !game.Valid() {
		return fmt.Errorf("%w: %w: %q", store.ErrInvalidEntity, domain.ErrUnknownGame, game)
	}
	if err := domain.ValidateLevel(level); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO child_games (child_id, game_name, assigned_level, current_level, updated_at)
		VALUES ($1, $2, 0, $3, $4)
		ON CONFLICT (child_id, game_name)
		DO UPDATE SET current_level = EXCLUDED.current_level, updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query, childID, string(game), level, time.Now().UTC())
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Debug("level update for unknown child", slog.String("child_id", childID.String()))
			return store.ErrChildNotFound
		}
		log.Error("failed to set current level",
			slog.String("error", err.Error()),
			slog.String("child_id", childID.String()),
			slog.String("game", string(game)))
		return MapError(err)
	}

	log.Debug("current level stored",
		slog.String("child_id", childID.String()),
		slog.String("game", string(game)),
		slog.Int("level", level))
	return nil
}

// AppendSessionRecord implements store.ProgressStore.AppendSessionRecord.
func (s *PostgresProgressStore) AppendSessionRecord(ctx context.Context, record *domain.SessionRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := record.Validate(); err != nil {
		log.Warn("session record validation failed",
			slog.String("error", err.Error()),
			slog.String("record_id", record.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO session_records (id, child_id, game_name, level, max_emotion, min_emotion, score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.ChildID,
		string(record.GameName),
		record.Level,
		string(record.MaxEmotion),
		string(record.MinEmotion),
		record.Score,
		record.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Debug("session record for unknown child", slog.String("child_id", record.ChildID.String()))
			return store.ErrChildNotFound
		}
		log.Error("failed to append session record",
			slog.String("error", err.Error()),
			slog.String("record_id", record.ID.String()),
			slog.String("child_id", record.ChildID.String()))
		return MapError(err)
	}

	log.Info("session record appended",
		slog.String("record_id", record.ID.String()),
		slog.String("child_id", record.ChildID.String()),
		slog.String("game", string(record.GameName)),
		slog.Int("level", record.Level),
		slog.Int("score", record.Score))
	return nil
}

// ListSessionRecords implements store.ProgressStore.ListSessionRecords.
func (s *PostgresProgressStore) ListSessionRecords(
	ctx context.Context,
	childID uuid.UUID,
	limit int,
) ([]*domain.SessionRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, child_id, game_name, level, max_emotion, min_emotion, score, created_at
		FROM session_records
		WHERE child_id = $1
		ORDER BY created_at DESC
	`
	args := []any{childID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list session records",
			slog.String("error", err.Error()),
			slog.String("child_id", childID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	records := []*domain.SessionRecord{}
	for rows.Next() {
		var (
			r                            domain.SessionRecord
			game, maxEmotion, minEmotion string
		)
		if err := rows.Scan(
			&r.ID,
			&r.ChildID,
			&game,
			&r.Level,
			&maxEmotion,
			&minEmotion,
			&r.Score,
			&r.CreatedAt,
		); err != nil {
			log.Error("failed to scan session record",
				slog.String("error", err.Error()),
				slog.String("child_id", childID.String()))
			return nil, MapError(err)
		}
		r.GameName = domain.GameName(game)
		r.MaxEmotion = domain.EmotionLabel(maxEmotion)
		r.MinEmotion = domain.EmotionLabel(minEmotion)
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Debug("session records listed",
		slog.String("child_id", childID.String()),
		slog.Int("count", len(records)))
	return records, nil
}

// WithTx implements store.ProgressStore.WithTx.
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{
		db:     tx,
		logger: s.logger,
	}
}

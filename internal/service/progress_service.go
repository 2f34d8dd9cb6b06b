package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/platform/logger"
	"github.com/phrazzld/lexiplay/internal/store"
	"github.com/phrazzld/lexiplay/internal/task"
)

// DefaultReportLimit caps the session history returned by Report when the
// caller asks for no limit.
const DefaultReportLimit = 100

// ChildReport is a child together with its session history, newest first.
type ChildReport struct {
	Child    *domain.Child           `json:"child"`
	Sessions []*domain.SessionRecord `json:"sessions"`
}

// ProgressService reads and writes the per-game progress of children.
type ProgressService interface {
	// CurrentLevel returns the level the child plays the game at. Unassigned
	// games are at level 0.
	CurrentLevel(ctx context.Context, childID uuid.UUID, game domain.GameName) (int, error)

	// RecordSession stores the new level and appends the session to the
	// history in one transaction.
	RecordSession(
		ctx context.Context,
		childID uuid.UUID,
		outcome domain.SessionOutcome,
		decision domain.LevelDecision,
	) error

	// Report returns the child and up to limit session records.
	Report(ctx context.Context, childID uuid.UUID, limit int) (*ChildReport, error)
}

type progressServiceImpl struct {
	progressRepo ProgressRepository
	childRepo    ChildRepository
	logger       *slog.Logger
}

// NewProgressService creates a new ProgressService.
// It returns an error if any of the required dependencies are nil.
func NewProgressService(
	progressRepo ProgressRepository,
	childRepo ChildRepository,
	logger *slog.Logger,
) (ProgressService, error) {
	if progressRepo == nil {
		return nil, fmt.Errorf("%w: progressRepo", ErrNilDependency)
	}
	if childRepo == nil {
		return nil, fmt.Errorf("%w: childRepo", ErrNilDependency)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &progressServiceImpl{
		progressRepo: progressRepo,
		childRepo:    childRepo,
		logger:       logger.With(slog.String("component", "progress_service")),
	}, nil
}

// The progress service is the session record sink of the task runner.
var _ task.SessionSink = (*progressServiceImpl)(nil)

// CurrentLevel implements ProgressService.CurrentLevel
func (s *progressServiceImpl) CurrentLevel(
	ctx context.Context,
	childID uuid.UUID,
	game domain.GameName,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !game.Valid() {
		return 0, NewProgressServiceError("current_level", "unknown game",
			invalid(fmt.Errorf("%w: %q", domain.ErrUnknownGame, game)))
	}

	level, err := s.progressRepo.GetLevel(ctx, childID, game)
	if err != nil {
		if store.IsNotFoundError(err) {
			return 0, NewProgressServiceError("current_level", "child not found", store.ErrChildNotFound)
		}
		log.Error("failed to read level",
			slog.String("error", err.Error()),
			slog.String("child_id", childID.String()),
			slog.String("game", string(game)))
		return 0, NewProgressServiceError("current_level", "failed to read level", err)
	}

	return domain.ClampLevel(level), nil
}

// RecordSession implements ProgressService.RecordSession
func (s *progressServiceImpl) RecordSession(
	ctx context.Context,
	childID uuid.UUID,
	outcome domain.SessionOutcome,
	decision domain.LevelDecision,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	record, err := domain.NewSessionRecord(childID, outcome, decision)
	if err != nil {
		return NewProgressServiceError("record_session", "invalid session record", invalid(err))
	}

	err = store.RunInTransaction(ctx, s.progressRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.progressRepo.WithTx(tx)
		if err := txRepo.SetCurrentLevel(ctx, childID, outcome.GameName, decision.NewLevel); err != nil {
			return err
		}
		return txRepo.AppendSessionRecord(ctx, record)
	})
	if err != nil {
		log.Error("failed to record session",
			slog.String("error", err.Error()),
			slog.String("child_id", childID.String()),
			slog.String("game", string(outcome.GameName)))
		return NewProgressServiceError("record_session", "failed to record session", err)
	}

	log.Info("session recorded",
		slog.String("child_id", childID.String()),
		slog.String("record_id", record.ID.String()),
		slog.String("game", string(outcome.GameName)),
		slog.Int("previous_level", outcome.CurrentLevel),
		slog.Int("new_level", decision.NewLevel))
	return nil
}

// Report implements ProgressService.Report
func (s *progressServiceImpl) Report(ctx context.Context, childID uuid.UUID, limit int) (*ChildReport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = DefaultReportLimit
	}

	child, err := s.childRepo.GetByID(ctx, childID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewProgressServiceError("report", "child not found", store.ErrChildNotFound)
		}
		log.Error("failed to retrieve child for report",
			slog.String("error", err.Error()),
			slog.String("child_id", childID.String()))
		return nil, NewProgressServiceError("report", "failed to retrieve child", err)
	}

	sessions, err := s.progressRepo.ListSessionRecords(ctx, childID, limit)
	if err != nil {
		log.Error("failed to list session records",
			slog.String("error", err.Error()),
			slog.String("child_id", childID.String()))
		return nil, NewProgressServiceError("report", "failed to list sessions", err)
	}

	return &ChildReport{Child: child, Sessions: sessions}, nil
}

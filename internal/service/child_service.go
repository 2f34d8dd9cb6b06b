package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/platform/logger"
	"github.com/phrazzld/lexiplay/internal/store"
)

// ChildService manages children and the games assigned to them.
type ChildService interface {
	// CreateChild registers a child with its initial game assignments.
	CreateChild(ctx context.Context, name string, games []domain.GameAssignment) (*domain.Child, error)

	// GetChild retrieves a child with every assignment.
	GetChild(ctx context.Context, childID uuid.UUID) (*domain.Child, error)

	// ActiveGames returns the assignments whose assigned level is still above
	// the current level.
	ActiveGames(ctx context.Context, childID uuid.UUID) ([]domain.GameAssignment, error)

	// AssignGame assigns a game or changes its assigned level. The current
	// level of an existing assignment is kept.
	AssignGame(ctx context.Context, childID uuid.UUID, game domain.GameName, assignedLevel int) error
}

type childServiceImpl struct {
	childRepo ChildRepository
	logger    *slog.Logger
}

// NewChildService creates a new ChildService.
// It returns an error if the repository is nil.
func NewChildService(childRepo ChildRepository, logger *slog.Logger) (ChildService, error) {
	if childRepo == nil {
		return nil, fmt.Errorf("%w: childRepo", ErrNilDependency)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &childServiceImpl{
		childRepo: childRepo,
		logger:    logger.With(slog.String("component", "child_service")),
	}, nil
}

// CreateChild implements ChildService.CreateChild
func (s *childServiceImpl) CreateChild(
	ctx context.Context,
	name string,
	games []domain.GameAssignment,
) (*domain.Child, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	child, err := domain.NewChild(name, games)
	if err != nil {
		log.Debug("rejected child", slog.String("error", err.Error()))
		return nil, NewChildServiceError("create_child", "invalid child", invalid(err))
	}

	err = store.RunInTransaction(ctx, s.childRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.childRepo.WithTx(tx).Create(ctx, child)
	})
	if err != nil {
		log.Error("failed to create child",
			slog.String("error", err.Error()),
			slog.String("child_id", child.ID.String()))
		return nil, NewChildServiceError("create_child", "failed to save child", err)
	}

	log.Info("child created",
		slog.String("child_id", child.ID.String()),
		slog.Int("games", len(child.Games)))
	return child, nil
}

// GetChild implements ChildService.GetChild
func (s *childServiceImpl) GetChild(ctx context.Context, childID uuid.UUID) (*domain.Child, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	child, err := s.childRepo.GetByID(ctx, childID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewChildServiceError("get_child", "child not found", store.ErrChildNotFound)
		}
		log.Error("failed to retrieve child",
			slog.String("error", err.Error()),
			slog.String("child_id", childID.String()))
		return nil, NewChildServiceError("get_child", "failed to retrieve child", err)
	}

	return child, nil
}

// ActiveGames implements ChildService.ActiveGames
func (s *childServiceImpl) ActiveGames(ctx context.Context, childID uuid.UUID) ([]domain.GameAssignment, error) {
	child, err := s.GetChild(ctx, childID)
	if err != nil {
		return nil, err
	}
	return child.ActiveGames(), nil
}

// AssignGame implements ChildService.AssignGame
func (s *childServiceImpl) AssignGame(
	ctx context.Context,
	childID uuid.UUID,
	game domain.GameName,
	assignedLevel int,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	assignment := domain.GameAssignment{GameName: game, AssignedLevel: assignedLevel}
	if err := assignment.Validate(); err != nil {
		return NewChildServiceError("assign_game", "invalid assignment", invalid(err))
	}

	if err := s.childRepo.AssignGame(ctx, childID, assignment); err != nil {
		if errors.Is(err, store.ErrChildNotFound) {
			return NewChildServiceError("assign_game", "child not found", store.ErrChildNotFound)
		}
		log.Error("failed to assign game",
			slog.String("error", err.Error()),
			slog.String("child_id", childID.String()),
			slog.String("game", string(game)))
		return NewChildServiceError("assign_game", "failed to assign game", err)
	}

	return nil
}

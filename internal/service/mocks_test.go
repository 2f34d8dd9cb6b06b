package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockChildRepository mocks the ChildRepository interface
type MockChildRepository struct {
	mock.Mock
	db *sql.DB
}

func (m *MockChildRepository) Create(ctx context.Context, child *domain.Child) error {
	args := m.Called(ctx, child)
	return args.Error(0)
}

func (m *MockChildRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Child, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Child), args.Error(1)
}

func (m *MockChildRepository) AssignGame(
	ctx context.Context,
	childID uuid.UUID,
	assignment domain.GameAssignment,
) error {
	args := m.Called(ctx, childID, assignment)
	return args.Error(0)
}

// WithTx returns the same mock so expectations set on it apply inside transactions.
func (m *MockChildRepository) WithTx(*sql.Tx) ChildRepository {
	return m
}

func (m *MockChildRepository) DB() *sql.DB {
	return m.db
}

// MockProgressRepository mocks the ProgressRepository interface
type MockProgressRepository struct {
	mock.Mock
	db *sql.DB
}

func (m *MockProgressRepository) GetLevel(
	ctx context.Context,
	childID uuid.UUID,
	game domain.GameName,
) (int, error) {
	args := m.Called(ctx, childID, game)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressRepository) SetCurrentLevel(
	ctx context.Context,
	childID uuid.UUID,
	game domain.GameName,
	level int,
) error {
	args := m.Called(ctx, childID, game, level)
	return args.Error(0)
}

func (m *MockProgressRepository) AppendSessionRecord(ctx context.Context, record *domain.SessionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockProgressRepository) ListSessionRecords(
	ctx context.Context,
	childID uuid.UUID,
	limit int,
) ([]*domain.SessionRecord, error) {
	args := m.Called(ctx, childID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SessionRecord), args.Error(1)
}

func (m *MockProgressRepository) WithTx(*sql.Tx) ProgressRepository {
	return m
}

func (m *MockProgressRepository) DB() *sql.DB {
	return m.db
}

package task

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockSessionSink is a mock implementation of SessionSink
type MockSessionSink struct {
	mock.Mock
}

func (m *MockSessionSink) RecordSession(
	ctx context.Context,
	childID uuid.UUID,
	outcome domain.SessionOutcome,
	decision domain.LevelDecision,
) error {
	args := m.Called(ctx, childID, outcome, decision)
	return args.Error(0)
}

// funcTask is a Task backed by a function
type funcTask struct {
	id uuid.UUID
	fn func(ctx context.Context) error
}

func newFuncTask(fn func(ctx context.Context) error) *funcTask {
	return &funcTask{id: uuid.New(), fn: fn}
}

func (t *funcTask) ID() uuid.UUID                     { return t.id }
func (t *funcTask) Type() string                      { return "func" }
func (t *funcTask) Status() TaskStatus                { return TaskStatusPending }
func (t *funcTask) Execute(ctx context.Context) error { return t.fn(ctx) }

// recordingSubmitter captures submitted tasks
type recordingSubmitter struct {
	mu    sync.Mutex
	tasks []Task
	err   error
}

func (s *recordingSubmitter) Submit(_ context.Context, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.tasks = append(s.tasks, task)
	return nil
}

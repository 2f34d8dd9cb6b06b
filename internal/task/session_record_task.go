package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexiplay/internal/domain"
)

// DefaultSinkTimeout bounds a single session record write.
const DefaultSinkTimeout = 5 * time.Second

// SessionSink persists the result of a finished session: the child's new
// level and one session history entry.
type SessionSink interface {
	RecordSession(
		ctx context.Context,
		childID uuid.UUID,
		outcome domain.SessionOutcome,
		decision domain.LevelDecision,
	) error
}

// SessionRecordTask writes one finished session to a SessionSink.
type SessionRecordTask struct {
	id        uuid.UUID
	sessionID uuid.UUID
	childID   uuid.UUID
	outcome   domain.SessionOutcome
	decision  domain.LevelDecision
	sink      SessionSink
	timeout   time.Duration
	logger    *slog.Logger

	mu     sync.Mutex
	status TaskStatus
}

// NewSessionRecordTask creates a pending task. A timeout of zero or less uses
// DefaultSinkTimeout.
func NewSessionRecordTask(
	sessionID, childID uuid.UUID,
	outcome domain.SessionOutcome,
	decision domain.LevelDecision,
	sink SessionSink,
	timeout time.Duration,
	logger *slog.Logger,
) (*SessionRecordTask, error) {
	if sink == nil {
		return nil, fmt.Errorf("session sink cannot be nil")
	}
	if childID == uuid.Nil {
		return nil, domain.ErrEmptyRecordChildID
	}
	if timeout <= 0 {
		timeout = DefaultSinkTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionRecordTask{
		id:        uuid.New(),
		sessionID: sessionID,
		childID:   childID,
		outcome:   outcome,
		decision:  decision,
		sink:      sink,
		timeout:   timeout,
		logger:    logger,
		status:    TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier.
func (t *SessionRecordTask) ID() uuid.UUID { return t.id }

// Type returns TaskTypeSessionRecord.
func (t *SessionRecordTask) Type() string { return TaskTypeSessionRecord }

// Status returns the current task status.
func (t *SessionRecordTask) Status() TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *SessionRecordTask) setStatus(status TaskStatus) {
	t.mu.Lock()
	t.status = status
	t.mu.Unlock()
}

// Execute writes the session with a bounded context. It is never retried.
func (t *SessionRecordTask) Execute(ctx context.Context) error {
	t.setStatus(TaskStatusProcessing)

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	log := t.logger.With(
		"task_id", t.id,
		"session_id", t.sessionID,
		"child_id", t.childID,
		"game", t.outcome.GameName,
	)

	if err := t.sink.RecordSession(ctx, t.childID, t.outcome, t.decision); err != nil {
		t.setStatus(TaskStatusFailed)
		return fmt.Errorf("failed to record session %s: %w", t.sessionID, err)
	}

	t.setStatus(TaskStatusCompleted)
	log.Info("session recorded",
		"new_level", t.decision.NewLevel,
		"score", t.outcome.FinalScore)
	return nil
}

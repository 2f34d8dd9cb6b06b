package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/lexiplay/internal/events"
)

// SessionEventHandler implements events.EventHandler. It turns
// session_completed events into SessionRecordTasks and submits them.
type SessionEventHandler struct {
	sink        SessionSink
	submitter   Submitter
	sinkTimeout time.Duration
	logger      *slog.Logger
}

// NewSessionEventHandler creates a handler that records sessions through sink.
func NewSessionEventHandler(
	sink SessionSink,
	submitter Submitter,
	sinkTimeout time.Duration,
	logger *slog.Logger,
) *SessionEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionEventHandler{
		sink:        sink,
		submitter:   submitter,
		sinkTimeout: sinkTimeout,
		logger:      logger.With("component", "session_event_handler"),
	}
}

// Ensure SessionEventHandler implements events.EventHandler interface
var _ events.EventHandler = (*SessionEventHandler)(nil)

// HandleEvent submits a task for every session_completed event and ignores
// other event types.
func (h *SessionEventHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.TypeSessionCompleted {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload events.SessionCompletedPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	task, err := NewSessionRecordTask(
		payload.SessionID,
		payload.ChildID,
		payload.Outcome,
		payload.Decision,
		h.sink,
		h.sinkTimeout,
		h.logger,
	)
	if err != nil {
		h.logger.Error("failed to create session record task",
			"error", err,
			"event_id", event.ID,
			"session_id", payload.SessionID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.submitter.Submit(ctx, task); err != nil {
		h.logger.Error("failed to submit session record task",
			"error", err,
			"event_id", event.ID,
			"session_id", payload.SessionID,
			"task_id", task.ID())
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Debug("session record task submitted",
		"event_id", event.ID,
		"session_id", payload.SessionID,
		"task_id", task.ID())
	return nil
}

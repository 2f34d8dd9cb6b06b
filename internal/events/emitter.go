package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryEventEmitter fans session events out to in-process handlers. The
// play service emits session_completed through it once per finished session;
// the task package registers the handler that turns it into a record task.
//
// Handlers run synchronously on the caller's goroutine, in registration
// order, so they must hand off anything slow.
type InMemoryEventEmitter struct {
	handlers []EventHandler
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewInMemoryEventEmitter returns an emitter with no handlers. A nil logger
// falls back to slog.Default.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventEmitter{
		logger: logger.With("component", "session_event_emitter"),
	}
}

var _ EventEmitter = (*InMemoryEventEmitter)(nil)

// RegisterHandler subscribes handler to every later event.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
	e.logger.Debug("registered session event handler", "handler_count", len(e.handlers))
}

// EmitEvent delivers event to every handler even when one fails, and returns
// the first failure. An event with no handlers is logged and dropped; a
// finished session is then simply not recorded.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *Event) error {
	e.mu.RLock()
	handlers := append([]EventHandler(nil), e.handlers...)
	e.mu.RUnlock()

	log := e.logger.With("event_id", event.ID, "event_type", event.Type)
	if len(handlers) == 0 {
		log.Warn("session event dropped, no handlers registered")
		return nil
	}

	var firstErr error
	for i, handler := range handlers {
		err := handler.HandleEvent(ctx, event)
		if err == nil {
			continue
		}
		log.Error("session event handler failed", "error", err, "handler_index", i)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

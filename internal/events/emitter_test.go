package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler implements EventHandler for testing
type recordingHandler struct {
	mu           sync.Mutex
	events       []*Event
	handlerError error
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.handlerError
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

func TestInMemoryEventEmitter(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("emit event with no handlers", func(t *testing.T) {
		t.Parallel()

		emitter := NewInMemoryEventEmitter(logger)
		event, err := NewEvent(TypeSessionCompleted, SessionCompletedPayload{})
		require.NoError(t, err)

		assert.NoError(t, emitter.EmitEvent(context.Background(), event))
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		t.Parallel()

		emitter := NewInMemoryEventEmitter(logger)
		first := &recordingHandler{}
		second := &recordingHandler{}
		emitter.RegisterHandler(first)
		emitter.RegisterHandler(second)

		event, err := NewEvent(TypeSessionCompleted, SessionCompletedPayload{})
		require.NoError(t, err)

		require.NoError(t, emitter.EmitEvent(context.Background(), event))
		assert.Equal(t, []*Event{event}, first.events)
		assert.Equal(t, []*Event{event}, second.events)
	})

	t.Run("failing handler does not stop delivery", func(t *testing.T) {
		t.Parallel()

		emitter := NewInMemoryEventEmitter(nil)
		failing := &recordingHandler{handlerError: errors.New("queue full")}
		success := &recordingHandler{}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(success)

		event, err := NewEvent(TypeSessionCompleted, SessionCompletedPayload{})
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.EqualError(t, err, "queue full")
		assert.Equal(t, 1, failing.count())
		assert.Equal(t, 1, success.count())
	})

	t.Run("concurrent emits", func(t *testing.T) {
		t.Parallel()

		emitter := NewInMemoryEventEmitter(logger)
		handler := &recordingHandler{}
		emitter.RegisterHandler(handler)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				event, _ := NewEvent(TypeSessionCompleted, SessionCompletedPayload{})
				_ = emitter.EmitEvent(context.Background(), event)
			}()
		}
		wg.Wait()

		assert.Equal(t, 20, handler.count())
	})
}

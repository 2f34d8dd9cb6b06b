package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexiplay/internal/domain"
)

// Event types
const (
	// TypeSessionCompleted is emitted once per session that reached a terminal state.
	TypeSessionCompleted = "session_completed"
)

// Event is a typed notification with a JSON payload.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type selects the handlers interested in the event
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload any) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// SessionCompletedPayload is the payload of a TypeSessionCompleted event.
type SessionCompletedPayload struct {
	SessionID uuid.UUID             `json:"session_id"`
	ChildID   uuid.UUID             `json:"child_id"`
	Outcome   domain.SessionOutcome `json:"outcome"`
	Decision  domain.LevelDecision  `json:"decision"`
}

// NewSessionCompletedEvent wraps a finished session into an event.
func NewSessionCompletedEvent(payload SessionCompletedPayload) (*Event, error) {
	return NewEvent(TypeSessionCompleted, payload)
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *Event) error
}

package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SessionOutcome is the immutable result of one finished play session.
type SessionOutcome struct {
	GameName     GameName      `json:"game_name"`
	FinalScore   int           `json:"final_score"`
	CurrentLevel int           `json:"current_level"`
	Emotions     EmotionSeries `json:"emotions"`
	ItemsPlayed  int           `json:"items_played"`
	Quit         bool          `json:"quit"`
	EndedAt      time.Time     `json:"ended_at"`
}

// LevelDirection describes how a level decision moved the level.
type LevelDirection string

// Possible level directions
const (
	LevelUp   LevelDirection = "up"
	LevelDown LevelDirection = "down"
	LevelHold LevelDirection = "hold"
)

// LevelDecision is the output of the level adjustment engine for one session.
// It is computed, never stored directly; the session record carries its
// persisted parts.
type LevelDecision struct {
	NewLevel   int            `json:"new_level"`
	MaxEmotion EmotionLabel   `json:"max_emotion"`
	MinEmotion EmotionLabel   `json:"min_emotion"`
	Blended    float64        `json:"blended"`
	Direction  LevelDirection `json:"direction"`
}

// Common validation errors for SessionRecord
var (
	ErrEmptyRecordChildID = errors.New("session record child ID cannot be empty")
	ErrNegativeScore      = errors.New("session score cannot be negative")
)

// SessionRecord is one entry of a child's session history.
type SessionRecord struct {
	ID         uuid.UUID    `json:"id"`
	ChildID    uuid.UUID    `json:"child_id"`
	GameName   GameName     `json:"game_name"`
	Level      int          `json:"level"`
	MaxEmotion EmotionLabel `json:"max_emotion"`
	MinEmotion EmotionLabel `json:"min_emotion"`
	Score      int          `json:"score"`
	CreatedAt  time.Time    `json:"created_at"`
}

// NewSessionRecord builds the history entry for a finished session. Level is
// the new level chosen by the decision.
func NewSessionRecord(childID uuid.UUID, outcome SessionOutcome, decision LevelDecision) (*SessionRecord, error) {
	createdAt := outcome.EndedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	record := &SessionRecord{
		ID:         uuid.New(),
		ChildID:    childID,
		GameName:   outcome.GameName,
		Level:      decision.NewLevel,
		MaxEmotion: decision.MaxEmotion,
		MinEmotion: decision.MinEmotion,
		Score:      outcome.FinalScore,
		CreatedAt:  createdAt,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate checks if the SessionRecord has valid data.
func (r *SessionRecord) Validate() error {
	if r.ID == uuid.Nil {
		return ErrInvalidID
	}
	if r.ChildID == uuid.Nil {
		return ErrEmptyRecordChildID
	}
	if !r.GameName.Valid() {
		return ErrUnknownGame
	}
	if err := ValidateLevel(r.Level); err != nil {
		return err
	}
	if r.Score < 0 {
		return ErrNegativeScore
	}
	return nil
}

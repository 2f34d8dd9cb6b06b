package play

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/domain/session"
)

// Prompt is the item currently shown to the child. It never carries the
// expected answer.
type Prompt struct {
	Question  string   `json:"question,omitempty"`
	Scrambled string   `json:"scrambled,omitempty"`
	Sequence  []string `json:"sequence,omitempty"`
	Choices   []string `json:"choices,omitempty"`
	GridSize  int      `json:"grid_size,omitempty"`
	Tiles     []int    `json:"tiles,omitempty"`
}

// Result is the outcome of a terminal session with its level decision.
type Result struct {
	Outcome  domain.SessionOutcome `json:"outcome"`
	Decision domain.LevelDecision  `json:"decision"`
}

// SessionView is the public state of a session.
type SessionView struct {
	ID        uuid.UUID `json:"id"`
	ChildID   uuid.UUID `json:"child_id"`
	StartedAt time.Time `json:"started_at"`
	session.Snapshot
	Prompt *Prompt `json:"prompt,omitempty"`
	Result *Result `json:"result,omitempty"`
}

// AnswerView is the result of one answer together with the session state
// after it.
type AnswerView struct {
	Answer  session.AnswerResult `json:"answer"`
	Session SessionView          `json:"session"`
}

func promptFor(item session.Item) *Prompt {
	switch it := item.(type) {
	case domain.MathQuestion:
		return &Prompt{Question: it.Question}
	case domain.ScrambledWord:
		return &Prompt{Scrambled: it.Scrambled}
	case domain.ShapePattern:
		p := &Prompt{
			Sequence: make([]string, len(it.Sequence)),
			Choices:  make([]string, 0, len(domain.AllShapes())),
		}
		for i, shape := range it.Sequence {
			p.Sequence[i] = string(shape)
		}
		for _, shape := range domain.AllShapes() {
			p.Choices = append(p.Choices, string(shape))
		}
		return p
	case domain.TilePattern:
		tiles := make([]int, len(it.Tiles))
		copy(tiles, it.Tiles)
		return &Prompt{GridSize: it.GridSize, Tiles: tiles}
	default:
		return &Prompt{}
	}
}

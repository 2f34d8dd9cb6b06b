package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Child
var (
	ErrEmptyChildID      = errors.New("child ID cannot be empty")
	ErrDuplicateGame     = errors.New("game assigned more than once")
	ErrInvalidAssignment = errors.New("invalid game assignment")
	ErrChildNameTooLong  = errors.New("child name too long")
)

const maxChildNameLength = 100

// GameAssignment is a game a therapist selected for a child together with the
// target level and the level the child currently plays at.
type GameAssignment struct {
	GameName      GameName `json:"game_name"`
	AssignedLevel int      `json:"assigned_level"`
	CurrentLevel  int      `json:"current_level"`
}

// Validate checks the game and both levels.
func (a GameAssignment) Validate() error {
	if !a.GameName.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidAssignment, ErrUnknownGame, a.GameName)
	}
	if err := ValidateLevel(a.AssignedLevel); err != nil {
		return fmt.Errorf("%w: assigned level: %w", ErrInvalidAssignment, err)
	}
	if err := ValidateLevel(a.CurrentLevel); err != nil {
		return fmt.Errorf("%w: current level: %w", ErrInvalidAssignment, err)
	}
	return nil
}

// Active reports whether the child has not yet reached the assigned level.
func (a GameAssignment) Active() bool {
	return a.AssignedLevel > a.CurrentLevel
}

// Child is a player whose difficulty levels are adapted per game.
type Child struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Games     []GameAssignment `json:"games"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewChild creates a child with the given game assignments. Every game starts
// at current level 0 unless the assignment says otherwise.
func NewChild(name string, games []GameAssignment) (*Child, error) {
	now := time.Now().UTC()
	child := &Child{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Games:     games,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := child.Validate(); err != nil {
		return nil, err
	}

	return child, nil
}

// Validate checks if the Child has valid data.
func (c *Child) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyChildID
	}

	if c.Name == "" {
		return ErrEmptyName
	}

	if len(c.Name) > maxChildNameLength {
		return ErrChildNameTooLong
	}

	seen := make(map[GameName]struct{}, len(c.Games))
	for _, g := range c.Games {
		if err := g.Validate(); err != nil {
			return err
		}
		if _, dup := seen[g.GameName]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateGame, g.GameName)
		}
		seen[g.GameName] = struct{}{}
	}

	return nil
}

// Game returns the assignment for the named game.
func (c *Child) Game(name GameName) (GameAssignment, bool) {
	for _, g := range c.Games {
		if g.GameName == name {
			return g, true
		}
	}
	return GameAssignment{}, false
}

// ActiveGames returns the assignments the child has not completed yet, i.e.
// whose assigned level is above the current level.
func (c *Child) ActiveGames() []GameAssignment {
	active := make([]GameAssignment, 0, len(c.Games))
	for _, g := range c.Games {
		if g.Active() {
			active = append(active, g)
		}
	}
	return active
}

package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// GameName identifies one of the adaptive games.
type GameName string

// Supported games
const (
	GameMathQuest    GameName = "math-quest"
	GameWordWizard   GameName = "word-wizard"
	GameShapePattern GameName = "shape-pattern"
	GameMemoryMatrix GameName = "memory-matrix"
)

// Level bounds shared by every game.
const (
	MinLevel = 0
	MaxLevel = 4
)

// ItemsPerSession is the number of items a normal session evaluates.
const ItemsPerSession = 5

var gameNames = []GameName{GameMathQuest, GameWordWizard, GameShapePattern, GameMemoryMatrix}

// Display names as they appeared in the original game screens.
var gameDisplayNames = map[GameName]string{
	GameMathQuest:    "Math Quest",
	GameWordWizard:   "Word Wizard",
	GameShapePattern: "Shape Pattern",
	GameMemoryMatrix: "Memory Matrix",
}

// AllGames returns every supported game.
func AllGames() []GameName {
	games := make([]GameName, len(gameNames))
	copy(games, gameNames)
	return games
}

// ParseGameName accepts either the slug ("word-wizard") or the display name
// ("Word Wizard") of a game.
func ParseGameName(raw string) (GameName, error) {
	s := strings.TrimSpace(raw)
	for _, g := range gameNames {
		if strings.EqualFold(s, string(g)) || strings.EqualFold(s, gameDisplayNames[g]) {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGame, raw)
}

// Valid reports whether the game is supported.
func (g GameName) Valid() bool {
	_, ok := gameDisplayNames[g]
	return ok
}

// DisplayName returns the human readable game title.
func (g GameName) DisplayName() string {
	return gameDisplayNames[g]
}

// ClampLevel forces a level into [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// ValidateLevel returns ErrInvalidLevel when level is out of range.
func ValidateLevel(level int) error {
	if level < MinLevel || level > MaxLevel {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidLevel, level, MinLevel, MaxLevel)
	}
	return nil
}

// MathQuestion is an arithmetic question with a single integer answer.
type MathQuestion struct {
	Question string `json:"question"`
	Answer   int    `json:"answer"`
}

// Expected implements the session item contract.
func (q MathQuestion) Expected() []string {
	return []string{strconv.Itoa(q.Answer)}
}

// ScrambledWord is a word presented with its letters shuffled.
type ScrambledWord struct {
	Scrambled string `json:"scrambled"`
	Word      string `json:"word"`
}

// Expected implements the session item contract.
func (w ScrambledWord) Expected() []string {
	return []string{w.Word}
}

// Shape is one symbol used by the shape pattern game.
type Shape string

// Shapes used by the pattern game
const (
	ShapeTriangle Shape = "🔺"
	ShapeCircle   Shape = "🔵"
	ShapeDot      Shape = "🟡"
	ShapeSquare   Shape = "🟥"
	ShapeDiamond  Shape = "🔶"
)

// AllShapes returns the shapes in display order.
func AllShapes() []Shape {
	return []Shape{ShapeTriangle, ShapeCircle, ShapeDot, ShapeSquare, ShapeDiamond}
}

// ShapePattern is a sequence of shapes whose next element must be guessed.
type ShapePattern struct {
	Sequence []Shape `json:"sequence"`
	Answer   Shape   `json:"answer"`
}

// Expected implements the session item contract.
func (p ShapePattern) Expected() []string {
	return []string{string(p.Answer)}
}

// TilePattern is a set of lit tiles on a square grid that the player must
// recall. Order of recall does not matter.
type TilePattern struct {
	GridSize int   `json:"grid_size"`
	Tiles    []int `json:"tiles"`
}

// Expected implements the session item contract.
func (p TilePattern) Expected() []string {
	out := make([]string, len(p.Tiles))
	for i, t := range p.Tiles {
		out[i] = strconv.Itoa(t)
	}
	return out
}

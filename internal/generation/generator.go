package generation

import (
	"context"

	"github.com/phrazzld/lexiplay/internal/domain"
)

// WordGenerator produces scrambled words for a Word Wizard level.
type WordGenerator interface {
	// GenerateWords returns up to count words suited to the level, each with
	// a scrambled form that differs from the word. Errors are one of the
	// package errors, possibly wrapped.
	GenerateWords(ctx context.Context, level, count int) ([]domain.ScrambledWord, error)
}

// WordLength returns the inclusive word length range used at a level.
func WordLength(level int) (minLen, maxLen int) {
	switch domain.ClampLevel(level) {
	case 0:
		return 3, 3
	case 1:
		return 4, 4
	case 2:
		return 5, 5
	case 3:
		return 6, 6
	default:
		return 7, 8
	}
}

package session

import (
	"testing"

	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestExactMatcher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		expected  []string
		candidate []string
		want      bool
	}{
		{"equal", []string{"12"}, []string{"12"}, true},
		{"case and whitespace", []string{"CAT"}, []string{" cat "}, true},
		{"different value", []string{"12"}, []string{"13"}, false},
		{"different length", []string{"1", "2"}, []string{"1"}, false},
		{"order matters", []string{"1", "2"}, []string{"2", "1"}, false},
		{"empty candidate", []string{"🔺"}, nil, false},
		{"emoji", []string{"🔺"}, []string{"🔺"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExactMatcher{}.Match(tt.expected, tt.candidate))
		})
	}
}

func TestSetMatcher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		expected  []string
		candidate []string
		want      bool
	}{
		{"same order", []string{"1", "4", "7"}, []string{"1", "4", "7"}, true},
		{"any order", []string{"1", "4", "7"}, []string{"7", "1", "4"}, true},
		{"duplicates ignored", []string{"1", "4"}, []string{"4", "1", "4"}, true},
		{"missing tile", []string{"1", "4", "7"}, []string{"1", "4"}, false},
		{"extra tile", []string{"1", "4"}, []string{"1", "4", "5"}, false},
		{"wrong tile", []string{"1", "4"}, []string{"1", "5"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SetMatcher{}.Match(tt.expected, tt.candidate))
		})
	}
}

func TestMatcherForGame(t *testing.T) {
	t.Parallel()

	assert.IsType(t, SetMatcher{}, MatcherForGame(domain.GameMemoryMatrix))
	assert.IsType(t, ExactMatcher{}, MatcherForGame(domain.GameMathQuest))
	assert.IsType(t, ExactMatcher{}, MatcherForGame(domain.GameWordWizard))
	assert.IsType(t, ExactMatcher{}, MatcherForGame(domain.GameShapePattern))
}

func TestMatcherFunc(t *testing.T) {
	t.Parallel()

	always := MatcherFunc(func(_, _ []string) bool { return true })
	assert.True(t, always.Match([]string{"a"}, []string{"b"}))
}

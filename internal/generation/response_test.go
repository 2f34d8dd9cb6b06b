package generation

import (
	"testing"

	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		level   int
		want    []domain.ScrambledWord
		wantErr bool
	}{
		{
			name:  "plain json",
			text:  `{"words": [{"word": "cat", "scrambled": "tac"}, {"word": "dog", "scrambled": "god"}]}`,
			level: 0,
			want: []domain.ScrambledWord{
				{Scrambled: "tac", Word: "cat"},
				{Scrambled: "god", Word: "dog"},
			},
		},
		{
			name:  "fenced json with mixed case",
			text:  "```json\n{\"words\": [{\"word\": \" Frog \", \"scrambled\": \"GORF\"}]}\n```",
			level: 1,
			want:  []domain.ScrambledWord{{Scrambled: "gorf", Word: "frog"}},
		},
		{
			name:  "invalid entries are dropped",
			text:  `{"words": [{"word": "cat", "scrambled": "cat"}, {"word": "sun", "scrambled": "nus"}, {"word": "house", "scrambled": "esuoh"}, {"word": "sun", "scrambled": "usn"}, {"word": "b1g", "scrambled": "g1b"}, {"word": "pig", "scrambled": "pog"}]}`,
			level: 0,
			want:  []domain.ScrambledWord{{Scrambled: "nus", Word: "sun"}},
		},
		{
			name:    "no usable words",
			text:    `{"words": [{"word": "elephant", "scrambled": "tnahpele"}]}`,
			level:   0,
			wantErr: true,
		},
		{
			name:    "not json",
			text:    "Here are some words: cat, dog",
			wantErr: true,
		},
		{
			name:    "empty",
			text:    "  ",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseWords(tc.text, tc.level)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWordLength(t *testing.T) {
	t.Parallel()

	for level, want := range [][2]int{{3, 3}, {4, 4}, {5, 5}, {6, 6}, {7, 8}} {
		minLen, maxLen := WordLength(level)
		assert.Equal(t, want, [2]int{minLen, maxLen}, "level %d", level)
	}

	minLen, _ := WordLength(-3)
	assert.Equal(t, 3, minLen, "levels are clamped")
}

package generation

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/phrazzld/lexiplay/internal/domain"
)

// ResponseSchema is the JSON document the prompt asks the model for.
type ResponseSchema struct {
	Words []WordSchema `json:"words"`
}

// WordSchema is one generated word.
type WordSchema struct {
	Word      string `json:"word"`
	Scrambled string `json:"scrambled"`
}

// ParseWords decodes a model response and keeps the entries that are valid
// for the level. Models often wrap JSON in markdown fences; those are
// stripped. A response without any valid word is ErrInvalidResponse.
func ParseWords(text string, level int) ([]domain.ScrambledWord, error) {
	text = stripCodeFence(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ErrInvalidResponse)
	}

	var response ResponseSchema
	if err := json.Unmarshal([]byte(text), &response); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", ErrInvalidResponse, err)
	}

	minLen, maxLen := WordLength(level)
	seen := make(map[string]struct{}, len(response.Words))
	words := make([]domain.ScrambledWord, 0, len(response.Words))
	for _, w := range response.Words {
		word := strings.ToLower(strings.TrimSpace(w.Word))
		scrambled := strings.ToLower(strings.TrimSpace(w.Scrambled))
		if !validWord(word, minLen, maxLen) || !isScrambleOf(scrambled, word) {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, domain.ScrambledWord{Scrambled: scrambled, Word: word})
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("%w: no usable words in %d entries", ErrInvalidResponse, len(response.Words))
	}
	return words, nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func validWord(word string, minLen, maxLen int) bool {
	if len(word) < minLen || len(word) > maxLen {
		return false
	}
	for _, r := range word {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// isScrambleOf reports whether scrambled is a different ordering of word's letters.
func isScrambleOf(scrambled, word string) bool {
	if scrambled == word || len(scrambled) != len(word) {
		return false
	}
	a, b := []byte(scrambled), []byte(word)
	slices.Sort(a)
	slices.Sort(b)
	return string(a) == string(b)
}

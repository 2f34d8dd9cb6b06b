package session

import (
	"strings"

	"github.com/phrazzld/lexiplay/internal/domain"
)

// AnswerMatcher decides whether a candidate answer matches the expected one.
// Answers are token lists: a single token for math, word and shape games and
// one token per tile for memory recall.
type AnswerMatcher interface {
	Match(expected, candidate []string) bool
}

// MatcherFunc adapts a function to AnswerMatcher.
type MatcherFunc func(expected, candidate []string) bool

// Match implements AnswerMatcher.
func (f MatcherFunc) Match(expected, candidate []string) bool {
	return f(expected, candidate)
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ExactMatcher requires the same tokens in the same order. Tokens are
// compared case-insensitively after trimming whitespace.
type ExactMatcher struct{}

// Match implements AnswerMatcher.
func (ExactMatcher) Match(expected, candidate []string) bool {
	if len(expected) != len(candidate) {
		return false
	}
	for i := range expected {
		if normalizeToken(expected[i]) != normalizeToken(candidate[i]) {
			return false
		}
	}
	return true
}

// SetMatcher requires the same set of tokens, ignoring order and duplicates.
type SetMatcher struct{}

// Match implements AnswerMatcher.
func (SetMatcher) Match(expected, candidate []string) bool {
	want := tokenSet(expected)
	got := tokenSet(candidate)
	if len(want) != len(got) {
		return false
	}
	for tok := range want {
		if _, ok := got[tok]; !ok {
			return false
		}
	}
	return true
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[normalizeToken(t)] = struct{}{}
	}
	return set
}

// MatcherForGame returns the answer matcher a game uses: set equality for
// memory recall, exact equality for everything else.
func MatcherForGame(game domain.GameName) AnswerMatcher {
	if game == domain.GameMemoryMatrix {
		return SetMatcher{}
	}
	return ExactMatcher{}
}

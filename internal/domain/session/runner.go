// Package session runs one play session of a game: it draws the items for
// the child's level, scores answers with a streak bonus, samples the emotion
// stream on every tick and produces the session outcome.
package session

import (
	"errors"
	"math/rand"
	"time"

	"github.com/phrazzld/lexiplay/internal/domain"
)

// Common errors
var (
	// ErrContentUnavailable is returned by Load when the level pool is empty.
	// The runner is Ended when it is returned.
	ErrContentUnavailable = errors.New("no content available")

	// ErrSessionNotActive is returned for operations that need an in-progress
	// session.
	ErrSessionNotActive = errors.New("session is not active")

	// ErrAlreadyLoaded is returned when Load is called twice.
	ErrAlreadyLoaded = errors.New("session content already loaded")
)

// State is the lifecycle state of a runner.
type State string

// Runner states
const (
	StateLoading    State = "loading"
	StateInProgress State = "in_progress"
	StateEnded      State = "ended"
	StateQuit       State = "quit"
)

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateEnded || s == StateQuit
}

// Item is one question, word or pattern of a level pool.
type Item interface {
	// Expected returns the tokens of the correct answer.
	Expected() []string
}

// Config holds the settings of one runner.
type Config struct {
	Game  domain.GameName
	Level int

	// ItemsPerSession caps the number of items drawn; defaults to 5.
	ItemsPerSession int

	// Matcher defaults to MatcherForGame(Game).
	Matcher AnswerMatcher

	// Scoring defaults to DefaultScoringRules().
	Scoring *ScoringRules

	// Stream is drained on every Tick; a stream is created when nil.
	Stream *EmotionStream

	// Rand shuffles the pool; seeded from the clock when nil.
	Rand *rand.Rand

	// Now defaults to time.Now.
	Now func() time.Time
}

// AnswerResult reports the effect of one submitted answer.
type AnswerResult struct {
	Correct  bool     `json:"correct"`
	Points   int      `json:"points"`
	Score    int      `json:"score"`
	Streak   int      `json:"streak"`
	Expected []string `json:"expected"`
	Finished bool     `json:"finished"`
}

// Snapshot is a read-only view of the runner's progress.
type Snapshot struct {
	Game        domain.GameName `json:"game_name"`
	Level       int             `json:"level"`
	State       State           `json:"state"`
	Score       int             `json:"score"`
	Streak      int             `json:"streak"`
	ItemIndex   int             `json:"item_index"`
	ItemCount   int             `json:"item_count"`
	Answered    int             `json:"answered"`
	EmotionTick int             `json:"emotion_ticks"`
	Emotion     string          `json:"emotion,omitempty"`
}

// Runner drives one session over items of type T.
//
// A Runner is owned by a single session and is not safe for concurrent use;
// callers serialize ticks, answers and quit on one goroutine.
type Runner[T Item] struct {
	cfg     Config
	matcher AnswerMatcher
	scoring ScoringRules
	stream  *EmotionStream
	rng     *rand.Rand
	now     func() time.Time

	state    State
	items    []T
	index    int
	score    int
	streak   int
	answered int
	emotions domain.EmotionSeries

	current  domain.EmotionLabel
	observed bool
	endedAt  time.Time
}

// NewRunner creates a runner in the Loading state. The level is clamped into
// the supported range.
func NewRunner[T Item](cfg Config) *Runner[T] {
	if cfg.ItemsPerSession <= 0 {
		cfg.ItemsPerSession = domain.ItemsPerSession
	}
	cfg.Level = domain.ClampLevel(cfg.Level)

	r := &Runner[T]{
		cfg:      cfg,
		matcher:  cfg.Matcher,
		stream:   cfg.Stream,
		rng:      cfg.Rand,
		now:      cfg.Now,
		state:    StateLoading,
		emotions: domain.EmotionSeries{},
	}
	if r.matcher == nil {
		r.matcher = MatcherForGame(cfg.Game)
	}
	if cfg.Scoring != nil {
		r.scoring = *cfg.Scoring
	} else {
		r.scoring = DefaultScoringRules()
	}
	if r.stream == nil {
		r.stream = NewEmotionStream(DefaultStreamCapacity)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Load draws the session items from the level pool and starts the session.
//
// At most ItemsPerSession items are drawn without replacement; a smaller pool
// is used entirely and never padded. An empty pool ends the session at once
// with a zero score and returns ErrContentUnavailable.
func (r *Runner[T]) Load(pool []T) error {
	if r.state != StateLoading {
		return ErrAlreadyLoaded
	}

	if len(pool) == 0 {
		r.finish(StateEnded)
		return ErrContentUnavailable
	}

	shuffled := make([]T, len(pool))
	copy(shuffled, pool)
	r.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := r.cfg.ItemsPerSession
	if len(shuffled) < n {
		n = len(shuffled)
	}

	r.items = shuffled[:n]
	r.index = 0
	r.score = 0
	r.streak = 0
	r.state = StateInProgress
	return nil
}

// Current returns the item awaiting an answer.
func (r *Runner[T]) Current() (T, bool) {
	var zero T
	if r.state != StateInProgress || r.index >= len(r.items) {
		return zero, false
	}
	return r.items[r.index], true
}

// Items returns the drawn items in play order.
func (r *Runner[T]) Items() []T {
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

// Submit scores an answer to the current item and advances.
//
// A correct answer earns Base + StreakStep*streak points and extends the
// streak; an incorrect one costs Penalty points and resets the streak. With
// the emotion bonus enabled, the bonus for the current emotion is added
// before the total is floored at zero.
func (r *Runner[T]) Submit(candidate []string) (AnswerResult, error) {
	item, ok := r.Current()
	if !ok {
		return AnswerResult{}, ErrSessionNotActive
	}

	expected := item.Expected()
	correct := r.matcher.Match(expected, candidate)
	emotion := r.currentEmotion()

	var delta int
	if correct {
		delta = r.scoring.CorrectPoints(r.streak, emotion)
		r.streak++
	} else {
		delta = r.scoring.IncorrectPoints(emotion)
		r.streak = 0
	}

	before := r.score
	r.score = applyAdjustment(r.score, delta)
	r.answered++
	r.index++

	if r.index >= len(r.items) {
		r.finish(StateEnded)
	}

	return AnswerResult{
		Correct:  correct,
		Points:   r.score - before,
		Score:    r.score,
		Streak:   r.streak,
		Expected: expected,
		Finished: r.state.Terminal(),
	}, nil
}

// Tick samples the emotion stream once. Pending samples are drained and the
// most recent becomes the current emotion, which is appended to the series.
// Until a first sample arrives ticks record nothing. Ticks outside an
// in-progress session are ignored.
func (r *Runner[T]) Tick() (domain.EmotionLabel, bool) {
	if r.state != StateInProgress {
		return "", false
	}

	if label, ok := r.stream.Drain(); ok {
		r.current = domain.ParseEmotionLabel(string(label))
		r.observed = true
	}

	if !r.observed {
		return "", false
	}

	r.emotions = append(r.emotions, r.current)
	return r.current, true
}

// Quit abandons the session, keeping the score and emotions accumulated so
// far. Quitting a terminal session returns ErrSessionNotActive.
func (r *Runner[T]) Quit() (domain.SessionOutcome, error) {
	if r.state.Terminal() {
		return domain.SessionOutcome{}, ErrSessionNotActive
	}
	r.finish(StateQuit)
	outcome, _ := r.Outcome()
	return outcome, nil
}

// Outcome returns the session outcome once the runner is terminal.
func (r *Runner[T]) Outcome() (domain.SessionOutcome, bool) {
	if !r.state.Terminal() {
		return domain.SessionOutcome{}, false
	}

	emotions := make(domain.EmotionSeries, len(r.emotions))
	copy(emotions, r.emotions)

	return domain.SessionOutcome{
		GameName:     r.cfg.Game,
		FinalScore:   r.score,
		CurrentLevel: r.cfg.Level,
		Emotions:     emotions,
		ItemsPlayed:  r.answered,
		Quit:         r.state == StateQuit,
		EndedAt:      r.endedAt,
	}, true
}

// State returns the lifecycle state.
func (r *Runner[T]) State() State {
	return r.state
}

// Stream returns the emotion stream the runner drains.
func (r *Runner[T]) Stream() *EmotionStream {
	return r.stream
}

// Snapshot returns the current progress.
func (r *Runner[T]) Snapshot() Snapshot {
	s := Snapshot{
		Game:        r.cfg.Game,
		Level:       r.cfg.Level,
		State:       r.state,
		Score:       r.score,
		Streak:      r.streak,
		ItemIndex:   r.index,
		ItemCount:   len(r.items),
		Answered:    r.answered,
		EmotionTick: len(r.emotions),
	}
	if r.observed {
		s.Emotion = string(r.current)
	}
	return s
}

func (r *Runner[T]) currentEmotion() domain.EmotionLabel {
	if !r.observed {
		return domain.EmotionNeutral
	}
	return r.current
}

func (r *Runner[T]) finish(state State) {
	r.state = state
	r.endedAt = r.now().UTC()
	r.stream.Close()
}

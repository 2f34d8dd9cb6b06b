package play

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/domain/leveling"
	"github.com/phrazzld/lexiplay/internal/domain/session"
	"github.com/phrazzld/lexiplay/internal/events"
	"github.com/phrazzld/lexiplay/internal/platform/logger"
)

// Default session timings
const (
	DefaultSampleInterval  = 2 * time.Second
	DefaultIdleTimeout     = 30 * time.Minute
	DefaultResultRetention = 5 * time.Minute
)

// LevelReader provides the level a child currently plays a game at.
type LevelReader interface {
	CurrentLevel(ctx context.Context, childID uuid.UUID, game domain.GameName) (int, error)
}

// Catalog provides the level pools of every game.
type Catalog interface {
	MathPool(level int) []domain.MathQuestion
	WordPool(ctx context.Context, level int) []domain.ScrambledWord
	PatternPool(level int) []domain.ShapePattern
	TilePool(level int) []domain.TilePattern
}

// TickerFunc starts a ticker and returns its channel and a stop function.
type TickerFunc func(interval time.Duration) (<-chan time.Time, func())

func realTicker(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, func() { t.Stop() }
}

// Config holds the play service settings. Zero values select the defaults.
type Config struct {
	ItemsPerSession   int
	SampleInterval    time.Duration
	EmotionBufferSize int
	EmotionBonus      bool
	IdleTimeout       time.Duration
	ResultRetention   time.Duration

	// Ticker drives emotion sampling; defaults to a time.Ticker.
	Ticker TickerFunc
}

func (c Config) withDefaults() Config {
	if c.ItemsPerSession <= 0 {
		c.ItemsPerSession = domain.ItemsPerSession
	}
	if c.SampleInterval <= 0 {
		c.SampleInterval = DefaultSampleInterval
	}
	if c.EmotionBufferSize <= 0 {
		c.EmotionBufferSize = session.DefaultStreamCapacity
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}
	if c.ResultRetention <= 0 {
		c.ResultRetention = DefaultResultRetention
	}
	if c.Ticker == nil {
		c.Ticker = realTicker
	}
	return c
}

// Service hosts live play sessions.
type Service struct {
	levels  LevelReader
	catalog Catalog
	leveler leveling.Service
	emitter events.EventEmitter
	cfg     Config
	scoring session.ScoringRules
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*liveSession
	closed   bool
	wg       sync.WaitGroup
}

// NewService creates a play service. All dependencies are required.
func NewService(
	levels LevelReader,
	catalog Catalog,
	leveler leveling.Service,
	emitter events.EventEmitter,
	cfg Config,
	logger *slog.Logger,
) (*Service, error) {
	if levels == nil {
		return nil, errors.New("level reader cannot be nil")
	}
	if catalog == nil {
		return nil, errors.New("catalog cannot be nil")
	}
	if leveler == nil {
		return nil, errors.New("leveling service cannot be nil")
	}
	if emitter == nil {
		return nil, errors.New("event emitter cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	scoring := session.DefaultScoringRules()
	scoring.EmotionBonus = cfg.EmotionBonus

	return &Service{
		levels:   levels,
		catalog:  catalog,
		leveler:  leveler,
		emitter:  emitter,
		cfg:      cfg.withDefaults(),
		scoring:  scoring,
		logger:   logger.With(slog.String("component", "play_service")),
		sessions: make(map[uuid.UUID]*liveSession),
	}, nil
}

// StartSession starts a session of game for the child at the child's current
// level. An empty level pool returns ErrContentUnavailable and no session is
// kept.
func (s *Service) StartSession(ctx context.Context, childID uuid.UUID, game domain.GameName) (*SessionView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !game.Valid() {
		return nil, NewServiceError("start_session", "unknown game", fmt.Errorf("%w: %q", ErrUnknownGame, game))
	}

	level, err := s.levels.CurrentLevel(ctx, childID, game)
	if err != nil {
		return nil, NewServiceError("start_session", "failed to read level", err)
	}

	stream := session.NewEmotionStream(s.cfg.EmotionBufferSize)
	runner, err := newRunner(ctx, s.catalog, session.Config{
		Game:            game,
		Level:           level,
		ItemsPerSession: s.cfg.ItemsPerSession,
		Scoring:         &s.scoring,
		Stream:          stream,
	})
	if err != nil {
		if errors.Is(err, ErrContentUnavailable) {
			log.Warn("no content for session",
				slog.String("child_id", childID.String()),
				slog.String("game", string(game)),
				slog.Int("level", level))
			return nil, NewServiceError("start_session", "no content available", err)
		}
		return nil, NewServiceError("start_session", "failed to load session", err)
	}

	l := &liveSession{
		id:        uuid.New(),
		childID:   childID,
		startedAt: time.Now().UTC(),
		runner:    runner,
		stream:    stream,
		cmds:      make(chan func()),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	view := l.view()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, NewServiceError("start_session", "service closed", ErrServiceClosed)
	}
	s.sessions[l.id] = l
	s.wg.Add(1)
	s.mu.Unlock()

	ticks, stopTicker := s.cfg.Ticker(s.cfg.SampleInterval)
	go s.run(l, ticks, stopTicker)

	log.Info("session started",
		slog.String("session_id", l.id.String()),
		slog.String("child_id", childID.String()),
		slog.String("game", string(game)),
		slog.Int("level", level))
	return &view, nil
}

// GetSession returns the current state of a session.
func (s *Service) GetSession(ctx context.Context, sessionID uuid.UUID) (*SessionView, error) {
	l, err := s.lookup(sessionID)
	if err != nil {
		return nil, NewServiceError("get_session", "session not found", err)
	}

	var view SessionView
	if err := l.do(ctx, func() { view = l.view() }); err != nil {
		return nil, NewServiceError("get_session", "session unavailable", err)
	}
	return &view, nil
}

// SubmitAnswer scores an answer to the current item of the session.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID uuid.UUID, answer []string) (*AnswerView, error) {
	l, err := s.lookup(sessionID)
	if err != nil {
		return nil, NewServiceError("submit_answer", "session not found", err)
	}

	var (
		result    session.AnswerResult
		submitErr error
		view      SessionView
	)
	err = l.do(ctx, func() {
		result, submitErr = l.runner.Submit(answer)
		if submitErr == nil {
			s.settle(l)
		}
		view = l.view()
	})
	if err != nil {
		return nil, NewServiceError("submit_answer", "session unavailable", err)
	}
	if submitErr != nil {
		return nil, NewServiceError("submit_answer", "session is not active", submitErr)
	}

	return &AnswerView{Answer: result, Session: view}, nil
}

// PushEmotion queues one emotion sample for the session. Unrecognized labels
// are recorded as unknown.
func (s *Service) PushEmotion(_ context.Context, sessionID uuid.UUID, label string) error {
	l, err := s.lookup(sessionID)
	if err != nil {
		return NewServiceError("push_emotion", "session not found", err)
	}

	if !l.stream.Push(domain.ParseEmotionLabel(label)) {
		return NewServiceError("push_emotion", "session is not active", ErrSessionNotActive)
	}
	return nil
}

// QuitSession abandons the session and returns its result.
func (s *Service) QuitSession(ctx context.Context, sessionID uuid.UUID) (*Result, error) {
	l, err := s.lookup(sessionID)
	if err != nil {
		return nil, NewServiceError("quit_session", "session not found", err)
	}

	var (
		result  *Result
		quitErr error
	)
	err = l.do(ctx, func() {
		if _, quitErr = l.runner.Quit(); quitErr == nil {
			s.settle(l)
			result = l.result
		}
	})
	if err != nil {
		return nil, NewServiceError("quit_session", "session unavailable", err)
	}
	if quitErr != nil {
		return nil, NewServiceError("quit_session", "session is not active", quitErr)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("session quit",
		slog.String("session_id", sessionID.String()))
	return result, nil
}

// ActiveSessions returns the number of hosted sessions, including ended ones
// still within their retention period.
func (s *Service) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops every session goroutine. Sessions still in progress are
// discarded without being recorded.
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for _, l := range s.sessions {
		close(l.stop)
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) lookup(sessionID uuid.UUID) (*liveSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return l, nil
}

func (s *Service) remove(sessionID uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// run is the session goroutine.
func (s *Service) run(l *liveSession, ticks <-chan time.Time, stopTicker func()) {
	defer s.wg.Done()
	defer close(l.done)

	log := s.logger.With(slog.String("session_id", l.id.String()))

	idle := time.NewTimer(s.cfg.IdleTimeout)
	defer idle.Stop()

	var (
		retention     *time.Timer
		retentionC    <-chan time.Time
		tickerStopped bool
	)
	stopTicking := func() {
		if !tickerStopped {
			stopTicker()
			tickerStopped = true
			ticks = nil
		}
	}
	defer stopTicking()

	for {
		select {
		case fn := <-l.cmds:
			fn()
			idle.Reset(s.cfg.IdleTimeout)
		case <-ticks:
			l.runner.Tick()
		case <-idle.C:
			if !l.runner.State().Terminal() {
				log.Info("quitting idle session", slog.Duration("idle_timeout", s.cfg.IdleTimeout))
				_, _ = l.runner.Quit()
				s.settle(l)
			}
		case <-retentionC:
			s.remove(l.id)
			log.Debug("session evicted")
			return
		case <-l.stop:
			if retention != nil {
				retention.Stop()
			}
			return
		}

		if l.result != nil && retention == nil {
			stopTicking()
			retention = time.NewTimer(s.cfg.ResultRetention)
			retentionC = retention.C
		}
	}
}

// settle decides the level of a session that just became terminal and hands
// it to the sink. It runs on the session goroutine.
func (s *Service) settle(l *liveSession) {
	if l.result != nil || !l.runner.State().Terminal() {
		return
	}

	outcome, _ := l.runner.Outcome()
	decision := s.leveler.DecideOutcome(outcome)
	l.result = &Result{Outcome: outcome, Decision: decision}

	log := s.logger.With(
		slog.String("session_id", l.id.String()),
		slog.String("child_id", l.childID.String()),
		slog.String("game", string(outcome.GameName)))
	log.Info("session finished",
		slog.Int("score", outcome.FinalScore),
		slog.Bool("quit", outcome.Quit),
		slog.Int("level", outcome.CurrentLevel),
		slog.Int("new_level", decision.NewLevel),
		slog.String("direction", string(decision.Direction)))

	event, err := events.NewSessionCompletedEvent(events.SessionCompletedPayload{
		SessionID: l.id,
		ChildID:   l.childID,
		Outcome:   outcome,
		Decision:  decision,
	})
	if err != nil {
		log.Error("failed to build session completed event", slog.String("error", err.Error()))
		return
	}

	ctx := logger.WithLogger(context.Background(), log)
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Error("session record handoff failed", slog.String("error", err.Error()))
	}
}

type liveSession struct {
	id        uuid.UUID
	childID   uuid.UUID
	startedAt time.Time
	runner    gameRunner
	stream    *session.EmotionStream

	cmds chan func()
	stop chan struct{}
	done chan struct{}

	// result is set once, on the session goroutine, when the runner ends.
	result *Result
}

// do runs fn on the session goroutine and waits for it. ctx only bounds the
// wait for dispatch: cmds is unbuffered, so a received command always runs to
// completion and its effects are reported even if ctx ends meanwhile.
func (l *liveSession) do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	cmd := func() {
		defer close(finished)
		fn()
	}

	select {
	case l.cmds <- cmd:
	case <-l.done:
		return ErrSessionNotFound
	case <-ctx.Done():
		return ctx.Err()
	}

	<-finished
	return nil
}

func (l *liveSession) view() SessionView {
	return SessionView{
		ID:        l.id,
		ChildID:   l.childID,
		StartedAt: l.startedAt,
		Snapshot:  l.runner.Snapshot(),
		Prompt:    l.runner.Prompt(),
		Result:    l.result,
	}
}

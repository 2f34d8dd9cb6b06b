package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/lexiplay/internal/api/middleware"
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/domain/leveling"
	"github.com/phrazzld/lexiplay/internal/service"
	"github.com/phrazzld/lexiplay/internal/service/play"
)

type mockChildService struct {
	createFn      func(ctx context.Context, name string, games []domain.GameAssignment) (*domain.Child, error)
	getFn         func(ctx context.Context, childID uuid.UUID) (*domain.Child, error)
	activeGamesFn func(ctx context.Context, childID uuid.UUID) ([]domain.GameAssignment, error)
	assignGameFn  func(ctx context.Context, childID uuid.UUID, game domain.GameName, assignedLevel int) error
}

func (m *mockChildService) CreateChild(ctx context.Context, name string, games []domain.GameAssignment) (*domain.Child, error) {
	return m.createFn(ctx, name, games)
}

func (m *mockChildService) GetChild(ctx context.Context, childID uuid.UUID) (*domain.Child, error) {
	return m.getFn(ctx, childID)
}

func (m *mockChildService) ActiveGames(ctx context.Context, childID uuid.UUID) ([]domain.GameAssignment, error) {
	return m.activeGamesFn(ctx, childID)
}

func (m *mockChildService) AssignGame(ctx context.Context, childID uuid.UUID, game domain.GameName, assignedLevel int) error {
	return m.assignGameFn(ctx, childID, game, assignedLevel)
}

type mockProgressService struct {
	currentLevelFn func(ctx context.Context, childID uuid.UUID, game domain.GameName) (int, error)
	reportFn       func(ctx context.Context, childID uuid.UUID, limit int) (*service.ChildReport, error)
}

func (m *mockProgressService) CurrentLevel(ctx context.Context, childID uuid.UUID, game domain.GameName) (int, error) {
	return m.currentLevelFn(ctx, childID, game)
}

func (m *mockProgressService) RecordSession(
	context.Context,
	uuid.UUID,
	domain.SessionOutcome,
	domain.LevelDecision,
) error {
	return nil
}

func (m *mockProgressService) Report(ctx context.Context, childID uuid.UUID, limit int) (*service.ChildReport, error) {
	return m.reportFn(ctx, childID, limit)
}

type mockPlayService struct {
	startFn  func(ctx context.Context, childID uuid.UUID, game domain.GameName) (*play.SessionView, error)
	getFn    func(ctx context.Context, sessionID uuid.UUID) (*play.SessionView, error)
	submitFn func(ctx context.Context, sessionID uuid.UUID, answer []string) (*play.AnswerView, error)
	pushFn   func(ctx context.Context, sessionID uuid.UUID, label string) error
	quitFn   func(ctx context.Context, sessionID uuid.UUID) (*play.Result, error)
}

func (m *mockPlayService) StartSession(ctx context.Context, childID uuid.UUID, game domain.GameName) (*play.SessionView, error) {
	return m.startFn(ctx, childID, game)
}

func (m *mockPlayService) GetSession(ctx context.Context, sessionID uuid.UUID) (*play.SessionView, error) {
	return m.getFn(ctx, sessionID)
}

func (m *mockPlayService) SubmitAnswer(ctx context.Context, sessionID uuid.UUID, answer []string) (*play.AnswerView, error) {
	return m.submitFn(ctx, sessionID, answer)
}

func (m *mockPlayService) PushEmotion(ctx context.Context, sessionID uuid.UUID, label string) error {
	return m.pushFn(ctx, sessionID, label)
}

func (m *mockPlayService) QuitSession(ctx context.Context, sessionID uuid.UUID) (*play.Result, error) {
	return m.quitFn(ctx, sessionID)
}

// testRouter mounts the handlers on the same paths as the server.
func testRouter(children *mockChildService, progress *mockProgressService, playService *mockPlayService) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	leveler, err := leveling.NewDefaultService()
	if err != nil {
		panic(err)
	}

	if children == nil {
		children = &mockChildService{}
	}
	if progress == nil {
		progress = &mockProgressService{}
	}
	if playService == nil {
		playService = &mockPlayService{}
	}

	childHandler := NewChildHandler(children, progress, log)
	sessionHandler := NewSessionHandler(playService, log)
	levelHandler := NewLevelHandler(leveler)

	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(log))
	r.Route("/api", func(r chi.Router) {
		r.Post("/children", childHandler.CreateChild)
		r.Get("/children/{id}", childHandler.GetChild)
		r.Get("/children/{id}/games/active", childHandler.ActiveGames)
		r.Put("/children/{id}/games/{game}", childHandler.AssignGame)
		r.Get("/children/{id}/games/{game}/level", childHandler.CurrentLevel)
		r.Get("/children/{id}/report", childHandler.Report)

		r.Post("/sessions", sessionHandler.StartSession)
		r.Get("/sessions/{id}", sessionHandler.GetSession)
		r.Post("/sessions/{id}/answers", sessionHandler.SubmitAnswer)
		r.Post("/sessions/{id}/emotions", sessionHandler.PushEmotion)
		r.Get("/sessions/{id}/emotions/ws", sessionHandler.EmotionStream)
		r.Post("/sessions/{id}/quit", sessionHandler.QuitSession)

		r.Post("/levels/decide", levelHandler.Decide)
	})
	return r
}

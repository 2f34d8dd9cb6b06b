package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/lexiplay/internal/api"
	apiMiddleware "github.com/phrazzld/lexiplay/internal/api/middleware"
)

// newRouter creates the application router with all routes and middleware.
func newRouter(
	logger *slog.Logger,
	childHandler *api.ChildHandler,
	sessionHandler *api.SessionHandler,
	levelHandler *api.LevelHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(logger))

	r.Route("/api", func(r chi.Router) {
		// Children and their game assignments
		r.Post("/children", childHandler.CreateChild)
		r.Get("/children/{id}", childHandler.GetChild)
		r.Get("/children/{id}/games/active", childHandler.ActiveGames)
		r.Put("/children/{id}/games/{game}", childHandler.AssignGame)
		r.Get("/children/{id}/games/{game}/level", childHandler.CurrentLevel)
		r.Get("/children/{id}/report", childHandler.Report)

		// Live play sessions
		r.Post("/sessions", sessionHandler.StartSession)
		r.Get("/sessions/{id}", sessionHandler.GetSession)
		r.Post("/sessions/{id}/answers", sessionHandler.SubmitAnswer)
		r.Post("/sessions/{id}/emotions", sessionHandler.PushEmotion)
		r.Get("/sessions/{id}/emotions/ws", sessionHandler.EmotionStream)
		r.Post("/sessions/{id}/quit", sessionHandler.QuitSession)

		r.Post("/levels/decide", levelHandler.Decide)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

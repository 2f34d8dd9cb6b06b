package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phrazzld/lexiplay/internal/api/shared"
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/platform/logger"
	"github.com/phrazzld/lexiplay/internal/service"
)

// ChildHandler handles children, their game assignments and progress.
type ChildHandler struct {
	children service.ChildService
	progress service.ProgressService
	logger   *slog.Logger
}

// NewChildHandler creates a ChildHandler.
func NewChildHandler(
	children service.ChildService,
	progress service.ProgressService,
	logger *slog.Logger,
) *ChildHandler {
	if children == nil || progress == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("child and progress services cannot be nil for ChildHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChildHandler{
		children: children,
		progress: progress,
		logger:   logger.With(slog.String("component", "child_handler")),
	}
}

// CreateChild handles POST /api/children.
func (h *ChildHandler) CreateChild(w http.ResponseWriter, r *http.Request) {
	var req CreateChildRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	games := make([]domain.GameAssignment, 0, len(req.Games))
	for _, g := range req.Games {
		name, err := domain.ParseGameName(g.Game)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		games = append(games, domain.GameAssignment{
			GameName:      name,
			AssignedLevel: g.AssignedLevel,
			CurrentLevel:  g.CurrentLevel,
		})
	}

	child, err := h.children.CreateChild(r.Context(), req.Name, games)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create child")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("child created",
		slog.String("child_id", child.ID.String()),
		slog.Int("games", len(child.Games)))
	shared.RespondWithJSON(w, r, http.StatusCreated, childToResponse(child))
}

// GetChild handles GET /api/children/{id}.
func (h *ChildHandler) GetChild(w http.ResponseWriter, r *http.Request) {
	childID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	child, err := h.children.GetChild(r.Context(), childID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get child")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, childToResponse(child))
}

// ActiveGames handles GET /api/children/{id}/games/active.
func (h *ChildHandler) ActiveGames(w http.ResponseWriter, r *http.Request) {
	childID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	games, err := h.children.ActiveGames(r.Context(), childID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get active games")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, gamesToResponse(games))
}

// AssignGame handles PUT /api/children/{id}/games/{game}.
func (h *ChildHandler) AssignGame(w http.ResponseWriter, r *http.Request) {
	childID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	game, ok := pathGame(w, r)
	if !ok {
		return
	}
	var req AssignGameRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.children.AssignGame(r.Context(), childID, game, *req.AssignedLevel); err != nil {
		HandleAPIError(w, r, err, "Failed to assign game")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CurrentLevel handles GET /api/children/{id}/games/{game}/level.
func (h *ChildHandler) CurrentLevel(w http.ResponseWriter, r *http.Request) {
	childID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	game, ok := pathGame(w, r)
	if !ok {
		return
	}

	level, err := h.progress.CurrentLevel(r.Context(), childID, game)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get level")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, LevelResponse{ChildID: childID, Game: game, Level: level})
}

// Report handles GET /api/children/{id}/report. The optional limit query
// parameter caps the number of sessions.
func (h *ChildHandler) Report(w http.ResponseWriter, r *http.Request) {
	childID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	report, err := h.progress.Report(r.Context(), childID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build report")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, reportToResponse(report))
}

package api

import (
	"net/http"

	"github.com/phrazzld/lexiplay/internal/api/shared"
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/domain/leveling"
)

// LevelHandler exposes the level adjustment engine without any session.
type LevelHandler struct {
	leveler leveling.Service
}

// NewLevelHandler creates a LevelHandler.
func NewLevelHandler(leveler leveling.Service) *LevelHandler {
	if leveler == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("leveling service cannot be nil for LevelHandler")
	}
	return &LevelHandler{leveler: leveler}
}

// Decide handles POST /api/levels/decide. Out-of-range current levels are
// clamped, unknown emotion labels count as unknown.
func (h *LevelHandler) Decide(w http.ResponseWriter, r *http.Request) {
	var req DecideRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	decision := h.leveler.Decide(domain.ParseEmotionSeries(req.Emotions), *req.Score, *req.CurrentLevel)
	shared.RespondWithJSON(w, r, http.StatusOK, decision)
}

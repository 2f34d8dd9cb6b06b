package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/phrazzld/lexiplay/internal/api/shared"
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/platform/logger"
	"github.com/phrazzld/lexiplay/internal/service/play"
)

// Websocket limits
const (
	wsReadTimeout  = 2 * time.Minute
	wsWriteTimeout = 5 * time.Second
	wsMaxMessage   = 512
)

// PlayService is the part of play.Service the handlers use.
type PlayService interface {
	StartSession(ctx context.Context, childID uuid.UUID, game domain.GameName) (*play.SessionView, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*play.SessionView, error)
	SubmitAnswer(ctx context.Context, sessionID uuid.UUID, answer []string) (*play.AnswerView, error)
	PushEmotion(ctx context.Context, sessionID uuid.UUID, label string) error
	QuitSession(ctx context.Context, sessionID uuid.UUID) (*play.Result, error)
}

var _ PlayService = (*play.Service)(nil)

// SessionHandler handles live play sessions.
type SessionHandler struct {
	play     PlayService
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(playService PlayService, logger *slog.Logger) *SessionHandler {
	if playService == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("play service cannot be nil for SessionHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHandler{
		play: playService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.With(slog.String("component", "session_handler")),
	}
}

// StartSession handles POST /api/sessions.
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	childID, err := uuid.Parse(req.ChildID)
	if err != nil {
		HandleAPIError(w, r, domain.ErrInvalidID, "")
		return
	}
	game, err := domain.ParseGameName(req.Game)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	view, err := h.play.StartSession(r.Context(), childID, game)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start session")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, view)
}

// GetSession handles GET /api/sessions/{id}.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.play.GetSession(r.Context(), sessionID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get session")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// SubmitAnswer handles POST /api/sessions/{id}/answers.
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req SubmitAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.play.SubmitAnswer(r.Context(), sessionID, req.Answer)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit answer")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// PushEmotion handles POST /api/sessions/{id}/emotions.
func (h *SessionHandler) PushEmotion(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req EmotionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.play.PushEmotion(r.Context(), sessionID, req.Emotion); err != nil {
		HandleAPIError(w, r, err, "Failed to record emotion")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// QuitSession handles POST /api/sessions/{id}/quit.
func (h *SessionHandler) QuitSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.play.QuitSession(r.Context(), sessionID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to quit session")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// EmotionStream handles GET /api/sessions/{id}/emotions/ws. Every text
// message is one EmotionRequest and is answered with an EmotionAck. The
// server closes the connection once the session stops accepting samples.
func (h *SessionHandler) EmotionStream(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if _, err := h.play.GetSession(r.Context(), sessionID); err != nil {
		HandleAPIError(w, r, err, "Failed to open emotion stream")
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger).With(slog.String("session_id", sessionID.String()))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		log.Debug("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsMaxMessage)

	log.Debug("emotion stream opened")

	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("emotion stream read failed", slog.String("error", err.Error()))
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var req EmotionRequest
		if err := json.Unmarshal(msg, &req); err != nil || shared.ValidateRequest(&req) != nil {
			if !h.writeWS(conn, EmotionAck{Accepted: false}) {
				return
			}
			continue
		}

		label := domain.ParseEmotionLabel(req.Emotion)
		err = h.play.PushEmotion(r.Context(), sessionID, req.Emotion)
		if err != nil {
			reason := "session ended"
			if !errors.Is(err, play.ErrSessionNotActive) && !errors.Is(err, play.ErrSessionNotFound) {
				reason = "internal error"
				log.Error("failed to push emotion", slog.String("error", err.Error()))
			}
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
				time.Now().Add(wsWriteTimeout))
			return
		}
		if !h.writeWS(conn, EmotionAck{Emotion: label, Accepted: true}) {
			return
		}
	}
}

func (h *SessionHandler) writeWS(conn *websocket.Conn, ack EmotionAck) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(ack) == nil
}

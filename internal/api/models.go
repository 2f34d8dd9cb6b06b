package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/service"
)

// GameAssignmentRequest assigns one game when a child is created.
type GameAssignmentRequest struct {
	Game          string `json:"game"           validate:"required"`
	AssignedLevel int    `json:"assigned_level" validate:"gte=0,lte=4"`
	CurrentLevel  int    `json:"current_level"  validate:"gte=0,lte=4"`
}

// CreateChildRequest is the payload of POST /api/children.
type CreateChildRequest struct {
	Name  string                  `json:"name"  validate:"required,max=100"`
	Games []GameAssignmentRequest `json:"games" validate:"dive"`
}

// AssignGameRequest is the payload of PUT /api/children/{id}/games/{game}.
type AssignGameRequest struct {
	AssignedLevel *int `json:"assigned_level" validate:"required,gte=0,lte=4"`
}

// GameAssignmentResponse is one game of a child.
type GameAssignmentResponse struct {
	Game          domain.GameName `json:"game"`
	DisplayName   string          `json:"display_name"`
	AssignedLevel int             `json:"assigned_level"`
	CurrentLevel  int             `json:"current_level"`
}

// ChildResponse is a child with its game assignments.
type ChildResponse struct {
	ID        uuid.UUID                `json:"id"`
	Name      string                   `json:"name"`
	Games     []GameAssignmentResponse `json:"games"`
	CreatedAt time.Time                `json:"created_at"`
}

// LevelResponse is the current level of a child in one game.
type LevelResponse struct {
	ChildID uuid.UUID       `json:"child_id"`
	Game    domain.GameName `json:"game"`
	Level   int             `json:"level"`
}

// SessionRecordResponse is one entry of a child's session history.
type SessionRecordResponse struct {
	ID         uuid.UUID           `json:"id"`
	Game       domain.GameName     `json:"game"`
	Level      int                 `json:"level"`
	Score      int                 `json:"score"`
	MaxEmotion domain.EmotionLabel `json:"max_emotion"`
	MinEmotion domain.EmotionLabel `json:"min_emotion"`
	CreatedAt  time.Time           `json:"created_at"`
}

// ReportResponse is a child together with its session history, newest first.
type ReportResponse struct {
	Child    ChildResponse           `json:"child"`
	Sessions []SessionRecordResponse `json:"sessions"`
}

// StartSessionRequest is the payload of POST /api/sessions.
type StartSessionRequest struct {
	ChildID string `json:"child_id" validate:"required,uuid"`
	Game    string `json:"game"     validate:"required"`
}

// SubmitAnswerRequest is the payload of POST /api/sessions/{id}/answers.
// Memory Matrix answers carry one token per tile; every other game a single
// token.
type SubmitAnswerRequest struct {
	Answer []string `json:"answer" validate:"required,min=1,max=64"`
}

// EmotionRequest is one emotion sample, over HTTP or the websocket.
type EmotionRequest struct {
	Emotion string `json:"emotion" validate:"required,max=32"`
}

// EmotionAck acknowledges a websocket emotion sample.
type EmotionAck struct {
	Emotion  domain.EmotionLabel `json:"emotion"`
	Accepted bool                `json:"accepted"`
}

// DecideRequest is the payload of POST /api/levels/decide.
type DecideRequest struct {
	Emotions     []string `json:"emotions"`
	Score        *float64 `json:"score"         validate:"required"`
	CurrentLevel *int     `json:"current_level" validate:"required"`
}

func gameAssignmentToResponse(a domain.GameAssignment) GameAssignmentResponse {
	return GameAssignmentResponse{
		Game:          a.GameName,
		DisplayName:   a.GameName.DisplayName(),
		AssignedLevel: a.AssignedLevel,
		CurrentLevel:  a.CurrentLevel,
	}
}

func gamesToResponse(games []domain.GameAssignment) []GameAssignmentResponse {
	out := make([]GameAssignmentResponse, 0, len(games))
	for _, g := range games {
		out = append(out, gameAssignmentToResponse(g))
	}
	return out
}

func childToResponse(child *domain.Child) ChildResponse {
	return ChildResponse{
		ID:        child.ID,
		Name:      child.Name,
		Games:     gamesToResponse(child.Games),
		CreatedAt: child.CreatedAt,
	}
}

func reportToResponse(report *service.ChildReport) ReportResponse {
	sessions := make([]SessionRecordResponse, 0, len(report.Sessions))
	for _, rec := range report.Sessions {
		sessions = append(sessions, SessionRecordResponse{
			ID:         rec.ID,
			Game:       rec.GameName,
			Level:      rec.Level,
			Score:      rec.Score,
			MaxEmotion: rec.MaxEmotion,
			MinEmotion: rec.MinEmotion,
			CreatedAt:  rec.CreatedAt,
		})
	}
	return ReportResponse{Child: childToResponse(report.Child), Sessions: sessions}
}

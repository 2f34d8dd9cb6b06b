package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexiplay/internal/api/shared"
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/service"
	"github.com/phrazzld/lexiplay/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateChild(t *testing.T) {
	t.Parallel()

	childID := uuid.New()
	var gotGames []domain.GameAssignment
	children := &mockChildService{
		createFn: func(_ context.Context, name string, games []domain.GameAssignment) (*domain.Child, error) {
			gotGames = games
			return &domain.Child{ID: childID, Name: name, Games: games, CreatedAt: time.Now()}, nil
		},
	}
	router := testRouter(children, nil, nil)

	w := doRequest(t, router, http.MethodPost, "/api/children",
		`{"name": "Mia", "games": [{"game": "Word Wizard", "assigned_level": 3}, {"game": "math-quest", "assigned_level": 2, "current_level": 1}]}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, []domain.GameAssignment{
		{GameName: domain.GameWordWizard, AssignedLevel: 3},
		{GameName: domain.GameMathQuest, AssignedLevel: 2, CurrentLevel: 1},
	}, gotGames)

	var resp ChildResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, childID, resp.ID)
	assert.Equal(t, "Mia", resp.Name)
	require.Len(t, resp.Games, 2)
	assert.Equal(t, "Word Wizard", resp.Games[0].DisplayName)
}

func TestCreateChildRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "malformed json", body: `{"name": `, wantMsg: "Invalid request format"},
		{name: "missing name", body: `{"games": []}`, wantMsg: "Invalid name: required field"},
		{name: "level out of range", body: `{"name": "Mia", "games": [{"game": "math-quest", "assigned_level": 7}]}`, wantMsg: "Invalid assignedlevel: out of range"},
		{name: "unknown game", body: `{"name": "Mia", "games": [{"game": "chess", "assigned_level": 1}]}`, wantMsg: "Unknown game"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := testRouter(&mockChildService{
				createFn: func(context.Context, string, []domain.GameAssignment) (*domain.Child, error) {
					t.Fatal("service must not be called")
					return nil, nil
				},
			}, nil, nil)

			w := doRequest(t, router, http.MethodPost, "/api/children", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.wantMsg, errorBody(t, w).Error)
		})
	}
}

func TestGetChild(t *testing.T) {
	t.Parallel()

	known := uuid.New()
	children := &mockChildService{
		getFn: func(_ context.Context, id uuid.UUID) (*domain.Child, error) {
			if id != known {
				return nil, service.NewChildServiceError("get_child", "failed to get child", store.ErrChildNotFound)
			}
			return &domain.Child{ID: id, Name: "Leo"}, nil
		},
	}
	router := testRouter(children, nil, nil)

	w := doRequest(t, router, http.MethodGet, "/api/children/"+known.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/children/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := errorBody(t, w)
	assert.Equal(t, "Child not found", body.Error)
	assert.NotEmpty(t, body.TraceID)

	w = doRequest(t, router, http.MethodGet, "/api/children/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid ID", errorBody(t, w).Error)
}

func TestActiveGames(t *testing.T) {
	t.Parallel()

	router := testRouter(&mockChildService{
		activeGamesFn: func(context.Context, uuid.UUID) ([]domain.GameAssignment, error) {
			return []domain.GameAssignment{{GameName: domain.GameShapePattern, AssignedLevel: 2}}, nil
		},
	}, nil, nil)

	w := doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/children/%s/games/active", uuid.New()), "")
	require.Equal(t, http.StatusOK, w.Code)

	var games []GameAssignmentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &games))
	assert.Equal(t, []GameAssignmentResponse{{
		Game:          domain.GameShapePattern,
		DisplayName:   "Shape Pattern",
		AssignedLevel: 2,
	}}, games)
}

func TestAssignGame(t *testing.T) {
	t.Parallel()

	childID := uuid.New()
	var got struct {
		game  domain.GameName
		level int
	}
	router := testRouter(&mockChildService{
		assignGameFn: func(_ context.Context, id uuid.UUID, game domain.GameName, level int) error {
			assert.Equal(t, childID, id)
			got.game, got.level = game, level
			return nil
		},
	}, nil, nil)

	w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/children/%s/games/memory-matrix", childID), `{"assigned_level": 0}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, domain.GameMemoryMatrix, got.game)
	assert.Equal(t, 0, got.level)

	w = doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/children/%s/games/memory-matrix", childID), `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/children/%s/games/tetris", childID), `{"assigned_level": 1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unknown game", errorBody(t, w).Error)
}

func TestCurrentLevel(t *testing.T) {
	t.Parallel()

	childID := uuid.New()
	router := testRouter(nil, &mockProgressService{
		currentLevelFn: func(_ context.Context, _ uuid.UUID, game domain.GameName) (int, error) {
			if game == domain.GameWordWizard {
				return 3, nil
			}
			return 0, nil
		},
	}, nil)

	w := doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/children/%s/games/word-wizard/level", childID), "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp LevelResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, LevelResponse{ChildID: childID, Game: domain.GameWordWizard, Level: 3}, resp)
}

func TestReport(t *testing.T) {
	t.Parallel()

	childID := uuid.New()
	var gotLimit int
	router := testRouter(nil, &mockProgressService{
		reportFn: func(_ context.Context, id uuid.UUID, limit int) (*service.ChildReport, error) {
			gotLimit = limit
			return &service.ChildReport{
				Child: &domain.Child{ID: id, Name: "Ava"},
				Sessions: []*domain.SessionRecord{{
					ID:         uuid.New(),
					ChildID:    id,
					GameName:   domain.GameMathQuest,
					Level:      2,
					Score:      40,
					MaxEmotion: domain.EmotionHappy,
					MinEmotion: domain.EmotionSad,
				}},
			}, nil
		},
	}, nil)

	w := doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/children/%s/report?limit=10", childID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, gotLimit)

	var resp ReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Ava", resp.Child.Name)
	require.Len(t, resp.Sessions, 1)
	assert.Equal(t, 40, resp.Sessions[0].Score)
	assert.Equal(t, domain.EmotionSad, resp.Sessions[0].MinEmotion)

	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/children/%s/report?limit=-1", childID), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

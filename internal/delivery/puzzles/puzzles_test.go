package puzzles

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chess_trainer/internal/domain/puzzle"
	apperrors "chess_trainer/internal/errors"
	"chess_trainer/internal/httpresponse"
	"chess_trainer/internal/repository"
	puzzlesUC "chess_trainer/internal/usecase/puzzles"
)

type memoryStore struct {
	puzzles  []puzzle.Puzzle
	profiles map[string]puzzle.Profile
}

func (m *memoryStore) ImportPuzzles(context.Context, string) (int, error) { return 0, nil }

func (m *memoryStore) PuzzleByID(_ context.Context, id string) (puzzle.Puzzle, error) {
	for _, pz := range m.puzzles {
		if pz.ID == id {
			return pz, nil
		}
	}
	return puzzle.Puzzle{}, apperrors.ErrPuzzleNotFound
}

func (m *memoryStore) PuzzlesPage(ctx context.Context, userID string, level int, pageNum int) (*puzzle.Page, error) {
	if pageNum < 1 {
		return nil, apperrors.ErrInvalidPage
	}
	profile, _ := m.Profile(ctx, userID)
	var onLevel []puzzle.Puzzle
	for _, pz := range m.puzzles {
		if pz.Level == level {
			onLevel = append(onLevel, pz)
		}
	}
	return repository.Paginate(onLevel, profile, pageNum, 10), nil
}

func (m *memoryStore) PuzzlesNearRating(_ context.Context, rating, _ int) ([]puzzle.Puzzle, error) {
	best, ok := repository.Closest(m.puzzles, rating)
	if !ok {
		return nil, apperrors.ErrPuzzleNotFound
	}
	return []puzzle.Puzzle{best}, nil
}

func (m *memoryStore) PuzzlesByTheme(_ context.Context, theme string) ([]puzzle.Puzzle, error) {
	var out []puzzle.Puzzle
	for _, pz := range m.puzzles {
		if pz.Theme == theme {
			out = append(out, pz)
		}
	}
	if len(out) == 0 {
		return nil, apperrors.ErrPuzzleNotFound
	}
	return out, nil
}

func (m *memoryStore) Profile(_ context.Context, userID string) (puzzle.Profile, error) {
	if p, ok := m.profiles[userID]; ok {
		return p, nil
	}
	return puzzle.NewProfile(userID), nil
}

func (m *memoryStore) SaveProfile(_ context.Context, profile puzzle.Profile) error {
	m.profiles[profile.UserID] = profile
	return nil
}

func newRouter() *chi.Mux {
	store := &memoryStore{
		puzzles: []puzzle.Puzzle{
			{ID: "fork_001", Moves: []string{"d1h5"}, Theme: "fork", Level: 1, Rating: 800, Hint: "Look for a move that attacks two pieces at once"},
			{ID: "mate_in_2_001", Moves: []string{"a1a8", "g8h7", "a8h8"}, Theme: "mate_in_2", Level: 2, Rating: 1400},
		},
		profiles: map[string]puzzle.Profile{},
	}
	log := zap.NewNop().Sugar()
	r := chi.NewRouter()
	NewPuzzleHandler(log, puzzlesUC.NewPuzzleUseCase(store, 200, log)).Register(r)
	return r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func body[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var resp httpresponse.Response[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Body
}

func TestHandleGetPuzzlesPage(t *testing.T) {
	r := newRouter()

	rec := serve(r, http.MethodGet, "/puzzles?user_id=u1&level=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := body[puzzle.Page](t, rec)
	require.Len(t, page.Puzzles, 1)
	assert.Equal(t, "mate_in_2_001", page.Puzzles[0].ID)
	assert.Equal(t, puzzle.StatusUnsolved, page.Puzzles[0].Status)

	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/puzzles?level=2", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/puzzles?user_id=u1&page=x", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/puzzles?user_id=u1&page=0", "").Code)
}

func TestHandleNextPuzzle_HidesSolution(t *testing.T) {
	r := newRouter()

	rec := serve(r, http.MethodGet, "/puzzles/next?user_id=u1&rating=1500", "")
	require.Equal(t, http.StatusOK, rec.Code)
	pz := body[puzzle.Puzzle](t, rec)
	assert.Equal(t, "mate_in_2_001", pz.ID)
	assert.Empty(t, pz.Moves)

	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/puzzles/next?user_id=u1&rating=high", "").Code)
}

func TestHandleAttemptAndProfile(t *testing.T) {
	r := newRouter()

	rec := serve(r, http.MethodPost, "/puzzles/attempt", `{"user_id":"u1","puzzle_id":"fork_001","line":["d1f3"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res := body[puzzle.AttemptResult](t, rec)
	assert.False(t, res.Correct)
	assert.Equal(t, "Look for a move that attacks two pieces at once", res.Hint)

	rec = serve(r, http.MethodPost, "/puzzles/attempt", `{"user_id":"u1","puzzle_id":"fork_001","line":["d1h5"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res = body[puzzle.AttemptResult](t, rec)
	assert.True(t, res.Complete)

	rec = serve(r, http.MethodGet, "/puzzles/profile/u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	profile := body[puzzle.Profile](t, rec)
	assert.Equal(t, 1, profile.Solved)
	assert.Equal(t, []string{"fork_001"}, profile.SolvedIDs)

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodPost, "/puzzles/attempt", `{"user_id":"u1","puzzle_id":"nope","line":["e2e4"]}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, "/puzzles/attempt", `{"user_id":"u1","puzzle_id":"fork_001","line":[]}`).Code)
}

func TestHandleSkip(t *testing.T) {
	r := newRouter()

	rec := serve(r, http.MethodPost, "/puzzles/skip", `{"user_id":"u2","puzzle_id":"mate_in_2_001"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := body[puzzle.Profile](t, rec)
	assert.Equal(t, 1, profile.Attempted)
	assert.Equal(t, 1199, profile.Rating)

	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, "/puzzles/skip", `{"user_id":"u2"}`).Code)
}

func TestHandleNextPuzzle_ByTheme(t *testing.T) {
	r := newRouter()

	rec := serve(r, http.MethodGet, "/puzzles/next?user_id=u1&theme=fork&rating=1500", "")
	require.Equal(t, http.StatusOK, rec.Code)
	pz := body[puzzle.Puzzle](t, rec)
	assert.Equal(t, "fork_001", pz.ID)
	assert.Empty(t, pz.Moves)

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/puzzles/next?user_id=u1&theme=zugzwang", "").Code)
}

func TestHandleReport(t *testing.T) {
	r := newRouter()

	require.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/puzzles/attempt", `{"user_id":"u3","puzzle_id":"fork_001","line":["d1h5"]}`).Code)
	require.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/puzzles/skip", `{"user_id":"u3","puzzle_id":"mate_in_2_001"}`).Code)

	rec := serve(r, http.MethodGet, "/puzzles/report/u3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	report := body[puzzle.Report](t, rec)
	assert.Equal(t, 2, report.Attempted)
	assert.InDelta(t, 0.5, report.SuccessRate, 1e-9)
	assert.Equal(t, puzzle.StrengthStrong, report.Themes["fork"].Strength)
	assert.Equal(t, puzzle.StrengthWeak, report.Themes["mate_in_2"].Strength)
	assert.Equal(t, 1, report.Levels["2"].Attempted)
}

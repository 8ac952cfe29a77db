package puzzles

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"chess_trainer/internal/domain/puzzle"
	"chess_trainer/internal/httpresponse"
	puzzlesUC "chess_trainer/internal/usecase/puzzles"
	"chess_trainer/internal/utils"
)

type SkipRequest struct {
	UserID   string `json:"user_id" validate:"required,max=64"`
	PuzzleID string `json:"puzzle_id" validate:"required,max=64"`
}

type PuzzleHandler struct {
	log      *zap.SugaredLogger
	puzzleUC *puzzlesUC.PuzzleUseCase
}

func NewPuzzleHandler(log *zap.SugaredLogger, puzzleUC *puzzlesUC.PuzzleUseCase) *PuzzleHandler {
	return &PuzzleHandler{
		log:      log,
		puzzleUC: puzzleUC,
	}
}

func (ph *PuzzleHandler) Register(r chi.Router) {
	r.Get("/puzzles", ph.HandleGetPuzzlesPage)
	r.Get("/puzzles/next", ph.HandleNextPuzzle)
	r.Post("/puzzles/attempt", ph.HandleAttempt)
	r.Post("/puzzles/skip", ph.HandleSkip)
	r.Get("/puzzles/profile/{userID}", ph.HandleProfile)
	r.Get("/puzzles/report/{userID}", ph.HandleReport)
}

// HandleGetPuzzlesPage serves GET /puzzles?user_id=&level=&page=
func (ph *PuzzleHandler) HandleGetPuzzlesPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	userID := query.Get("user_id")
	if userID == "" {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	pageNum, err := intParam(query.Get("page"), 1)
	if err != nil {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "page: "+err.Error())
		return
	}
	level, err := intParam(query.Get("level"), 1)
	if err != nil {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "level: "+err.Error())
		return
	}

	page, err := ph.puzzleUC.Page(r.Context(), userID, level, pageNum)
	if err != nil {
		ph.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, page)
}

// HandleNextPuzzle serves GET /puzzles/next?user_id=&rating= and
// GET /puzzles/next?user_id=&theme=. A theme overrides the rating.
func (ph *PuzzleHandler) HandleNextPuzzle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	userID := query.Get("user_id")
	if userID == "" {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if theme := query.Get("theme"); theme != "" {
		pz, err := ph.puzzleUC.ThemePuzzle(r.Context(), userID, theme)
		if err != nil {
			ph.writeError(w, err)
			return
		}
		pz.Moves = nil
		httpresponse.WriteResponseWithStatus(w, http.StatusOK, pz)
		return
	}

	var rating *int
	if raw := query.Get("rating"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "rating: "+err.Error())
			return
		}
		rating = &v
	}

	pz, err := ph.puzzleUC.NextPuzzle(r.Context(), userID, rating)
	if err != nil {
		ph.writeError(w, err)
		return
	}
	// the solution stays on the server
	pz.Moves = nil
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, pz)
}

func (ph *PuzzleHandler) HandleAttempt(w http.ResponseWriter, r *http.Request) {
	var req puzzle.AttemptRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := ph.puzzleUC.Attempt(r.Context(), req)
	if err != nil {
		ph.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, result)
}

func (ph *PuzzleHandler) HandleSkip(w http.ResponseWriter, r *http.Request) {
	var req SkipRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := ph.puzzleUC.Skip(r.Context(), req.UserID, req.PuzzleID)
	if err != nil {
		ph.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, profile)
}

func (ph *PuzzleHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := ph.puzzleUC.Profile(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		ph.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, profile)
}

func (ph *PuzzleHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	report, err := ph.puzzleUC.Report(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		ph.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, report)
}

func (ph *PuzzleHandler) writeError(w http.ResponseWriter, err error) {
	if httpresponse.StatusFromError(err) >= http.StatusInternalServerError {
		ph.log.Error(err)
	}
	httpresponse.WriteError(w, err)
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

package trainer

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chess_trainer/internal/bootstrap"
	"chess_trainer/internal/domain/analysis"
	"chess_trainer/internal/domain/decision"
	"chess_trainer/internal/domain/review"
	"chess_trainer/internal/httpresponse"
	trainerUC "chess_trainer/internal/usecase/trainer"
	"chess_trainer/internal/utils"
)

type BotMoveResponse struct {
	Move         string         `json:"move"`
	BestMove     string         `json:"best_move"`
	Rank         int            `json:"rank"`
	Weights      []float64      `json:"weights"`
	Phase        decision.Phase `json:"phase"`
	Side         decision.Color `json:"side"`
	Seed         int64          `json:"seed"`
	EvalText     string         `json:"eval_text"`
	BestEvalText string         `json:"best_eval_text"`
}

type ReviewResponse struct {
	review.Review
	EvalText     string `json:"eval_text"`
	BestEvalText string `json:"best_eval_text"`
}

type ClassifyRequest struct {
	PlayedEval *decision.Centipawns `json:"played_eval" validate:"required"`
	BestEval   *decision.Centipawns `json:"best_eval" validate:"required"`
	Side       decision.Color       `json:"side"`
}

type GameReportResponse struct {
	GameID          string               `json:"game_id"`
	Stats           decision.ReviewStats `json:"stats"`
	AverageAccuracy float64              `json:"average_accuracy"`
}

type TrainerHandler struct {
	cfg       bootstrap.Config
	log       *zap.SugaredLogger
	trainerUC *trainerUC.TrainerUseCase
	upgrader  websocket.Upgrader
}

func NewTrainerHandler(cfg bootstrap.Config, log *zap.SugaredLogger, uc *trainerUC.TrainerUseCase) *TrainerHandler {
	upgrader := websocket.Upgrader{}
	if cfg.IsLocalCors {
		upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return &TrainerHandler{
		cfg:       cfg,
		log:       log,
		trainerUC: uc,
		upgrader:  upgrader,
	}
}

func (h *TrainerHandler) Register(r chi.Router) {
	r.Post("/botMove", h.HandleBotMove)
	r.Post("/reviewMove", h.HandleReviewMove)
	r.Post("/classify", h.HandleClassify)
	r.Post("/hints", h.HandleHints)
	r.Get("/games/{gameID}/report", h.HandleGameReport)
	r.Get("/games/{gameID}/reviews", h.HandleGameReviews)
	r.Get("/ws/review", h.HandleReviewStream)
}

func (h *TrainerHandler) HandleBotMove(w http.ResponseWriter, r *http.Request) {
	// omitted traits stay neutral
	req := trainerUC.BotMoveRequest{Personality: decision.NeutralPersonality()}
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Debugw("bad botMove request", "error", err)
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	move, err := h.trainerUC.BotMove(r.Context(), req)
	if err != nil {
		h.writeError(w, "bot move failed", err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, BotMoveResponse{
		Move:         move.Result.Chosen.Move,
		BestMove:     move.Result.Best.Move,
		Rank:         move.Result.ChosenRank,
		Weights:      move.Result.Weights,
		Phase:        move.Phase,
		Side:         move.Side,
		Seed:         move.Seed,
		EvalText:     decision.EvalText(move.Result.Chosen, move.Side),
		BestEvalText: decision.EvalText(move.Result.Best, move.Side),
	})
}

func (h *TrainerHandler) HandleReviewMove(w http.ResponseWriter, r *http.Request) {
	var req review.ReviewRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Debugw("bad reviewMove request", "error", err)
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	rv, err := h.trainerUC.ReviewMove(r.Context(), req)
	if err != nil {
		h.writeError(w, "review failed", err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, newReviewResponse(rv, req.Position.Side))
}

func (h *TrainerHandler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	label, err := h.trainerUC.Classify(*req.PlayedEval, *req.BestEval, req.Side)
	if err != nil {
		h.writeError(w, "classify failed", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, label)
}

func (h *TrainerHandler) HandleHints(w http.ResponseWriter, r *http.Request) {
	var pos analysis.Position
	if err := utils.DecodeJSONRequest(r, &pos); err != nil {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	hints, err := h.trainerUC.Hints(r.Context(), pos)
	if err != nil {
		h.writeError(w, "hints failed", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, hints)
}

func (h *TrainerHandler) HandleGameReport(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if gameID == "" {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "game id is required")
		return
	}

	stats, err := h.trainerUC.GameReport(r.Context(), gameID)
	if err != nil {
		h.writeError(w, "game report failed", err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, GameReportResponse{
		GameID:          gameID,
		Stats:           stats,
		AverageAccuracy: stats.AverageAccuracy(),
	})
}

func (h *TrainerHandler) HandleGameReviews(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	reviews, err := h.trainerUC.GameReviews(r.Context(), gameID)
	if err != nil {
		h.writeError(w, "game reviews failed", err)
		return
	}

	resp := make([]ReviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		resp = append(resp, newReviewResponse(rv, decision.White))
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (h *TrainerHandler) writeError(w http.ResponseWriter, msg string, err error) {
	if httpresponse.StatusFromError(err) >= http.StatusInternalServerError {
		h.log.Errorw(msg, "error", err)
	} else {
		h.log.Infow(msg, "error", err)
	}
	httpresponse.WriteError(w, err)
}

// newReviewResponse renders both evaluations for the side that played the move.
func newReviewResponse(rv review.Review, fallback decision.Color) ReviewResponse {
	side, err := decision.ParseColor(rv.Side)
	if err != nil {
		side = fallback
	}
	return ReviewResponse{
		Review:       rv,
		EvalText:     decision.EvalText(decision.MoveCandidate{Eval: rv.PlayedEval, MateIn: rv.PlayedEval.MateDistance()}, side),
		BestEvalText: decision.EvalText(decision.MoveCandidate{Eval: rv.BestEval, MateIn: rv.BestEval.MateDistance()}, side),
	}
}

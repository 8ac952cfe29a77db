package openings

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"chess_trainer/internal/domain/decision"
	"chess_trainer/internal/domain/opening"
	"chess_trainer/internal/httpresponse"
	openingsUC "chess_trainer/internal/usecase/openings"
	"chess_trainer/internal/utils"
)

type HintResponse struct {
	Hint string `json:"hint"`
}

type RepertoireResponse struct {
	UserID   string         `json:"user_id"`
	Side     decision.Color `json:"color"`
	Openings []string       `json:"openings"`
}

type OpeningHandler struct {
	log       *zap.SugaredLogger
	openingUC *openingsUC.OpeningUseCase
}

func NewOpeningHandler(log *zap.SugaredLogger, openingUC *openingsUC.OpeningUseCase) *OpeningHandler {
	return &OpeningHandler{
		log:       log,
		openingUC: openingUC,
	}
}

// Opening names carry spaces and apostrophes, so they travel in the query
// string or the body rather than in the path.
func (oh *OpeningHandler) Register(r chi.Router) {
	r.Get("/openings", oh.HandleList)
	r.Get("/openings/line", oh.HandleLine)
	r.Post("/openings/next", oh.HandleNext)
	r.Post("/openings/check", oh.HandleCheck)
	r.Post("/openings/hint", oh.HandleHint)
	r.Post("/openings/skip", oh.HandleSkip)
	r.Post("/openings/practice", oh.HandlePractice)
	r.Get("/openings/stats/{userID}", oh.HandleStatistics)
	r.Post("/openings/repertoire", oh.HandleAddToRepertoire)
	r.Get("/openings/repertoire/{userID}", oh.HandleRepertoire)
}

func (oh *OpeningHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	summaries, err := oh.openingUC.Openings(r.Context())
	if err != nil {
		oh.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, summaries)
}

// HandleLine serves GET /openings/line?name=
func (oh *OpeningHandler) HandleLine(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	line, err := oh.openingUC.Opening(r.Context(), name)
	if err != nil {
		oh.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, line)
}

func (oh *OpeningHandler) HandleNext(w http.ResponseWriter, r *http.Request) {
	var req opening.LineRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	step, err := oh.openingUC.NextMove(r.Context(), req)
	if err != nil {
		oh.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, step)
}

func (oh *OpeningHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	var req opening.CheckRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := oh.openingUC.CheckMove(r.Context(), req)
	if err != nil {
		oh.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, result)
}

func (oh *OpeningHandler) HandleHint(w http.ResponseWriter, r *http.Request) {
	var req opening.LineRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	hint, err := oh.openingUC.Hint(r.Context(), req)
	if err != nil {
		oh.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, HintResponse{Hint: hint})
}

func (oh *OpeningHandler) HandleSkip(w http.ResponseWriter, r *http.Request) {
	var req opening.LineRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	move, err := oh.openingUC.Skip(r.Context(), req)
	if err != nil {
		oh.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, move)
}

func (oh *OpeningHandler) HandlePractice(w http.ResponseWriter, r *http.Request) {
	var req opening.PracticeRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	practice, err := oh.openingUC.Practice(r.Context(), req)
	if err != nil {
		oh.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, practice)
}

func (oh *OpeningHandler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := oh.openingUC.Statistics(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		oh.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, stats)
}

func (oh *OpeningHandler) HandleAddToRepertoire(w http.ResponseWriter, r *http.Request) {
	var req opening.RepertoireRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	names, err := oh.openingUC.AddToRepertoire(r.Context(), req)
	if err != nil {
		oh.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, RepertoireResponse{UserID: req.UserID, Side: req.Side, Openings: names})
}

// HandleRepertoire serves GET /openings/repertoire/{userID}?color=, white by default.
func (oh *OpeningHandler) HandleRepertoire(w http.ResponseWriter, r *http.Request) {
	side := decision.White
	if raw := r.URL.Query().Get("color"); raw != "" {
		parsed, err := decision.ParseColor(raw)
		if err != nil {
			oh.writeError(w, err)
			return
		}
		side = parsed
	}

	userID := chi.URLParam(r, "userID")
	names, err := oh.openingUC.Repertoire(r.Context(), userID, side)
	if err != nil {
		oh.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, RepertoireResponse{UserID: userID, Side: side, Openings: names})
}

func (oh *OpeningHandler) writeError(w http.ResponseWriter, err error) {
	if httpresponse.StatusFromError(err) >= http.StatusInternalServerError {
		oh.log.Error(err)
	}
	httpresponse.WriteError(w, err)
}

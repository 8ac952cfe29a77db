package trainer

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"chess_trainer/internal/domain/review"
	"chess_trainer/internal/httpresponse"
	"chess_trainer/internal/utils"
)

const (
	streamWriteWait    = 10 * time.Second
	streamMessageLimit = 64 << 10
)

// StreamReply answers one review request on the websocket. Exactly one of
// Review and Error is set.
type StreamReply struct {
	Ply    int             `json:"ply"`
	Review *ReviewResponse `json:"review,omitempty"`
	Status int             `json:"status"`
	Error  string          `json:"error,omitempty"`
}

// HandleReviewStream reviews a game move by move over one connection. A bad
// message gets an error reply and the stream continues.
func (h *TrainerHandler) HandleReviewStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorw("upgrade error", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(streamMessageLimit)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warnw("review stream closed", "error", err)
			}
			return
		}

		reply := h.reviewStreamMessage(r, data)
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err := conn.WriteJSON(reply); err != nil {
			h.log.Warnw("review stream write error", "error", err)
			return
		}
	}
}

func (h *TrainerHandler) reviewStreamMessage(r *http.Request, data []byte) StreamReply {
	var req review.ReviewRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return StreamReply{Status: http.StatusBadRequest, Error: httpresponse.MALFORMEDJSON_errorDesc}
	}
	if err := utils.Validate(&req); err != nil {
		return StreamReply{Ply: req.Ply, Status: http.StatusBadRequest, Error: err.Error()}
	}

	rv, err := h.trainerUC.ReviewMove(r.Context(), req)
	if err != nil {
		status := httpresponse.StatusFromError(err)
		if status >= http.StatusInternalServerError {
			h.log.Errorw("stream review failed", "game", req.GameID, "ply", req.Ply, "error", err)
			return StreamReply{Ply: req.Ply, Status: status, Error: http.StatusText(status)}
		}
		return StreamReply{Ply: req.Ply, Status: status, Error: err.Error()}
	}

	resp := newReviewResponse(rv, req.Position.Side)
	return StreamReply{Ply: req.Ply, Review: &resp, Status: http.StatusOK}
}

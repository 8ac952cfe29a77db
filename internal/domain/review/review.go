package review

import (
	"time"

	"chess_trainer/internal/domain/analysis"
	"chess_trainer/internal/domain/decision"
)

// @name ReviewRequest
type ReviewRequest struct {
	GameID   string            `json:"game_id" validate:"required,max=64"`
	Ply      int               `json:"ply" validate:"min=0"`
	Move     string            `json:"move" validate:"required,max=16"`
	Position analysis.Position `json:"position"`
}

// Review is one graded move as stored in the archive.
type Review struct {
	ID         string                 `json:"id" bson:"_id"`
	GameID     string                 `json:"game_id" bson:"game_id"`
	Ply        int                    `json:"ply" bson:"ply"`
	FEN        string                 `json:"fen" bson:"fen"`
	Side       string                 `json:"side" bson:"side"`
	Move       string                 `json:"move" bson:"move"`
	BestMove   string                 `json:"best_move" bson:"best_move"`
	PlayedEval decision.Centipawns    `json:"played_eval" bson:"played_eval"`
	BestEval   decision.Centipawns    `json:"best_eval" bson:"best_eval"`
	Label      decision.AccuracyLabel `json:"label" bson:"label"`
	CreatedAt  time.Time              `json:"created_at" bson:"created_at"`
}

package decision

import (
	"fmt"
	"math"

	"chess_trainer/internal/domain/decision"
	"chess_trainer/internal/errors"
)

// AccuracyThresholds are inclusive upper bounds of centipawn loss per label.
// Anything above Mistake is a blunder.
type AccuracyThresholds struct {
	Excellent  decision.Centipawns `mapstructure:"ACCURACY_EXCELLENT_MAX_LOSS"`
	Good       decision.Centipawns `mapstructure:"ACCURACY_GOOD_MAX_LOSS"`
	Inaccuracy decision.Centipawns `mapstructure:"ACCURACY_INACCURACY_MAX_LOSS"`
	Mistake    decision.Centipawns `mapstructure:"ACCURACY_MISTAKE_MAX_LOSS"`
}

var DefaultAccuracyThresholds = AccuracyThresholds{
	Excellent:  10,
	Good:       50,
	Inaccuracy: 100,
	Mistake:    300,
}

func Classify(playedEval, bestEval decision.Centipawns, sideToMove decision.Color) (decision.AccuracyLabel, error) {
	return DefaultAccuracyThresholds.Classify(playedEval, bestEval, sideToMove)
}

// Classify grades a played move. Both evaluations are from White's point of
// view; the loss is measured from the mover's side and never negative.
func (t AccuracyThresholds) Classify(playedEval, bestEval decision.Centipawns, sideToMove decision.Color) (decision.AccuracyLabel, error) {
	if !playedEval.Valid() {
		return decision.AccuracyLabel{}, fmt.Errorf("%w: played eval %v", errors.ErrInvalidEvaluation, playedEval)
	}
	if !bestEval.Valid() {
		return decision.AccuracyLabel{}, fmt.Errorf("%w: best eval %v", errors.ErrInvalidEvaluation, bestEval)
	}

	loss := (bestEval - playedEval) * decision.Centipawns(sideToMove.Sign())
	if loss < 0 {
		loss = 0
	}

	return decision.AccuracyLabel{
		Quality:  t.Quality(loss),
		Loss:     loss,
		Accuracy: AccuracyPercent(loss),
	}, nil
}

// ClassifyMove grades a candidate of the set against its rank 0 move.
func (t AccuracyThresholds) ClassifyMove(set decision.CandidateSet, move string) (decision.AccuracyLabel, error) {
	best, err := set.Best()
	if err != nil {
		return decision.AccuracyLabel{}, err
	}
	played, ok := set.Find(move)
	if !ok {
		return decision.AccuracyLabel{}, fmt.Errorf("%w: %s", errors.ErrMoveNotInCandidates, move)
	}

	// set evaluations are from the mover's side, Classify wants White's
	side := set.Side()
	sign := decision.Centipawns(side.Sign())
	return t.Classify(played.Eval*sign, best.Eval*sign, side)
}

func (t AccuracyThresholds) Quality(loss decision.Centipawns) decision.Quality {
	switch {
	case loss <= t.Excellent:
		return decision.QualityExcellent
	case loss <= t.Good:
		return decision.QualityGood
	case loss <= t.Inaccuracy:
		return decision.QualityInaccuracy
	case loss <= t.Mistake:
		return decision.QualityMistake
	default:
		return decision.QualityBlunder
	}
}

// AccuracyPercent turns a loss into a 0..100 score, one point per 10 centipawns.
func AccuracyPercent(loss decision.Centipawns) float64 {
	return math.Max(0, 100-math.Abs(float64(loss))/10)
}

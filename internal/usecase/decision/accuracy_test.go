package decision

import (
	"math"
	"testing"

	"chess_trainer/internal/domain/decision"
	apperrors "chess_trainer/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_ThresholdEdges(t *testing.T) {
	cases := []struct {
		loss decision.Centipawns
		want decision.Quality
	}{
		{0, decision.QualityExcellent},
		{10, decision.QualityExcellent},
		{11, decision.QualityGood},
		{50, decision.QualityGood},
		{51, decision.QualityInaccuracy},
		{100, decision.QualityInaccuracy},
		{101, decision.QualityMistake},
		{300, decision.QualityMistake},
		{301, decision.QualityBlunder},
		{5000, decision.QualityBlunder},
	}
	for _, tc := range cases {
		label, err := Classify(200-tc.loss, 200, decision.White)
		require.NoError(t, err)
		assert.Equal(t, tc.want, label.Quality, "loss %v", tc.loss)
		assert.Equal(t, tc.loss, label.Loss)
	}
}

func TestClassify_BestMoveIsExcellent(t *testing.T) {
	for _, eval := range []decision.Centipawns{-900, -15, 0, 35, 4000} {
		for _, side := range []decision.Color{decision.White, decision.Black} {
			label, err := Classify(eval, eval, side)
			require.NoError(t, err)
			assert.Equal(t, decision.QualityExcellent, label.Quality)
			assert.Zero(t, label.Loss)
			assert.Equal(t, 100.0, label.Accuracy)
		}
	}
}

func TestClassify_BlackPerspective(t *testing.T) {
	// white-relative: black's best keeps white at -50, the played move at -10
	label, err := Classify(-10, -50, decision.Black)
	require.NoError(t, err)
	assert.Equal(t, decision.Centipawns(40), label.Loss)
	assert.Equal(t, decision.QualityGood, label.Quality)
}

func TestClassify_BetterThanBestHasNoLoss(t *testing.T) {
	label, err := Classify(80, 50, decision.White)
	require.NoError(t, err)
	assert.Zero(t, label.Loss)
	assert.Equal(t, decision.QualityExcellent, label.Quality)
}

func TestClassify_Scenario(t *testing.T) {
	label, err := Classify(10, 50, decision.White)
	require.NoError(t, err)
	assert.Equal(t, decision.Centipawns(40), label.Loss)
	assert.Equal(t, decision.QualityGood, label.Quality)
	assert.InDelta(t, 96.0, label.Accuracy, 1e-9)
}

func TestClassify_InvalidEvaluation(t *testing.T) {
	bad := []decision.Centipawns{
		decision.Centipawns(math.NaN()),
		decision.Centipawns(math.Inf(1)),
		decision.Centipawns(math.Inf(-1)),
		decision.MateScore + 1,
	}
	for _, eval := range bad {
		_, err := Classify(eval, 0, decision.White)
		assert.ErrorIs(t, err, apperrors.ErrInvalidEvaluation)
		_, err = Classify(0, eval, decision.White)
		assert.ErrorIs(t, err, apperrors.ErrInvalidEvaluation)
	}
}

func TestClassify_CustomThresholds(t *testing.T) {
	strict := AccuracyThresholds{Excellent: 5, Good: 20, Inaccuracy: 60, Mistake: 150}
	label, err := strict.Classify(0, 40, decision.White)
	require.NoError(t, err)
	assert.Equal(t, decision.QualityInaccuracy, label.Quality)
}

func TestClassifyMove_AgainstCandidates(t *testing.T) {
	set := threeMoveSet(t)

	label, err := DefaultAccuracyThresholds.ClassifyMove(set, "moveB")
	require.NoError(t, err)
	assert.Equal(t, decision.Centipawns(40), label.Loss)
	assert.Equal(t, decision.QualityGood, label.Quality)

	label, err = DefaultAccuracyThresholds.ClassifyMove(set, "moveA")
	require.NoError(t, err)
	assert.Equal(t, decision.QualityExcellent, label.Quality)
}

func TestClassifyMove_BlackToMove(t *testing.T) {
	// evals are from black's side here
	set := mustSet(t, decision.Black,
		decision.MoveCandidate{Move: "e5", Eval: 30},
		decision.MoveCandidate{Move: "f6", Eval: -140},
	)
	label, err := DefaultAccuracyThresholds.ClassifyMove(set, "f6")
	require.NoError(t, err)
	assert.Equal(t, decision.Centipawns(170), label.Loss)
	assert.Equal(t, decision.QualityMistake, label.Quality)
}

func TestClassifyMove_Errors(t *testing.T) {
	_, err := DefaultAccuracyThresholds.ClassifyMove(threeMoveSet(t), "moveZ")
	assert.ErrorIs(t, err, apperrors.ErrMoveNotInCandidates)

	_, err = DefaultAccuracyThresholds.ClassifyMove(decision.CandidateSet{}, "moveA")
	assert.ErrorIs(t, err, apperrors.ErrEmptyCandidateSet)
}

func TestAccuracyPercent(t *testing.T) {
	assert.Equal(t, 100.0, AccuracyPercent(0))
	assert.Equal(t, 70.0, AccuracyPercent(300))
	assert.Equal(t, 0.0, AccuracyPercent(2500))
}

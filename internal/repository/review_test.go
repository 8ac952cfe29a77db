package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chess_trainer/internal/domain/decision"
	"chess_trainer/internal/domain/review"
)

func TestSummarize(t *testing.T) {
	stats := Summarize([]review.Review{
		{Ply: 1, Label: decision.AccuracyLabel{Quality: decision.QualityExcellent, Accuracy: 100}},
		{Ply: 3, Label: decision.AccuracyLabel{Quality: decision.QualityBlunder, Loss: 900, Accuracy: 10}},
	})
	assert.Equal(t, 2, stats.Moves)
	assert.Equal(t, 1, stats.Blunders)
	assert.Equal(t, 55.0, stats.AverageAccuracy())

	assert.Zero(t, Summarize(nil).Moves)
}

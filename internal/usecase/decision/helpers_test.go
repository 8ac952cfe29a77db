package decision

import (
	"testing"

	"chess_trainer/internal/domain/decision"
	"github.com/stretchr/testify/require"
)

// fixedSource replays the given draws in order.
type fixedSource struct {
	draws []float64
	next  int
}

func (f *fixedSource) Float64() float64 {
	u := f.draws[f.next%len(f.draws)]
	f.next++
	return u
}

func mustSet(t *testing.T, side decision.Color, candidates ...decision.MoveCandidate) decision.CandidateSet {
	t.Helper()
	set, err := decision.NewCandidateSet(side, candidates)
	require.NoError(t, err)
	return set
}

func threeMoveSet(t *testing.T) decision.CandidateSet {
	return mustSet(t, decision.White,
		decision.MoveCandidate{Move: "moveA", Eval: 50},
		decision.MoveCandidate{Move: "moveB", Eval: 10},
		decision.MoveCandidate{Move: "moveC", Eval: -30},
	)
}

func sum(weights []float64) float64 {
	var total float64
	for _, w := range weights {
		total += w
	}
	return total
}

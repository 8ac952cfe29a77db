package decision

import (
	"fmt"
	"math"
)

// EvalText renders a candidate's evaluation for a human, always from White's
// point of view. side is the colour that plays the candidate.
func EvalText(candidate MoveCandidate, side Color) string {
	if candidate.MateIn != 0 {
		mate := candidate.MateIn * int(side.Sign())
		if mate > 0 {
			return fmt.Sprintf("Mate in %d", mate)
		}
		return fmt.Sprintf("Mate in %d (for Black)", -mate)
	}

	pawns := float64(candidate.Eval) * side.Sign() / 100
	switch {
	case math.Abs(pawns) < 0.1:
		return "Equal (0.00)"
	case pawns > 0:
		return fmt.Sprintf("White +%.2f", pawns)
	default:
		return fmt.Sprintf("Black +%.2f", -pawns)
	}
}

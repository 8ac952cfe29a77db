package decision

import (
	"fmt"
	"strings"
)

// MaterialHintGap is the piece-point lead at which a side is told to trade down.
const MaterialHintGap = 3

// TrainingHints turns an analysed position into study prompts: the tactics
// among the candidates, a material imbalance and what the phase asks for.
func TrainingHints(set CandidateSet, material ByColor, phase Phase) []string {
	var hints []string

	var motifs []string
	for _, c := range set.Candidates() {
		if c.Tactical {
			motifs = append(motifs, motif(c))
		}
	}
	if len(motifs) > 0 {
		hints = append(hints, "Tactical motifs present: "+strings.Join(motifs, ", "))
	}

	switch diff := material.White.Points() - material.Black.Points(); {
	case diff >= MaterialHintGap:
		hints = append(hints, "White has material advantage - simplify to endgame")
	case diff <= -MaterialHintGap:
		hints = append(hints, "Black has material advantage - avoid trades")
	}

	switch phase {
	case PhaseOpening:
		hints = append(hints, "Opening phase: Focus on development and center control")
	case PhaseMiddlegame:
		hints = append(hints, "Middlegame: Look for tactical opportunities and improve piece positions")
	default:
		hints = append(hints, "Endgame: Activate your king and create passed pawns")
	}
	return hints
}

func motif(c MoveCandidate) string {
	switch {
	case c.MateIn > 0:
		return fmt.Sprintf("%s (mate in %d)", c.Move, c.MateIn)
	case c.Check:
		return c.Move + " (check)"
	case c.Capture:
		return c.Move + " (capture)"
	default:
		return c.Move
	}
}

package decision

import "chess_trainer/internal/domain/decision"

// PhaseThresholds are the policy constants behind DetectPhase.
// Material is counted without pawns or kings.
type PhaseThresholds struct {
	OpeningMaxMove              int `mapstructure:"PHASE_OPENING_MAX_MOVE"`
	OpeningMinPieces            int `mapstructure:"PHASE_OPENING_MIN_PIECES"`
	EndgameMaxMaterial          int `mapstructure:"PHASE_ENDGAME_MAX_MATERIAL"`
	QueenlessEndgameMaxMaterial int `mapstructure:"PHASE_QUEENLESS_ENDGAME_MAX_MATERIAL"`
}

var DefaultPhaseThresholds = PhaseThresholds{
	OpeningMaxMove:              10,
	OpeningMinPieces:            3,
	EndgameMaxMaterial:          13,
	QueenlessEndgameMaxMaterial: 20,
}

func DetectPhase(material decision.ByColor, fullmoveNumber, queensOnBoard int) decision.Phase {
	return DefaultPhaseThresholds.Detect(material, fullmoveNumber, queensOnBoard)
}

// Detect checks the opening rule first, then the endgame rules.
func (t PhaseThresholds) Detect(material decision.ByColor, fullmoveNumber, queensOnBoard int) decision.Phase {
	if fullmoveNumber <= t.OpeningMaxMove &&
		material.White.Pieces() >= t.OpeningMinPieces &&
		material.Black.Pieces() >= t.OpeningMinPieces {
		return decision.PhaseOpening
	}

	total := material.Points()
	if total <= t.EndgameMaxMaterial {
		return decision.PhaseEndgame
	}
	if queensOnBoard == 0 && total <= t.QueenlessEndgameMaxMaterial {
		return decision.PhaseEndgame
	}
	return decision.PhaseMiddlegame
}

package decision

import (
	"testing"

	"chess_trainer/internal/domain/decision"
	"github.com/stretchr/testify/assert"
)

var fullArmy = decision.Material{Knights: 2, Bishops: 2, Rooks: 2, Queens: 1}

func TestDetectPhase_StartingPosition(t *testing.T) {
	material := decision.ByColor{White: fullArmy, Black: fullArmy}
	assert.Equal(t, decision.PhaseOpening, DetectPhase(material, 1, 2))
	assert.Equal(t, decision.PhaseOpening, DetectPhase(material, 10, 2))
}

func TestDetectPhase_OpeningEndsAfterMoveTen(t *testing.T) {
	material := decision.ByColor{White: fullArmy, Black: fullArmy}
	assert.Equal(t, decision.PhaseMiddlegame, DetectPhase(material, 11, 2))
}

func TestDetectPhase_EarlyButDepleted(t *testing.T) {
	material := decision.ByColor{
		White: decision.Material{Rooks: 1, Queens: 1},
		Black: fullArmy,
	}
	assert.Equal(t, decision.PhaseMiddlegame, DetectPhase(material, 6, 2))
}

func TestDetectPhase_RookEndgame(t *testing.T) {
	material := decision.ByColor{
		White: decision.Material{Rooks: 1},
		Black: decision.Material{Rooks: 1},
	}
	assert.Equal(t, decision.PhaseEndgame, DetectPhase(material, 40, 0))
}

func TestDetectPhase_MaterialBoundary(t *testing.T) {
	// 5 + 5 + 3 = 13 is still an endgame even with queens counted elsewhere
	material := decision.ByColor{
		White: decision.Material{Rooks: 1, Bishops: 1},
		Black: decision.Material{Rooks: 1},
	}
	assert.Equal(t, decision.PhaseEndgame, DetectPhase(material, 30, 1))

	material.Black.Knights = 1
	assert.Equal(t, decision.PhaseMiddlegame, DetectPhase(material, 30, 1))
}

func TestDetectPhase_QueenlessEndgame(t *testing.T) {
	material := decision.ByColor{
		White: decision.Material{Rooks: 1, Bishops: 1},
		Black: decision.Material{Rooks: 1, Knights: 1},
	}
	assert.Equal(t, decision.PhaseEndgame, DetectPhase(material, 30, 0))
}

func TestDetectPhase_QueensKeepMiddlegame(t *testing.T) {
	material := decision.ByColor{
		White: decision.Material{Queens: 1},
		Black: decision.Material{Queens: 1},
	}
	assert.Equal(t, decision.PhaseMiddlegame, DetectPhase(material, 30, 2))
}

func TestPhaseThresholds_Custom(t *testing.T) {
	th := DefaultPhaseThresholds
	th.OpeningMaxMove = 15
	material := decision.ByColor{White: fullArmy, Black: fullArmy}
	assert.Equal(t, decision.PhaseOpening, th.Detect(material, 14, 2))
	assert.Equal(t, decision.PhaseMiddlegame, DetectPhase(material, 14, 2))
}

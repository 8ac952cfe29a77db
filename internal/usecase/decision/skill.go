package decision

import (
	"math"

	"chess_trainer/internal/domain/decision"
)

// SkillCurve shapes how the non-best probability mass decays with rank:
// d[r] = exp(-r / (DecayBase + DecayStrength*strengthFactor)).
type SkillCurve struct {
	DecayBase     float64 `mapstructure:"SKILL_DECAY_BASE"`
	DecayStrength float64 `mapstructure:"SKILL_DECAY_STRENGTH"`
}

var DefaultSkillCurve = SkillCurve{
	DecayBase:     1,
	DecayStrength: 3,
}

func BaseDistribution(skill decision.SkillConfig, candidateCount int) []float64 {
	return DefaultSkillCurve.BaseDistribution(skill, candidateCount)
}

// BaseDistribution gives rank 0 the strength factor and spreads the rest over
// the weaker ranks with an exponential decay.
func (c SkillCurve) BaseDistribution(skill decision.SkillConfig, candidateCount int) []float64 {
	if candidateCount <= 0 {
		return nil
	}
	if candidateCount == 1 {
		return []float64{1}
	}

	sf := skill.Clamped().StrengthFactor()
	scale := c.DecayBase + c.DecayStrength*sf

	weights := make([]float64, candidateCount)
	weights[0] = sf

	var decaySum float64
	for r := 1; r < candidateCount; r++ {
		weights[r] = math.Exp(-float64(r) / scale)
		decaySum += weights[r]
	}
	for r := 1; r < candidateCount; r++ {
		weights[r] = (1 - sf) * weights[r] / decaySum
	}
	return weights
}

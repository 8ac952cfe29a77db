package decision

import (
	"fmt"
	"math"

	"chess_trainer/internal/domain/decision"
	"chess_trainer/internal/errors"
)

// Style is how a candidate reads to an aggressive or a cautious player.
type Style int

const (
	StyleNeutral Style = iota
	StyleAttacking
	StyleQuiet
)

// PersonalityCoefficients scale each trait's contribution to the log-weights.
type PersonalityCoefficients struct {
	TacticalBonus        float64             `mapstructure:"PERSONALITY_TACTICAL_BONUS"`
	QuietPenalty         float64             `mapstructure:"PERSONALITY_QUIET_PENALTY"`
	StyleBonus           float64             `mapstructure:"PERSONALITY_STYLE_BONUS"`
	AttackSwingThreshold decision.Centipawns `mapstructure:"PERSONALITY_ATTACK_SWING"`
}

var DefaultPersonalityCoefficients = PersonalityCoefficients{
	TacticalBonus:        2,
	QuietPenalty:         1,
	StyleBonus:           1.5,
	AttackSwingThreshold: 150,
}

func AdjustedWeights(base []float64, personality decision.PersonalityConfig, phase decision.Phase, set decision.CandidateSet) ([]float64, error) {
	return DefaultPersonalityCoefficients.AdjustedWeights(base, personality, phase, set)
}

// StyleOf classifies a candidate. Forcing moves and moves whose evaluation
// swings past the threshold over the root evaluation are attacking.
func (c PersonalityCoefficients) StyleOf(candidate decision.MoveCandidate, set decision.CandidateSet) Style {
	if candidate.Capture || candidate.Check {
		return StyleAttacking
	}
	if root, ok := set.RootEval(); ok && candidate.Eval-root >= c.AttackSwingThreshold {
		return StyleAttacking
	}
	if candidate.Quiet {
		return StyleQuiet
	}
	return StyleNeutral
}

// AdjustedWeights applies the personality on top of the skill distribution.
// Every trait adds an independent term to the log-weight of a candidate, so a
// trait held at the same value shifts nothing but the normalisation.
func (c PersonalityCoefficients) AdjustedWeights(base []float64, personality decision.PersonalityConfig, phase decision.Phase, set decision.CandidateSet) ([]float64, error) {
	if set.Len() == 0 {
		return nil, errors.ErrEmptyCandidateSet
	}
	if len(base) != set.Len() {
		return nil, fmt.Errorf("%w: %d weights for %d candidates", errors.ErrInvalidDistribution, len(base), set.Len())
	}
	if _, err := distributionTotal(base); err != nil {
		return nil, err
	}

	p := personality.Clamped()
	sharp := set.HasTactical()
	tacticalScale := p.TacticalAwareness * (1 - p.PositionalVsTactical)

	logw := make([]float64, len(base))
	for r, candidate := range set.Candidates() {
		lw := math.Log(base[r])

		if sharp {
			if candidate.Tactical {
				lw += c.TacticalBonus * tacticalScale
			} else {
				lw -= c.QuietPenalty * tacticalScale
			}
		}

		switch c.StyleOf(candidate, set) {
		case StyleAttacking:
			lw += c.StyleBonus * p.Aggression
		case StyleQuiet:
			lw += c.StyleBonus * (1 - p.Aggression)
		}

		logw[r] = lw
	}

	weights, err := softmax(logw)
	if err != nil {
		return nil, err
	}

	switch phase {
	case decision.PhaseEndgame:
		weights = scaleDeviation(weights, 1-p.EndgameSkill)
	case decision.PhaseOpening:
		weights = scaleDeviation(weights, 1-p.OpeningKnowledge)
	}

	if err := checkNormalised(weights); err != nil {
		return nil, err
	}
	return weights, nil
}

func softmax(logw []float64) ([]float64, error) {
	peak := math.Inf(-1)
	for _, lw := range logw {
		if math.IsNaN(lw) {
			return nil, fmt.Errorf("%w: NaN log-weight", errors.ErrInvalidDistribution)
		}
		if lw > peak {
			peak = lw
		}
	}
	if math.IsInf(peak, 0) {
		return nil, fmt.Errorf("%w: no finite log-weight", errors.ErrInvalidDistribution)
	}

	weights := make([]float64, len(logw))
	var sum float64
	for r, lw := range logw {
		weights[r] = math.Exp(lw - peak)
		sum += weights[r]
	}
	for r := range weights {
		weights[r] /= sum
	}
	return weights, nil
}

// scaleDeviation multiplies the probability mass off rank 0 by factor and
// hands the remainder to rank 0. factor 0 means always play the best move.
func scaleDeviation(weights []float64, factor float64) []float64 {
	var off float64
	for r := 1; r < len(weights); r++ {
		weights[r] *= factor
		off += weights[r]
	}
	weights[0] = 1 - off
	if weights[0] < 0 {
		weights[0] = 0
	}
	return weights
}

func checkNormalised(weights []float64) error {
	total, err := distributionTotal(weights)
	if err != nil {
		return err
	}
	if math.Abs(total-1) > WeightTolerance {
		return fmt.Errorf("%w: weights sum to %v", errors.ErrInvalidDistribution, total)
	}
	return nil
}

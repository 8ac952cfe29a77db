package decision

import (
	"chess_trainer/internal/domain/decision"
	"chess_trainer/internal/errors"
)

// Policy bundles every tunable constant of the decision core.
// The zero value is not useful; start from DefaultPolicy.
type Policy struct {
	Skill       SkillCurve              `mapstructure:",squash"`
	Personality PersonalityCoefficients `mapstructure:",squash"`
	Phase       PhaseThresholds         `mapstructure:",squash"`
	Accuracy    AccuracyThresholds      `mapstructure:",squash"`
}

func DefaultPolicy() Policy {
	return Policy{
		Skill:       DefaultSkillCurve,
		Personality: DefaultPersonalityCoefficients,
		Phase:       DefaultPhaseThresholds,
		Accuracy:    DefaultAccuracyThresholds,
	}
}

func Decide(set decision.CandidateSet, skill decision.SkillConfig, personality decision.PersonalityConfig, phase decision.Phase, rng RandomSource) (decision.SelectionResult, error) {
	return DefaultPolicy().Decide(set, skill, personality, phase, rng)
}

// Decide picks the bot's move for one position.
func (p Policy) Decide(set decision.CandidateSet, skill decision.SkillConfig, personality decision.PersonalityConfig, phase decision.Phase, rng RandomSource) (decision.SelectionResult, error) {
	if set.Len() == 0 {
		return decision.SelectionResult{}, errors.ErrEmptyCandidateSet
	}

	base := p.Skill.BaseDistribution(skill, set.Len())
	weights, err := p.Personality.AdjustedWeights(base, personality, phase, set)
	if err != nil {
		return decision.SelectionResult{}, err
	}

	rank, err := Select(weights, rng)
	if err != nil {
		return decision.SelectionResult{}, err
	}

	return decision.SelectionResult{
		Chosen:     set.At(rank),
		Best:       set.At(0),
		ChosenRank: rank,
		Weights:    weights,
	}, nil
}

func (p Policy) DetectPhase(material decision.ByColor, fullmoveNumber, queensOnBoard int) decision.Phase {
	return p.Phase.Detect(material, fullmoveNumber, queensOnBoard)
}

func (p Policy) Classify(playedEval, bestEval decision.Centipawns, sideToMove decision.Color) (decision.AccuracyLabel, error) {
	return p.Accuracy.Classify(playedEval, bestEval, sideToMove)
}

func (p Policy) ClassifyMove(set decision.CandidateSet, move string) (decision.AccuracyLabel, error) {
	return p.Accuracy.ClassifyMove(set, move)
}

package decisionrpc

import "chess_trainer/internal/domain/decision"

// SelectMoveRequest carries a raw candidate list; the server ranks it.
// Phase wins over the material fields when both are given.
type SelectMoveRequest struct {
	Side        decision.Color              `json:"side"`
	Candidates  []decision.MoveCandidate    `json:"candidates"`
	RootEval    *decision.Centipawns        `json:"root_eval,omitempty"`
	Skill       decision.SkillConfig        `json:"skill"`
	Personality *decision.PersonalityConfig `json:"personality,omitempty"`
	Phase       *decision.Phase             `json:"phase,omitempty"`
	Material    decision.ByColor            `json:"material"`
	Fullmove    int                         `json:"fullmove"`
	Queens      int                         `json:"queens"`
	Seed        *int64                      `json:"seed,omitempty"`
}

type SelectMoveResponse struct {
	Result   decision.SelectionResult `json:"result"`
	Phase    decision.Phase           `json:"phase"`
	Seed     int64                    `json:"seed"`
	EvalText string                   `json:"eval_text"`
}

// ClassifyMoveRequest takes both evaluations from White's point of view.
type ClassifyMoveRequest struct {
	PlayedEval decision.Centipawns `json:"played_eval"`
	BestEval   decision.Centipawns `json:"best_eval"`
	Side       decision.Color      `json:"side"`
}

type ClassifyMoveResponse struct {
	Label decision.AccuracyLabel `json:"label"`
}

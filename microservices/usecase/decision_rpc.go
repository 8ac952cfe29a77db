package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"chess_trainer/internal/domain/decision"
	decisionUC "chess_trainer/internal/usecase/decision"
	"chess_trainer/microservices/decisionrpc"
)

type DecisionUseCase struct {
	policy decisionUC.Policy
	log    *zap.SugaredLogger
	now    func() time.Time
	decisionrpc.UnimplementedDecisionServiceServer
}

func NewDecisionUseCase(policy decisionUC.Policy, log *zap.SugaredLogger) *DecisionUseCase {
	return &DecisionUseCase{
		policy: policy,
		log:    log,
		now:    time.Now,
	}
}

func (d *DecisionUseCase) SelectMove(ctx context.Context, in *decisionrpc.SelectMoveRequest) (*decisionrpc.SelectMoveResponse, error) {
	set, err := decision.NewCandidateSet(in.Side, in.Candidates)
	if err != nil {
		return nil, decisionrpc.StatusError(err)
	}
	if in.RootEval != nil {
		set = set.WithRootEval(*in.RootEval)
	}

	phase := d.policy.DetectPhase(in.Material, in.Fullmove, in.Queens)
	if in.Phase != nil {
		phase = *in.Phase
	}

	personality := decision.NeutralPersonality()
	if in.Personality != nil {
		personality = *in.Personality
	}

	seed := d.now().UnixNano()
	if in.Seed != nil {
		seed = *in.Seed
	}

	result, err := d.policy.Decide(set, in.Skill, personality, phase, decisionUC.NewSource(seed))
	if err != nil {
		d.log.Errorw("select move failed", "error", err)
		return nil, decisionrpc.StatusError(err)
	}

	d.log.Debugw("move selected", "move", result.Chosen.Move, "rank", result.ChosenRank, "phase", phase.String(), "seed", seed)
	return &decisionrpc.SelectMoveResponse{
		Result:   result,
		Phase:    phase,
		Seed:     seed,
		EvalText: decision.EvalText(result.Chosen, set.Side()),
	}, nil
}

func (d *DecisionUseCase) ClassifyMove(ctx context.Context, in *decisionrpc.ClassifyMoveRequest) (*decisionrpc.ClassifyMoveResponse, error) {
	label, err := d.policy.Classify(in.PlayedEval, in.BestEval, in.Side)
	if err != nil {
		return nil, decisionrpc.StatusError(err)
	}
	return &decisionrpc.ClassifyMoveResponse{Label: label}, nil
}

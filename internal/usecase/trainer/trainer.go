package trainer

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chess_trainer/internal/domain/analysis"
	"chess_trainer/internal/domain/decision"
	"chess_trainer/internal/domain/review"
	"chess_trainer/internal/errors"
	decisionUC "chess_trainer/internal/usecase/decision"
)

type AnalysisOracle interface {
	Analyse(ctx context.Context, pos analysis.Position) (decision.CandidateSet, error)
	EvaluateMove(ctx context.Context, pos analysis.Position, move string) (decision.MoveCandidate, error)
}

type AnalysisCache interface {
	Get(ctx context.Context, fen string, depth int) (decision.CandidateSet, error)
	Put(ctx context.Context, fen string, depth int, set decision.CandidateSet) error
}

type ReviewStore interface {
	SaveReview(ctx context.Context, rv review.Review) error
	GameReviews(ctx context.Context, gameID string) ([]review.Review, error)
	GameStats(ctx context.Context, gameID string) (decision.ReviewStats, error)
}

// @name BotMoveRequest
type BotMoveRequest struct {
	Position    analysis.Position          `json:"position"`
	Skill       decision.SkillConfig       `json:"skill"`
	Personality decision.PersonalityConfig `json:"personality"`
	Seed        *int64                     `json:"seed,omitempty"`
}

// @name BotMove
type BotMove struct {
	Result decision.SelectionResult `json:"result"`
	Phase  decision.Phase           `json:"phase"`
	Side   decision.Color           `json:"side"`
	Seed   int64                    `json:"seed"`
}

type TrainerUseCase struct {
	policy  decisionUC.Policy
	oracle  AnalysisOracle
	cache   AnalysisCache
	reviews ReviewStore
	depth   int
	log     *zap.SugaredLogger
	now     func() time.Time
}

func NewTrainerUseCase(policy decisionUC.Policy, oracle AnalysisOracle, cache AnalysisCache, reviews ReviewStore, depth int, log *zap.SugaredLogger) *TrainerUseCase {
	return &TrainerUseCase{
		policy:  policy,
		oracle:  oracle,
		cache:   cache,
		reviews: reviews,
		depth:   depth,
		log:     log,
		now:     time.Now,
	}
}

func (t *TrainerUseCase) Policy() decisionUC.Policy {
	return t.policy
}

// Candidates returns the oracle's ranking for a position, cached by FEN.
// Cache failures are logged and never fail the request.
func (t *TrainerUseCase) Candidates(ctx context.Context, pos analysis.Position) (decision.CandidateSet, error) {
	if t.cache != nil {
		set, err := t.cache.Get(ctx, pos.FEN, t.depth)
		if err == nil {
			return set, nil
		}
		if !stderrors.Is(err, errors.ErrAnalysisNotCached) {
			t.log.Warnw("analysis cache read failed", "fen", pos.FEN, "error", err)
		}
	}

	set, err := t.oracle.Analyse(ctx, pos)
	if err != nil {
		return decision.CandidateSet{}, fmt.Errorf("analyse %s: %w", pos.FEN, err)
	}

	if t.cache != nil {
		if err := t.cache.Put(ctx, pos.FEN, t.depth, set); err != nil {
			t.log.Warnw("analysis cache write failed", "fen", pos.FEN, "error", err)
		}
	}
	return set, nil
}

// BotMove picks the trainer's reply. A request without a seed gets a fresh
// one, which is echoed back so the decision can be replayed.
func (t *TrainerUseCase) BotMove(ctx context.Context, req BotMoveRequest) (BotMove, error) {
	set, err := t.Candidates(ctx, req.Position)
	if err != nil {
		return BotMove{}, err
	}

	phase := t.policy.DetectPhase(req.Position.Material, req.Position.Fullmove, req.Position.Queens)

	seed := t.now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	result, err := t.policy.Decide(set, req.Skill, req.Personality, phase, decisionUC.NewSource(seed))
	if err != nil {
		return BotMove{}, err
	}

	t.log.Infow("bot move chosen",
		"fen", req.Position.FEN,
		"rating", req.Skill.Clamped().Rating,
		"phase", phase.String(),
		"move", result.Chosen.Move,
		"rank", result.ChosenRank,
		"best", result.Best.Move,
		"seed", seed,
	)

	return BotMove{Result: result, Phase: phase, Side: set.Side(), Seed: seed}, nil
}

// @name Hints
type Hints struct {
	Phase decision.Phase `json:"phase"`
	Hints []string       `json:"hints"`
}

// Hints gives study prompts for a position from its analysis.
func (t *TrainerUseCase) Hints(ctx context.Context, pos analysis.Position) (Hints, error) {
	set, err := t.Candidates(ctx, pos)
	if err != nil {
		return Hints{}, err
	}
	phase := t.policy.DetectPhase(pos.Material, pos.Fullmove, pos.Queens)
	return Hints{Phase: phase, Hints: decision.TrainingHints(set, pos.Material, phase)}, nil
}

// ReviewMove grades a played move against the best candidate and archives
// the verdict. Moves outside the multi-PV list are scored with a restricted search.
func (t *TrainerUseCase) ReviewMove(ctx context.Context, req review.ReviewRequest) (review.Review, error) {
	set, err := t.Candidates(ctx, req.Position)
	if err != nil {
		return review.Review{}, err
	}
	best, err := set.Best()
	if err != nil {
		return review.Review{}, err
	}

	played, ok := set.Find(req.Move)
	if !ok {
		played, err = t.oracle.EvaluateMove(ctx, req.Position, req.Move)
		if err != nil {
			return review.Review{}, fmt.Errorf("evaluate %s: %w", req.Move, err)
		}
	}

	side := set.Side()
	sign := decision.Centipawns(side.Sign())
	label, err := t.policy.Classify(played.Eval*sign, best.Eval*sign, side)
	if err != nil {
		return review.Review{}, err
	}

	rv := review.Review{
		ID:         uuid.New().String(),
		GameID:     req.GameID,
		Ply:        req.Ply,
		FEN:        req.Position.FEN,
		Side:       side.String(),
		Move:       req.Move,
		BestMove:   best.Move,
		PlayedEval: played.Eval,
		BestEval:   best.Eval,
		Label:      label,
		CreatedAt:  t.now(),
	}

	if t.reviews != nil {
		if err := t.reviews.SaveReview(ctx, rv); err != nil {
			return review.Review{}, fmt.Errorf("save review: %w", err)
		}
	}

	t.log.Infow("move reviewed", "game", req.GameID, "ply", req.Ply, "move", req.Move, "quality", label.Quality.String(), "loss", float64(label.Loss))
	return rv, nil
}

func (t *TrainerUseCase) Classify(playedEval, bestEval decision.Centipawns, side decision.Color) (decision.AccuracyLabel, error) {
	return t.policy.Classify(playedEval, bestEval, side)
}

func (t *TrainerUseCase) GameReport(ctx context.Context, gameID string) (decision.ReviewStats, error) {
	if t.reviews == nil {
		return decision.ReviewStats{}, errors.ErrReviewNotFound
	}
	return t.reviews.GameStats(ctx, gameID)
}

func (t *TrainerUseCase) GameReviews(ctx context.Context, gameID string) ([]review.Review, error) {
	if t.reviews == nil {
		return nil, errors.ErrReviewNotFound
	}
	return t.reviews.GameReviews(ctx, gameID)
}

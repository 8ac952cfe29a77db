package openings

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"chess_trainer/internal/domain/decision"
	"chess_trainer/internal/domain/opening"
	"chess_trainer/internal/errors"
	decisionUC "chess_trainer/internal/usecase/decision"
)

type OpeningStore interface {
	SeedOpenings(ctx context.Context, lines []opening.Line) (int, error)
	ImportOpenings(ctx context.Context, path string) (int, error)
	Openings(ctx context.Context) ([]opening.Line, error)
	OpeningByName(ctx context.Context, name string) (opening.Line, error)
	Progress(ctx context.Context, userID string) (opening.Progress, error)
	SaveProgress(ctx context.Context, progress opening.Progress) error
}

// OpeningUseCase trains book lines. It keeps no session: callers send the
// moves played so far with every request.
type OpeningUseCase struct {
	store OpeningStore
	log   *zap.SugaredLogger
	now   func() time.Time
}

func NewOpeningUseCase(store OpeningStore, log *zap.SugaredLogger) *OpeningUseCase {
	return &OpeningUseCase{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// SeedDefaults stores the built-in book without touching lines already saved.
func (o *OpeningUseCase) SeedDefaults(ctx context.Context) (int, error) {
	n, err := o.store.SeedOpenings(ctx, opening.DefaultBook())
	if err != nil {
		return n, err
	}
	o.log.Infow("opening book seeded", "inserted", n)
	return n, nil
}

func (o *OpeningUseCase) ImportOpenings(ctx context.Context, path string) (int, error) {
	n, err := o.store.ImportOpenings(ctx, path)
	if err != nil {
		return n, err
	}
	o.log.Infow("openings imported", "path", path, "count", n)
	return n, nil
}

func (o *OpeningUseCase) Openings(ctx context.Context) ([]opening.Summary, error) {
	lines, err := o.store.Openings(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]opening.Summary, len(lines))
	for i, line := range lines {
		summaries[i] = line.Summary()
	}
	return summaries, nil
}

func (o *OpeningUseCase) Opening(ctx context.Context, name string) (opening.Line, error) {
	return o.store.OpeningByName(ctx, name)
}

func (o *OpeningUseCase) NextMove(ctx context.Context, req opening.LineRequest) (opening.Step, error) {
	line, err := o.store.OpeningByName(ctx, req.Name)
	if err != nil {
		return opening.Step{}, err
	}
	return line.Next(len(req.Played)), nil
}

// CheckMove grades the trainee's move and counts it towards their accuracy
// in that opening. Moves past the end of the line are not counted.
func (o *OpeningUseCase) CheckMove(ctx context.Context, req opening.CheckRequest) (opening.CheckResult, error) {
	line, err := o.store.OpeningByName(ctx, req.Name)
	if err != nil {
		return opening.CheckResult{}, err
	}

	result := line.Check(req.Played, req.Move)
	if result.Move == nil {
		return result, nil
	}

	progress, err := o.store.Progress(ctx, req.UserID)
	if err != nil {
		return opening.CheckResult{}, err
	}
	progress.RecordMove(line.Name, result.Correct)
	if err := o.store.SaveProgress(ctx, progress); err != nil {
		return opening.CheckResult{}, fmt.Errorf("save opening progress: %w", err)
	}
	o.log.Debugw("opening move checked", "user", req.UserID, "opening", line.Name, "ply", len(req.Played), "correct", result.Correct)
	return result, nil
}

func (o *OpeningUseCase) Hint(ctx context.Context, req opening.LineRequest) (string, error) {
	line, err := o.store.OpeningByName(ctx, req.Name)
	if err != nil {
		return "", err
	}
	rng := decisionUC.NewSource(o.now().UnixNano())
	return line.Hint(len(req.Played), rng.Intn), nil
}

// Skip reveals the book move the trainee is stuck on.
func (o *OpeningUseCase) Skip(ctx context.Context, req opening.LineRequest) (opening.Move, error) {
	line, err := o.store.OpeningByName(ctx, req.Name)
	if err != nil {
		return opening.Move{}, err
	}
	if len(req.Played) >= len(line.Moves) {
		return opening.Move{}, fmt.Errorf("%w: %s", errors.ErrLineComplete, line.Name)
	}
	return line.Moves[len(req.Played)], nil
}

// Practice sets up a random position from the line, at least two half-moves
// in and never past opening.MaxPracticeDepth.
func (o *OpeningUseCase) Practice(ctx context.Context, req opening.PracticeRequest) (opening.Practice, error) {
	line, err := o.store.OpeningByName(ctx, req.Name)
	if err != nil {
		return opening.Practice{}, err
	}

	deepest := min(len(line.Moves), opening.MaxPracticeDepth)
	depth := deepest
	if deepest > 2 {
		rng := decisionUC.NewSource(o.now().UnixNano())
		depth = 2 + rng.Intn(deepest-1)
	}

	progress, err := o.store.Progress(ctx, req.UserID)
	if err != nil {
		return opening.Practice{}, err
	}
	progress.PositionsStudied++
	if err := o.store.SaveProgress(ctx, progress); err != nil {
		return opening.Practice{}, fmt.Errorf("save opening progress: %w", err)
	}
	return line.Practice(depth), nil
}

func (o *OpeningUseCase) Statistics(ctx context.Context, userID string) (opening.Statistics, error) {
	progress, err := o.store.Progress(ctx, userID)
	if err != nil {
		return opening.Statistics{}, err
	}
	return progress.Statistics(), nil
}

// AddToRepertoire files a known opening under the side the trainee plays it with.
func (o *OpeningUseCase) AddToRepertoire(ctx context.Context, req opening.RepertoireRequest) ([]string, error) {
	line, err := o.store.OpeningByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	progress, err := o.store.Progress(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if progress.AddToRepertoire(line.Name, req.Side) {
		if err := o.store.SaveProgress(ctx, progress); err != nil {
			return nil, fmt.Errorf("save opening progress: %w", err)
		}
		o.log.Infow("repertoire updated", "user", req.UserID, "opening", line.Name, "color", req.Side)
	}
	return progress.RepertoireFor(req.Side), nil
}

func (o *OpeningUseCase) Repertoire(ctx context.Context, userID string, side decision.Color) ([]string, error) {
	progress, err := o.store.Progress(ctx, userID)
	if err != nil {
		return nil, err
	}
	return progress.RepertoireFor(side), nil
}

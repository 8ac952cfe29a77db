package puzzles

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"chess_trainer/internal/domain/puzzle"
	decisionUC "chess_trainer/internal/usecase/decision"
)

type PuzzleStore interface {
	ImportPuzzles(ctx context.Context, pathToPuzzles string) (int, error)
	PuzzleByID(ctx context.Context, puzzleID string) (puzzle.Puzzle, error)
	PuzzlesPage(ctx context.Context, userID string, level int, pageNum int) (*puzzle.Page, error)
	PuzzlesNearRating(ctx context.Context, rating, tolerance int) ([]puzzle.Puzzle, error)
	PuzzlesByTheme(ctx context.Context, theme string) ([]puzzle.Puzzle, error)
	Profile(ctx context.Context, userID string) (puzzle.Profile, error)
	SaveProfile(ctx context.Context, profile puzzle.Profile) error
}

type PuzzleUseCase struct {
	puzzleStore PuzzleStore
	tolerance   int
	log         *zap.SugaredLogger
	now         func() time.Time
}

func NewPuzzleUseCase(puzzleStore PuzzleStore, tolerance int, log *zap.SugaredLogger) *PuzzleUseCase {
	return &PuzzleUseCase{
		puzzleStore: puzzleStore,
		tolerance:   tolerance,
		log:         log,
		now:         time.Now,
	}
}

func (p *PuzzleUseCase) ImportPuzzles(ctx context.Context, path string) (int, error) {
	n, err := p.puzzleStore.ImportPuzzles(ctx, path)
	if err != nil {
		return n, err
	}
	p.log.Infow("puzzles imported", "path", path, "count", n)
	return n, nil
}

func (p *PuzzleUseCase) Page(ctx context.Context, userID string, level int, pageNum int) (*puzzle.Page, error) {
	return p.puzzleStore.PuzzlesPage(ctx, userID, level, pageNum)
}

// NextPuzzle picks a puzzle for the user. Without an explicit rating it aims
// at the profile's adaptive target. Solved puzzles are avoided while others remain.
func (p *PuzzleUseCase) NextPuzzle(ctx context.Context, userID string, rating *int) (puzzle.Puzzle, error) {
	profile, err := p.puzzleStore.Profile(ctx, userID)
	if err != nil {
		return puzzle.Puzzle{}, err
	}

	target := profile.TargetRating()
	if rating != nil {
		target = *rating
	}

	near, err := p.puzzleStore.PuzzlesNearRating(ctx, target, p.tolerance)
	if err != nil {
		return puzzle.Puzzle{}, fmt.Errorf("puzzles near %d: %w", target, err)
	}

	return p.choose(profile, near), nil
}

// ThemePuzzle picks a puzzle on one theme, whatever its rating.
func (p *PuzzleUseCase) ThemePuzzle(ctx context.Context, userID, theme string) (puzzle.Puzzle, error) {
	profile, err := p.puzzleStore.Profile(ctx, userID)
	if err != nil {
		return puzzle.Puzzle{}, err
	}

	themed, err := p.puzzleStore.PuzzlesByTheme(ctx, theme)
	if err != nil {
		return puzzle.Puzzle{}, err
	}
	return p.choose(profile, themed), nil
}

// choose prefers puzzles the profile has not solved yet.
func (p *PuzzleUseCase) choose(profile puzzle.Profile, candidates []puzzle.Puzzle) puzzle.Puzzle {
	fresh := make([]puzzle.Puzzle, 0, len(candidates))
	for _, pz := range candidates {
		if !profile.HasSolved(pz.ID) {
			fresh = append(fresh, pz)
		}
	}
	if len(fresh) == 0 {
		fresh = candidates
	}

	pick := p.pick(fresh)
	pick.Status = puzzle.StatusUnsolved
	if profile.HasSolved(pick.ID) {
		pick.Status = puzzle.StatusSolved
	}
	return pick
}

// pick draws from a source owned by this call; requests never share one.
func (p *PuzzleUseCase) pick(puzzles []puzzle.Puzzle) puzzle.Puzzle {
	rng := decisionUC.NewSource(p.now().UnixNano())
	return puzzles[rng.Intn(len(puzzles))]
}

// Attempt checks the line played so far. Finishing the solution counts as a
// solve; a wrong move only earns feedback.
func (p *PuzzleUseCase) Attempt(ctx context.Context, req puzzle.AttemptRequest) (puzzle.AttemptResult, error) {
	pz, err := p.puzzleStore.PuzzleByID(ctx, req.PuzzleID)
	if err != nil {
		return puzzle.AttemptResult{}, err
	}

	result := pz.Check(req.Line)
	if !result.Correct || !result.Complete {
		return result, nil
	}

	if err := p.record(ctx, req.UserID, pz, true); err != nil {
		return puzzle.AttemptResult{}, err
	}
	return result, nil
}

// Skip gives up on a puzzle, which counts as a failed attempt.
func (p *PuzzleUseCase) Skip(ctx context.Context, userID, puzzleID string) (puzzle.Profile, error) {
	pz, err := p.puzzleStore.PuzzleByID(ctx, puzzleID)
	if err != nil {
		return puzzle.Profile{}, err
	}
	if err := p.record(ctx, userID, pz, false); err != nil {
		return puzzle.Profile{}, err
	}
	return p.puzzleStore.Profile(ctx, userID)
}

func (p *PuzzleUseCase) Profile(ctx context.Context, userID string) (puzzle.Profile, error) {
	return p.puzzleStore.Profile(ctx, userID)
}

func (p *PuzzleUseCase) Report(ctx context.Context, userID string) (puzzle.Report, error) {
	profile, err := p.puzzleStore.Profile(ctx, userID)
	if err != nil {
		return puzzle.Report{}, err
	}
	return profile.Report(), nil
}

func (p *PuzzleUseCase) record(ctx context.Context, userID string, pz puzzle.Puzzle, solved bool) error {
	profile, err := p.puzzleStore.Profile(ctx, userID)
	if err != nil {
		return err
	}
	before := profile.Rating
	profile.Record(pz, solved)
	if err := p.puzzleStore.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	p.log.Infow("puzzle attempt recorded", "user", userID, "puzzle", pz.ID, "solved", solved, "rating_before", before, "rating", profile.Rating)
	return nil
}

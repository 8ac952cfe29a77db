package puzzle

import (
	"strconv"

	"chess_trainer/internal/domain/decision"
)

const (
	StatusSolved   = "solved"
	StatusUnsolved = "unsolved"
)

// DefaultRating is where a new solver starts.
const DefaultRating = 1200

// Puzzle is a position with a forced line. Moves alternate between the
// solver and the opponent, starting with the solver.
type Puzzle struct {
	ID          string   `json:"id" bson:"_id" validate:"required,max=64"`
	FEN         string   `json:"fen" bson:"fen" validate:"required,max=100"`
	Moves       []string `json:"moves" bson:"moves" validate:"required,min=1,dive,required,max=16"`
	Theme       string   `json:"theme" bson:"theme"`
	Level       int      `json:"level" bson:"level" validate:"min=0,max=5"`
	Rating      int      `json:"rating" bson:"rating" validate:"min=0,max=3500"`
	Description string   `json:"description" bson:"description"`
	Hint        string   `json:"hint,omitempty" bson:"hint,omitempty"`
	Status      string   `json:"status,omitempty" bson:"-"`
}

type Page struct {
	PageNum          int      `json:"page_num"`
	TotalPages       int      `json:"total_pages"`
	PageWithUnsolved int      `json:"page_with_unsolved"`
	Puzzles          []Puzzle `json:"puzzles"`
}

// @name AttemptRequest
type AttemptRequest struct {
	UserID   string   `json:"user_id" validate:"required,max=64"`
	PuzzleID string   `json:"puzzle_id" validate:"required,max=64"`
	Line     []string `json:"line" validate:"required,min=1,dive,required,max=16"`
}

type AttemptResult struct {
	Correct  bool   `json:"correct"`
	Complete bool   `json:"complete"`
	Reply    string `json:"reply,omitempty"`
	Expected string `json:"expected,omitempty"`
	Feedback string `json:"feedback"`
	Hint     string `json:"hint,omitempty"`
}

// Check grades the line played from the puzzle position so far, both sides'
// moves included. The last move is the solver's; the opponent's answer from
// the solution comes back as Reply.
func (p Puzzle) Check(line []string) AttemptResult {
	if len(line) > len(p.Moves) {
		return AttemptResult{Complete: true, Feedback: "Puzzle already completed"}
	}
	for i, move := range line {
		if move != p.Moves[i] {
			return AttemptResult{
				Expected: p.Moves[i],
				Feedback: "Not quite right. Expected: " + p.Moves[i],
				Hint:     p.HintText(),
			}
		}
	}

	if len(line) >= len(p.Moves) {
		return AttemptResult{Correct: true, Complete: true, Feedback: "Excellent! Puzzle solved correctly!"}
	}

	result := AttemptResult{Correct: true, Reply: p.Moves[len(line)], Feedback: "Correct! Continue with the solution..."}
	if len(line)+1 >= len(p.Moves) {
		result.Complete = true
		result.Feedback = "Excellent! Puzzle solved correctly!"
	}
	return result
}

func (p Puzzle) HintText() string {
	if p.Hint == "" {
		return "Try to find the most forcing move"
	}
	return p.Hint
}

type Tally struct {
	Solved    int `json:"solved" bson:"solved"`
	Attempted int `json:"attempted" bson:"attempted"`
}

func (t Tally) SuccessRate() float64 {
	if t.Attempted == 0 {
		return 0
	}
	return float64(t.Solved) / float64(t.Attempted)
}

// Profile tracks a solver's puzzle rating and history. Levels is keyed by the
// level number in decimal.
type Profile struct {
	UserID    string           `json:"user_id" bson:"_id"`
	Rating    int              `json:"rating" bson:"rating"`
	Solved    int              `json:"solved" bson:"solved"`
	Attempted int              `json:"attempted" bson:"attempted"`
	SolvedIDs []string         `json:"solved_ids" bson:"solved_ids"`
	Themes    map[string]Tally `json:"themes" bson:"themes"`
	Levels    map[string]Tally `json:"levels" bson:"levels"`
}

func NewProfile(userID string) Profile {
	return Profile{
		UserID:    userID,
		Rating:    DefaultRating,
		SolvedIDs: []string{},
		Themes:    map[string]Tally{},
		Levels:    map[string]Tally{},
	}
}

func (p Profile) SuccessRate() float64 {
	if p.Attempted == 0 {
		return 0
	}
	return float64(p.Solved) / float64(p.Attempted)
}

func (p Profile) HasSolved(puzzleID string) bool {
	for _, id := range p.SolvedIDs {
		if id == puzzleID {
			return true
		}
	}
	return false
}

// TargetRating nudges the next puzzle up for a solver who finds them easy and
// down for one who struggles.
func (p Profile) TargetRating() int {
	if p.Attempted == 0 {
		return p.Rating
	}
	switch rate := p.SuccessRate(); {
	case rate > 0.8:
		return p.Rating + 100
	case rate < 0.4:
		return p.Rating - 100
	default:
		return p.Rating
	}
}

// Record counts one finished attempt. Solving gains at least a point, more
// for a puzzle above the solver's rating; failing loses at least one, more
// for a puzzle below it. The rating never drops under decision.MinRating.
func (p *Profile) Record(pz Puzzle, solved bool) {
	p.Attempted++
	p.Themes = count(p.Themes, pz.Theme, solved)
	p.Levels = count(p.Levels, strconv.Itoa(pz.Level), solved)
	if solved {
		p.Solved++
		p.Rating += max(1, (pz.Rating-p.Rating)/50)
		if !p.HasSolved(pz.ID) {
			p.SolvedIDs = append(p.SolvedIDs, pz.ID)
		}
		return
	}
	p.Rating = max(decision.MinRating, p.Rating-max(1, (p.Rating-pz.Rating)/100))
}

func count(tallies map[string]Tally, key string, solved bool) map[string]Tally {
	if key == "" {
		return tallies
	}
	if tallies == nil {
		tallies = map[string]Tally{}
	}
	t := tallies[key]
	t.Attempted++
	if solved {
		t.Solved++
	}
	tallies[key] = t
	return tallies
}

const (
	StrengthStrong  = "Strong"
	StrengthAverage = "Average"
	StrengthWeak    = "Weak"
)

func Strength(successRate float64) string {
	switch {
	case successRate > 0.7:
		return StrengthStrong
	case successRate < 0.4:
		return StrengthWeak
	default:
		return StrengthAverage
	}
}

type CategoryReport struct {
	SuccessRate float64 `json:"success_rate"`
	Solved      int     `json:"solved"`
	Attempted   int     `json:"attempted"`
	Strength    string  `json:"strength"`
}

type Report struct {
	UserID      string                    `json:"user_id"`
	SuccessRate float64                   `json:"overall_success_rate"`
	Rating      int                       `json:"current_rating"`
	Solved      int                       `json:"puzzles_solved"`
	Attempted   int                       `json:"puzzles_attempted"`
	Themes      map[string]CategoryReport `json:"theme_analysis"`
	Levels      map[string]CategoryReport `json:"difficulty_analysis"`
}

// Report breaks the solver's results down by theme and by level.
func (p Profile) Report() Report {
	return Report{
		UserID:      p.UserID,
		SuccessRate: p.SuccessRate(),
		Rating:      p.Rating,
		Solved:      p.Solved,
		Attempted:   p.Attempted,
		Themes:      analyse(p.Themes),
		Levels:      analyse(p.Levels),
	}
}

func analyse(tallies map[string]Tally) map[string]CategoryReport {
	out := make(map[string]CategoryReport, len(tallies))
	for key, t := range tallies {
		if t.Attempted == 0 {
			continue
		}
		out[key] = CategoryReport{
			SuccessRate: t.SuccessRate(),
			Solved:      t.Solved,
			Attempted:   t.Attempted,
			Strength:    Strength(t.SuccessRate()),
		}
	}
	return out
}

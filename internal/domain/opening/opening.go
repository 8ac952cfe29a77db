package opening

import (
	"fmt"
	"strings"
)

const (
	StatusActive   = "active"
	StatusComplete = "complete"
)

// Move is one half-move of a line with the reasoning behind it. Moves are
// opaque identifiers, compared as strings.
type Move struct {
	Move         string   `json:"move" bson:"move" validate:"required,max=16"`
	SAN          string   `json:"san" bson:"san" validate:"required,max=16"`
	Explanation  string   `json:"explanation" bson:"explanation"`
	Frequency    float64  `json:"frequency" bson:"frequency" validate:"min=0,max=1"`
	SuccessRate  float64  `json:"success_rate" bson:"success_rate" validate:"min=0,max=1"`
	MainLine     bool     `json:"main_line" bson:"main_line"`
	Alternatives []string `json:"alternatives" bson:"alternatives"`
	Plans        []string `json:"typical_plans" bson:"typical_plans"`
}

// Line is a named opening, stored under its name.
type Line struct {
	Name           string   `json:"name" bson:"_id" validate:"required,max=64"`
	ECO            string   `json:"eco_code" bson:"eco_code" validate:"max=16"`
	Moves          []Move   `json:"moves" bson:"moves" validate:"required,min=1,dive"`
	Description    string   `json:"description" bson:"description"`
	PawnStructures []string `json:"typical_pawn_structures" bson:"typical_pawn_structures"`
	KeyIdeas       []string `json:"key_ideas" bson:"key_ideas"`
	FamousGames    []string `json:"famous_games" bson:"famous_games"`
}

type Summary struct {
	Name           string   `json:"name"`
	ECO            string   `json:"eco_code"`
	KeyIdeas       []string `json:"key_ideas"`
	PawnStructures []string `json:"typical_structures"`
}

func (l Line) Summary() Summary {
	return Summary{Name: l.Name, ECO: l.ECO, KeyIdeas: l.KeyIdeas, PawnStructures: l.PawnStructures}
}

// Step describes where a trainee stands after played half-moves.
type Step struct {
	Status    string   `json:"status"`
	Message   string   `json:"message,omitempty"`
	Move      *Move    `json:"move_info,omitempty"`
	Completed int      `json:"moves_completed"`
	Total     int      `json:"total_moves"`
	Progress  float64  `json:"progress"`
	Summary   *Summary `json:"summary,omitempty"`
}

func (l Line) Next(played int) Step {
	total := len(l.Moves)
	if played >= total {
		summary := l.Summary()
		return Step{
			Status:    StatusComplete,
			Message:   "Opening line completed!",
			Completed: total,
			Total:     total,
			Progress:  1,
			Summary:   &summary,
		}
	}

	move := l.Moves[played]
	return Step{
		Status:    StatusActive,
		Move:      &move,
		Completed: played,
		Total:     total,
		Progress:  float64(played) / float64(total),
	}
}

// CheckResult grades one move. Accepted means the move may stay on the
// board: the book move or one of its listed alternatives.
type CheckResult struct {
	Correct  bool   `json:"correct"`
	Accepted bool   `json:"accepted"`
	Complete bool   `json:"complete"`
	Expected string `json:"expected,omitempty"`
	Feedback string `json:"feedback"`
	Move     *Move  `json:"move_info,omitempty"`
}

// Check compares move with the book move that follows played. Only the
// count of played half-moves matters, so an accepted alternative keeps the
// trainee on the line.
func (l Line) Check(played []string, move string) CheckResult {
	if len(played) >= len(l.Moves) {
		return CheckResult{Complete: true, Feedback: "Opening line already completed"}
	}

	book := l.Moves[len(played)]
	if move == book.Move {
		result := CheckResult{
			Correct:  true,
			Accepted: true,
			Feedback: "Correct! " + book.Explanation,
			Move:     &book,
		}
		if len(played)+1 >= len(l.Moves) {
			result.Complete = true
			result.Feedback += "\n\nOpening completed! Key ideas: " + strings.Join(l.KeyIdeas, ", ")
		}
		return result
	}

	result := CheckResult{
		Expected: book.SAN,
		Feedback: fmt.Sprintf("Not the main line move. Expected: %s\nExplanation: %s\n", book.SAN, book.Explanation),
		Move:     &book,
	}
	if book.IsAlternative(move) {
		result.Accepted = true
		result.Feedback += "Your move is a reasonable alternative, but not the main line."
		return result
	}
	result.Feedback += "Alternative main moves: " + strings.Join(book.Alternatives[:min(3, len(book.Alternatives))], ", ")
	return result
}

func (m Move) IsAlternative(move string) bool {
	for _, alt := range m.Alternatives {
		if alt == move {
			return true
		}
	}
	return false
}

// Hint points at one of the typical plans of the next book move. pick gets
// the number of plans and returns the index to use.
func (l Line) Hint(played int, pick func(n int) int) string {
	if played >= len(l.Moves) {
		return "No hint available"
	}
	plans := l.Moves[played].Plans
	if len(plans) == 0 {
		return "Look for the most natural developing move"
	}
	return "Think about: " + plans[pick(len(plans))]
}

// Practice is a position part way into a line, given by the moves leading to it.
type Practice struct {
	Opening     string   `json:"opening_name"`
	Line        []string `json:"line"`
	MovesPlayed int      `json:"moves_played"`
	KeyIdeas    []string `json:"key_ideas"`
	Plans       []string `json:"typical_plans"`
}

// MaxPracticeDepth keeps practice positions inside the opening proper.
const MaxPracticeDepth = 8

func (l Line) Practice(depth int) Practice {
	depth = max(0, min(depth, len(l.Moves)))
	line := make([]string, depth)
	for i := range line {
		line[i] = l.Moves[i].Move
	}

	plans := []string{}
	if depth < len(l.Moves) {
		plans = l.Moves[depth].Plans
	}
	return Practice{
		Opening:     l.Name,
		Line:        line,
		MovesPlayed: depth,
		KeyIdeas:    l.KeyIdeas,
		Plans:       plans,
	}
}

// @name LineRequest
type LineRequest struct {
	Name   string   `json:"name" validate:"required,max=64"`
	Played []string `json:"played" validate:"max=64,dive,required,max=16"`
}

// @name CheckRequest
type CheckRequest struct {
	UserID string   `json:"user_id" validate:"required,max=64"`
	Name   string   `json:"name" validate:"required,max=64"`
	Played []string `json:"played" validate:"max=64,dive,required,max=16"`
	Move   string   `json:"move" validate:"required,max=16"`
}

// @name PracticeRequest
type PracticeRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
	Name   string `json:"name" validate:"required,max=64"`
}

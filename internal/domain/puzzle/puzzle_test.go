package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var backRank = Puzzle{
	ID:     "mate_in_2_001",
	FEN:    "6k1/5ppp/8/8/8/8/5PPP/R3K2R w K - 0 1",
	Moves:  []string{"a1a8", "g8h7", "a8h8"},
	Rating: 1400,
}

func TestCheck_FollowsSolution(t *testing.T) {
	res := backRank.Check([]string{"a1a8"})
	assert.True(t, res.Correct)
	assert.False(t, res.Complete)
	assert.Equal(t, "g8h7", res.Reply)

	res = backRank.Check([]string{"a1a8", "g8h7", "a8h8"})
	assert.True(t, res.Correct)
	assert.True(t, res.Complete)
	assert.Empty(t, res.Reply)
}

func TestCheck_WrongMove(t *testing.T) {
	res := backRank.Check([]string{"a1a8", "g8h7", "h1h8"})
	assert.False(t, res.Correct)
	assert.False(t, res.Complete)
	assert.Equal(t, "a8h8", res.Expected)
	assert.Equal(t, "Try to find the most forcing move", res.Hint)
}

func TestCheck_PastTheEnd(t *testing.T) {
	res := backRank.Check([]string{"a1a8", "g8h7", "a8h8", "h7h6"})
	assert.False(t, res.Correct)
	assert.True(t, res.Complete)
}

func TestCheck_SolutionEndingWithReply(t *testing.T) {
	p := Puzzle{Moves: []string{"c4f7", "e8f7"}, Hint: "sacrifice"}
	res := p.Check([]string{"c4f7"})
	assert.True(t, res.Correct)
	assert.True(t, res.Complete)
	assert.Equal(t, "e8f7", res.Reply)
}

func TestProfile_Record(t *testing.T) {
	p := NewProfile("u1")

	p.Record(backRank, true)
	assert.Equal(t, 1, p.Solved)
	assert.Equal(t, 1, p.Attempted)
	assert.Equal(t, 1204, p.Rating)
	assert.True(t, p.HasSolved(backRank.ID))

	p.Record(backRank, true)
	assert.Len(t, p.SolvedIDs, 1)

	easy := Puzzle{ID: "fork_001", Rating: 800}
	p.Record(easy, false)
	assert.Equal(t, 1203, p.Rating)
	assert.Equal(t, 3, p.Attempted)
}

func TestProfile_RatingFloor(t *testing.T) {
	p := Profile{Rating: 800}
	p.Record(Puzzle{Rating: 2200}, false)
	assert.Equal(t, 800, p.Rating)
}

func TestProfile_TargetRating(t *testing.T) {
	assert.Equal(t, DefaultRating, NewProfile("u").TargetRating())
	assert.Equal(t, 1300, Profile{Rating: 1200, Solved: 9, Attempted: 10}.TargetRating())
	assert.Equal(t, 1100, Profile{Rating: 1200, Solved: 1, Attempted: 10}.TargetRating())
	assert.Equal(t, 1200, Profile{Rating: 1200, Solved: 5, Attempted: 10}.TargetRating())
}

func TestProfile_RecordCountsThemeAndLevel(t *testing.T) {
	p := Profile{Rating: 1200}
	mate := Puzzle{ID: "m1", Theme: "mate_in_2", Level: 2, Rating: 1400}

	p.Record(mate, true)
	p.Record(mate, false)
	p.Record(Puzzle{ID: "x", Level: 2}, false)

	assert.Equal(t, Tally{Solved: 1, Attempted: 2}, p.Themes["mate_in_2"])
	assert.Equal(t, Tally{Solved: 1, Attempted: 3}, p.Levels["2"])
	assert.Len(t, p.Themes, 1)
}

func TestStrength(t *testing.T) {
	assert.Equal(t, StrengthStrong, Strength(0.71))
	assert.Equal(t, StrengthAverage, Strength(0.7))
	assert.Equal(t, StrengthAverage, Strength(0.4))
	assert.Equal(t, StrengthWeak, Strength(0.39))
}

func TestProfile_Report(t *testing.T) {
	p := NewProfile("u1")
	fork := Puzzle{ID: "f1", Theme: "fork", Level: 1, Rating: 800}
	pin := Puzzle{ID: "p1", Theme: "pin", Level: 1, Rating: 900}
	for _i := 0; _i < 3; _i++ {
		p.Record(fork, true)
	}
	p.Record(pin, false)
	p.Record(pin, false)

	report := p.Report()
	assert.Equal(t, "u1", report.UserID)
	assert.InDelta(t, 0.6, report.SuccessRate, 1e-9)
	assert.Equal(t, 3, report.Solved)
	assert.Equal(t, 5, report.Attempted)
	assert.Equal(t, StrengthStrong, report.Themes["fork"].Strength)
	assert.Equal(t, StrengthWeak, report.Themes["pin"].Strength)
	assert.Equal(t, CategoryReport{SuccessRate: 0.6, Solved: 3, Attempted: 5, Strength: StrengthAverage}, report.Levels["1"])

	empty := NewProfile("u2").Report()
	assert.Empty(t, empty.Themes)
	assert.Empty(t, empty.Levels)
}

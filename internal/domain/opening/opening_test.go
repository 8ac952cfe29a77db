package opening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chess_trainer/internal/domain/decision"
	"chess_trainer/internal/utils"
)

func italian(t *testing.T) Line {
	for _, line := range DefaultBook() {
		if line.Name == "Italian Game" {
			return line
		}
	}
	t.Fatal("Italian Game missing from the default book")
	return Line{}
}

func TestDefaultBook_Valid(t *testing.T) {
	book := DefaultBook()
	require.Len(t, book, 3)
	for _, line := range book {
		assert.NoError(t, utils.Validate(line), line.Name)
	}
}

func TestNext_Progress(t *testing.T) {
	line := italian(t)

	step := line.Next(2)
	assert.Equal(t, StatusActive, step.Status)
	require.NotNil(t, step.Move)
	assert.Equal(t, "Nf3", step.Move.SAN)
	assert.Equal(t, 2, step.Completed)
	assert.Equal(t, 6, step.Total)
	assert.InDelta(t, 1.0/3, step.Progress, 1e-9)

	step = line.Next(6)
	assert.Equal(t, StatusComplete, step.Status)
	assert.Nil(t, step.Move)
	assert.Equal(t, 1.0, step.Progress)
	require.NotNil(t, step.Summary)
	assert.Equal(t, "C50-C59", step.Summary.ECO)
}

func TestCheck_BookMove(t *testing.T) {
	res := italian(t).Check([]string{"e2e4", "e7e5"}, "g1f3")
	assert.True(t, res.Correct)
	assert.True(t, res.Accepted)
	assert.False(t, res.Complete)
	assert.Equal(t, "Correct! Develop knight and attack the e5 pawn", res.Feedback)
}

func TestCheck_LastMoveCompletesLine(t *testing.T) {
	played := []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4"}
	res := italian(t).Check(played, "f8e7")
	assert.True(t, res.Correct)
	assert.True(t, res.Complete)
	assert.Contains(t, res.Feedback, "Opening completed! Key ideas: Rapid development, Central control")
}

func TestCheck_Alternative(t *testing.T) {
	res := italian(t).Check([]string{"e2e4", "e7e5"}, "b1c3")
	assert.False(t, res.Correct)
	assert.True(t, res.Accepted)
	assert.Equal(t, "Nf3", res.Expected)
	assert.Contains(t, res.Feedback, "Not the main line move. Expected: Nf3")
	assert.Contains(t, res.Feedback, "reasonable alternative")
}

func TestCheck_WrongMove(t *testing.T) {
	res := italian(t).Check(nil, "a2a3")
	assert.False(t, res.Correct)
	assert.False(t, res.Accepted)
	assert.Equal(t, "e4", res.Expected)
	assert.Contains(t, res.Feedback, "Alternative main moves: d2d4, g1f3, c2c4")
}

func TestCheck_PastTheEnd(t *testing.T) {
	line := italian(t)
	res := line.Check(make([]string, len(line.Moves)), "e2e4")
	assert.True(t, res.Complete)
	assert.False(t, res.Correct)
	assert.Equal(t, "Opening line already completed", res.Feedback)
}

func TestHint(t *testing.T) {
	line := italian(t)
	last := func(n int) int { return n - 1 }

	assert.Equal(t, "Think about: King safety", line.Hint(0, last))
	assert.Equal(t, "No hint available", line.Hint(6, last))

	line.Moves[0].Plans = nil
	assert.Equal(t, "Look for the most natural developing move", line.Hint(0, last))
}

func TestPractice(t *testing.T) {
	line := italian(t)

	p := line.Practice(3)
	assert.Equal(t, []string{"e2e4", "e7e5", "g1f3"}, p.Line)
	assert.Equal(t, 3, p.MovesPlayed)
	assert.Equal(t, line.Moves[3].Plans, p.Plans)

	p = line.Practice(MaxPracticeDepth)
	assert.Len(t, p.Line, len(line.Moves))
	assert.Empty(t, p.Plans)
}

func TestMasteryLevel(t *testing.T) {
	tests := []struct {
		accuracy float64
		total    int
		want     string
	}{
		{1, 4, MasteryBeginner},
		{0.95, 20, MasteryMaster},
		{0.95, 19, MasteryAdvanced},
		{0.85, 15, MasteryAdvanced},
		{0.75, 10, MasteryIntermediate},
		{0.75, 9, MasteryLearning},
		{0.5, 30, MasteryLearning},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MasteryLevel(tt.accuracy, tt.total), "%v/%d", tt.accuracy, tt.total)
	}
}

func TestProgress_Statistics(t *testing.T) {
	p := NewProgress("u1")
	for _i := 0; _i < 4; _i++ {
		p.RecordMove("Italian Game", true)
	}
	p.RecordMove("Italian Game", false)
	p.RecordMove("Sicilian Defense", false)

	stats := p.Statistics()
	assert.Equal(t, 6, stats.MovesPracticed)
	assert.InDelta(t, 4.0/6, stats.Accuracy, 1e-9)

	scored := stats.Openings["Italian Game"]
	assert.Equal(t, 4, scored.Correct)
	assert.Equal(t, 5, scored.Total)
	assert.Equal(t, MasteryLearning, scored.Mastery)
	assert.Equal(t, MasteryBeginner, stats.Openings["Sicilian Defense"].Mastery)
}

func TestProgress_Repertoire(t *testing.T) {
	p := NewProgress("u1")
	assert.True(t, p.AddToRepertoire("Italian Game", decision.White))
	assert.False(t, p.AddToRepertoire("Italian Game", decision.White))
	assert.True(t, p.AddToRepertoire("Sicilian Defense", decision.Black))

	assert.Equal(t, []string{"Italian Game"}, p.RepertoireFor(decision.White))
	assert.Equal(t, []string{"Sicilian Defense"}, p.RepertoireFor(decision.Black))
	assert.Equal(t, []string{}, NewProgress("u2").RepertoireFor(decision.White))
}

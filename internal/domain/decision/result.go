package decision

import (
	"fmt"
	"strings"
)

// SelectionResult explains one bot decision. Weights is parallel to the candidate set.
type SelectionResult struct {
	Chosen     MoveCandidate `json:"chosen"`
	Best       MoveCandidate `json:"best"`
	ChosenRank int           `json:"chosen_rank"`
	Weights    []float64     `json:"weights"`
}

type Quality int

const (
	QualityExcellent Quality = iota
	QualityGood
	QualityInaccuracy
	QualityMistake
	QualityBlunder
)

var qualityNames = [...]string{"excellent", "good", "inaccuracy", "mistake", "blunder"}

func (q Quality) String() string {
	if q < 0 || int(q) >= len(qualityNames) {
		return fmt.Sprintf("quality(%d)", int(q))
	}
	return qualityNames[q]
}

func (q Quality) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

func (q *Quality) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for i, n := range qualityNames {
		if n == name {
			*q = Quality(i)
			return nil
		}
	}
	return fmt.Errorf("unknown quality %q", string(text))
}

// AccuracyLabel is the verdict on one played move.
// Accuracy is a 0..100 score derived from the loss.
type AccuracyLabel struct {
	Quality  Quality    `json:"quality" bson:"quality"`
	Loss     Centipawns `json:"loss" bson:"loss"`
	Accuracy float64    `json:"accuracy" bson:"accuracy"`
}

// ReviewStats aggregates labels over a game or a training session.
type ReviewStats struct {
	Moves        int     `json:"moves" bson:"moves"`
	AccuracySum  float64 `json:"accuracy_sum" bson:"accuracy_sum"`
	Excellent    int     `json:"excellent" bson:"excellent"`
	Good         int     `json:"good" bson:"good"`
	Inaccuracies int     `json:"inaccuracies" bson:"inaccuracies"`
	Mistakes     int     `json:"mistakes" bson:"mistakes"`
	Blunders     int     `json:"blunders" bson:"blunders"`
}

func (s *ReviewStats) Add(label AccuracyLabel) {
	s.Moves++
	s.AccuracySum += label.Accuracy
	switch label.Quality {
	case QualityExcellent:
		s.Excellent++
	case QualityGood:
		s.Good++
	case QualityInaccuracy:
		s.Inaccuracies++
	case QualityMistake:
		s.Mistakes++
	case QualityBlunder:
		s.Blunders++
	}
}

func (s ReviewStats) AverageAccuracy() float64 {
	if s.Moves == 0 {
		return 0
	}
	return s.AccuracySum / float64(s.Moves)
}

package opening

import "chess_trainer/internal/domain/decision"

const (
	MasteryBeginner     = "Beginner"
	MasteryLearning     = "Learning"
	MasteryIntermediate = "Intermediate"
	MasteryAdvanced     = "Advanced"
	MasteryMaster       = "Master"
)

type Score struct {
	Correct int `json:"correct" bson:"correct"`
	Total   int `json:"total" bson:"total"`
}

func (s Score) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// Progress is a trainee's opening history. Repertoire is keyed by the side
// the openings are played with.
type Progress struct {
	UserID           string              `json:"user_id" bson:"_id"`
	PositionsStudied int                 `json:"positions_studied" bson:"positions_studied"`
	MovesPracticed   int                 `json:"moves_practiced" bson:"moves_practiced"`
	Scores           map[string]Score    `json:"opening_scores" bson:"opening_scores"`
	Repertoire       map[string][]string `json:"repertoire" bson:"repertoire"`
}

func NewProgress(userID string) Progress {
	return Progress{
		UserID:     userID,
		Scores:     map[string]Score{},
		Repertoire: map[string][]string{},
	}
}

func (p *Progress) RecordMove(opening string, correct bool) {
	if p.Scores == nil {
		p.Scores = map[string]Score{}
	}
	p.MovesPracticed++
	score := p.Scores[opening]
	score.Total++
	if correct {
		score.Correct++
	}
	p.Scores[opening] = score
}

// AddToRepertoire reports whether name was new for that side.
func (p *Progress) AddToRepertoire(name string, side decision.Color) bool {
	if p.Repertoire == nil {
		p.Repertoire = map[string][]string{}
	}
	key := side.String()
	for _, known := range p.Repertoire[key] {
		if known == name {
			return false
		}
	}
	p.Repertoire[key] = append(p.Repertoire[key], name)
	return true
}

func (p Progress) RepertoireFor(side decision.Color) []string {
	names := p.Repertoire[side.String()]
	if names == nil {
		return []string{}
	}
	return names
}

type OpeningStats struct {
	Accuracy float64 `json:"accuracy"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Mastery  string  `json:"mastery_level"`
}

type Statistics struct {
	PositionsStudied int                     `json:"positions_studied"`
	MovesPracticed   int                     `json:"moves_practiced"`
	Accuracy         float64                 `json:"accuracy"`
	Openings         map[string]OpeningStats `json:"opening_breakdown"`
}

func (p Progress) Statistics() Statistics {
	stats := Statistics{
		PositionsStudied: p.PositionsStudied,
		MovesPracticed:   p.MovesPracticed,
		Openings:         make(map[string]OpeningStats, len(p.Scores)),
	}

	var overall Score
	for name, score := range p.Scores {
		overall.Correct += score.Correct
		overall.Total += score.Total
		stats.Openings[name] = OpeningStats{
			Accuracy: score.Accuracy(),
			Correct:  score.Correct,
			Total:    score.Total,
			Mastery:  MasteryLevel(score.Accuracy(), score.Total),
		}
	}
	stats.Accuracy = overall.Accuracy()
	return stats
}

// MasteryLevel needs both accuracy and volume: a handful of lucky moves is
// still a beginner.
func MasteryLevel(accuracy float64, total int) string {
	switch {
	case total < 5:
		return MasteryBeginner
	case accuracy >= 0.9 && total >= 20:
		return MasteryMaster
	case accuracy >= 0.8 && total >= 15:
		return MasteryAdvanced
	case accuracy >= 0.7 && total >= 10:
		return MasteryIntermediate
	default:
		return MasteryLearning
	}
}

// @name RepertoireRequest
type RepertoireRequest struct {
	UserID string         `json:"user_id" validate:"required,max=64"`
	Name   string         `json:"name" validate:"required,max=64"`
	Side   decision.Color `json:"color"`
}

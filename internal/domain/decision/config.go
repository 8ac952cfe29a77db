package decision

import (
	"fmt"
	"math"
	"strings"
)

const (
	MinRating = 800
	MaxRating = 2500
)

// SkillConfig is the target playing strength. Out of range ratings are
// clamped, never rejected: the value comes straight from a user slider.
type SkillConfig struct {
	Rating int `json:"rating" bson:"rating"`
}

func (s SkillConfig) Clamped() SkillConfig {
	switch {
	case s.Rating < MinRating:
		s.Rating = MinRating
	case s.Rating > MaxRating:
		s.Rating = MaxRating
	}
	return s
}

// StrengthFactor maps the rating onto [0, 1].
func (s SkillConfig) StrengthFactor() float64 {
	sf := float64(s.Rating-MinRating) / float64(MaxRating-MinRating)
	return clampUnit(sf)
}

// NeutralTrait is the value at which a trait has no directional preference.
const NeutralTrait = 0.5

// PersonalityConfig holds five independent traits in [0, 1].
// PositionalVsTactical is 0 for a purely tactical player and 1 for a purely positional one.
type PersonalityConfig struct {
	Aggression           float64 `json:"aggression" bson:"aggression"`
	PositionalVsTactical float64 `json:"positional_vs_tactical" bson:"positional_vs_tactical"`
	TacticalAwareness    float64 `json:"tactical_awareness" bson:"tactical_awareness"`
	EndgameSkill         float64 `json:"endgame_skill" bson:"endgame_skill"`
	OpeningKnowledge     float64 `json:"opening_knowledge" bson:"opening_knowledge"`
}

func NeutralPersonality() PersonalityConfig {
	return PersonalityConfig{
		Aggression:           NeutralTrait,
		PositionalVsTactical: NeutralTrait,
		TacticalAwareness:    NeutralTrait,
		EndgameSkill:         NeutralTrait,
		OpeningKnowledge:     NeutralTrait,
	}
}

// Clamped pulls every trait into [0, 1]. NaN becomes neutral.
func (p PersonalityConfig) Clamped() PersonalityConfig {
	return PersonalityConfig{
		Aggression:           clampTrait(p.Aggression),
		PositionalVsTactical: clampTrait(p.PositionalVsTactical),
		TacticalAwareness:    clampTrait(p.TacticalAwareness),
		EndgameSkill:         clampTrait(p.EndgameSkill),
		OpeningKnowledge:     clampTrait(p.OpeningKnowledge),
	}
}

func clampTrait(v float64) float64 {
	if math.IsNaN(v) {
		return NeutralTrait
	}
	return clampUnit(v)
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

type Phase int

const (
	PhaseOpening Phase = iota
	PhaseMiddlegame
	PhaseEndgame
)

func (p Phase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseEndgame:
		return "endgame"
	default:
		return "middlegame"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "opening":
		*p = PhaseOpening
	case "middlegame":
		*p = PhaseMiddlegame
	case "endgame":
		*p = PhaseEndgame
	default:
		return fmt.Errorf("unknown phase %q", string(text))
	}
	return nil
}

// Standard piece values. Pawns and kings do not count towards phase material.
const (
	KnightPoints = 3
	BishopPoints = 3
	RookPoints   = 5
	QueenPoints  = 9
)

// Material counts one side's non-pawn, non-king pieces.
type Material struct {
	Knights int `json:"knights" bson:"knights"`
	Bishops int `json:"bishops" bson:"bishops"`
	Rooks   int `json:"rooks" bson:"rooks"`
	Queens  int `json:"queens" bson:"queens"`
}

func (m Material) Points() int {
	return m.Knights*KnightPoints + m.Bishops*BishopPoints + m.Rooks*RookPoints + m.Queens*QueenPoints
}

// Pieces is the number of minor and major pieces.
func (m Material) Pieces() int {
	return m.Knights + m.Bishops + m.Rooks + m.Queens
}

type ByColor struct {
	White Material `json:"white" bson:"white"`
	Black Material `json:"black" bson:"black"`
}

func (b ByColor) Points() int {
	return b.White.Points() + b.Black.Points()
}

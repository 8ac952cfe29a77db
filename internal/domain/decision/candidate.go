package decision

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"chess_trainer/internal/errors"
)

// Centipawns is an evaluation in hundredths of a pawn.
type Centipawns float64

// MateScore is the magnitude used for forced mates; no regular evaluation may exceed it.
const MateScore Centipawns = 100000

// MateToCentipawns converts "mate in n" (negative when the side to move gets mated)
// into a finite evaluation that still orders shorter mates first.
func MateToCentipawns(mateIn int) Centipawns {
	switch {
	case mateIn > 0:
		return MateScore - Centipawns(mateIn)
	case mateIn < 0:
		return -MateScore - Centipawns(mateIn)
	default:
		return 0
	}
}

// maxMateDistance bounds the n of a mate score, so regular evaluations close
// to MateScore are not mistaken for mates.
const maxMateDistance = 500

// MateDistance recovers n from MateToCentipawns(n). It is 0 for regular evaluations.
func (c Centipawns) MateDistance() int {
	switch {
	case c > MateScore-maxMateDistance && c < MateScore:
		return int(MateScore - c)
	case c < -MateScore+maxMateDistance && c > -MateScore:
		return int(-MateScore - c)
	}
	return 0
}

// Valid reports whether the evaluation is a finite number inside the mate bounds.
func (c Centipawns) Valid() bool {
	f := float64(c)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return math.Abs(f) <= float64(MateScore)
}

type Color int

const (
	White Color = iota
	Black
)

// Sign is +1 for White and -1 for Black.
func (c Color) Sign() float64 {
	if c == Black {
		return -1
	}
	return 1
}

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "w", "white":
		return White, nil
	case "b", "black":
		return Black, nil
	}
	return White, fmt.Errorf("%w: %q", errors.ErrInvalidColor, s)
}

// MoveCandidate is one analysed move. Eval is from the side to move's point of view.
type MoveCandidate struct {
	Move     string     `json:"move" bson:"move"`
	PV       []string   `json:"pv,omitempty" bson:"pv,omitempty"`
	Eval     Centipawns `json:"eval" bson:"eval"`
	MateIn   int        `json:"mate_in,omitempty" bson:"mate_in,omitempty"`
	Rank     int        `json:"rank" bson:"rank"`
	Tactical bool       `json:"tactical,omitempty" bson:"tactical,omitempty"`
	Capture  bool       `json:"capture,omitempty" bson:"capture,omitempty"`
	Check    bool       `json:"check,omitempty" bson:"check,omitempty"`
	Quiet    bool       `json:"quiet,omitempty" bson:"quiet,omitempty"`
}

func (m MoveCandidate) clone() MoveCandidate {
	if m.PV != nil {
		m.PV = append([]string(nil), m.PV...)
	}
	return m
}

// CandidateSet is the ranked, immutable list of candidates for one position.
// The zero value is empty and rejected by every operation that needs a move.
type CandidateSet struct {
	side       Color
	rootEval   Centipawns
	hasRoot    bool
	candidates []MoveCandidate
}

// NewCandidateSet copies the candidates, orders them by evaluation (stable, so
// the oracle's order breaks ties) and assigns contiguous ranks from 0.
func NewCandidateSet(side Color, candidates []MoveCandidate) (CandidateSet, error) {
	if len(candidates) == 0 {
		return CandidateSet{}, errors.ErrEmptyCandidateSet
	}

	ranked := make([]MoveCandidate, len(candidates))
	for i, c := range candidates {
		if !c.Eval.Valid() {
			return CandidateSet{}, fmt.Errorf("%w: candidate %q has eval %v", errors.ErrInvalidEvaluation, c.Move, c.Eval)
		}
		ranked[i] = c.clone()
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Eval > ranked[j].Eval
	})
	for i := range ranked {
		ranked[i].Rank = i
	}

	return CandidateSet{side: side, candidates: ranked}, nil
}

// WithRootEval returns a copy carrying the static evaluation of the position
// before any candidate is played, used to detect attacking swings.
func (s CandidateSet) WithRootEval(eval Centipawns) CandidateSet {
	s.rootEval = eval
	s.hasRoot = true
	return s
}

func (s CandidateSet) Len() int { return len(s.candidates) }

func (s CandidateSet) Side() Color { return s.side }

func (s CandidateSet) RootEval() (Centipawns, bool) { return s.rootEval, s.hasRoot }

// At returns the candidate at the given rank.
func (s CandidateSet) At(rank int) MoveCandidate {
	return s.candidates[rank].clone()
}

// Best returns the rank 0 candidate.
func (s CandidateSet) Best() (MoveCandidate, error) {
	if len(s.candidates) == 0 {
		return MoveCandidate{}, errors.ErrEmptyCandidateSet
	}
	return s.At(0), nil
}

// Find looks up a candidate by its move identifier.
func (s CandidateSet) Find(move string) (MoveCandidate, bool) {
	for _, c := range s.candidates {
		if c.Move == move {
			return c.clone(), true
		}
	}
	return MoveCandidate{}, false
}

func (s CandidateSet) Candidates() []MoveCandidate {
	out := make([]MoveCandidate, len(s.candidates))
	for i, c := range s.candidates {
		out[i] = c.clone()
	}
	return out
}

// HasTactical reports whether any candidate carries a tactical motif.
func (s CandidateSet) HasTactical() bool {
	for _, c := range s.candidates {
		if c.Tactical {
			return true
		}
	}
	return false
}

type candidateSetJSON struct {
	Side       Color           `json:"side"`
	RootEval   *Centipawns     `json:"root_eval,omitempty"`
	Candidates []MoveCandidate `json:"candidates"`
}

func (s CandidateSet) MarshalJSON() ([]byte, error) {
	wire := candidateSetJSON{Side: s.side, Candidates: s.candidates}
	if s.hasRoot {
		root := s.rootEval
		wire.RootEval = &root
	}
	return json.Marshal(wire)
}

func (s *CandidateSet) UnmarshalJSON(data []byte) error {
	var wire candidateSetJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	set, err := NewCandidateSet(wire.Side, wire.Candidates)
	if err != nil {
		return err
	}
	if wire.RootEval != nil {
		set = set.WithRootEval(*wire.RootEval)
	}
	*s = set
	return nil
}

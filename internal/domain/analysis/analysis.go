package analysis

import (
	"fmt"

	"chess_trainer/internal/domain/decision"
)

// Position is everything the service knows about the board it is asked about.
// Legality and material come from the client's rules engine.
type Position struct {
	ID       string           `json:"position_id,omitempty" validate:"omitempty,max=128"`
	FEN      string           `json:"fen" validate:"required,max=100"`
	Side     decision.Color   `json:"side"`
	Fullmove int              `json:"fullmove" validate:"min=1"`
	Material decision.ByColor `json:"material"`
	Queens   int              `json:"queens" validate:"min=0,max=18"`
}

// OracleRequest is sent to the analysis service.
type OracleRequest struct {
	ID          string   `json:"id"`
	FEN         string   `json:"fen"`
	MultiPV     int      `json:"multipv"`
	Depth       int      `json:"depth"`
	SearchMoves []string `json:"search_moves,omitempty"`
}

// OracleResponse is the decoded multi-PV answer. Scores are from the side to move.
type OracleResponse struct {
	ID         string       `json:"id"`
	SideToMove string       `json:"side_to_move"`
	Depth      int          `json:"depth"`
	StaticEval *int         `json:"static_eval,omitempty"`
	Lines      []OracleLine `json:"lines"`
	Error      string       `json:"error,omitempty"`
}

// OracleLine is one principal variation. Exactly one of Centipawns and Mate is set.
type OracleLine struct {
	MultiPV    int      `json:"multipv"`
	Move       string   `json:"move"`
	PV         []string `json:"pv"`
	Centipawns *int     `json:"cp,omitempty"`
	Mate       *int     `json:"mate,omitempty"`
	Tactical   bool     `json:"tactical,omitempty"`
	Capture    bool     `json:"capture,omitempty"`
	Check      bool     `json:"check,omitempty"`
	Quiet      bool     `json:"quiet,omitempty"`
}

func (l OracleLine) Eval() (decision.Centipawns, error) {
	switch {
	case l.Mate != nil:
		return decision.MateToCentipawns(*l.Mate), nil
	case l.Centipawns != nil:
		return decision.Centipawns(*l.Centipawns), nil
	}
	return 0, fmt.Errorf("line %q has neither cp nor mate", l.Move)
}

func (l OracleLine) Candidate() (decision.MoveCandidate, error) {
	eval, err := l.Eval()
	if err != nil {
		return decision.MoveCandidate{}, err
	}
	move := l.Move
	if move == "" && len(l.PV) > 0 {
		move = l.PV[0]
	}
	mateIn := 0
	if l.Mate != nil {
		mateIn = *l.Mate
	}
	return decision.MoveCandidate{
		Move:     move,
		PV:       l.PV,
		Eval:     eval,
		MateIn:   mateIn,
		Tactical: l.Tactical,
		Capture:  l.Capture,
		Check:    l.Check,
		Quiet:    l.Quiet,
	}, nil
}

// CandidateSet converts the oracle answer. Lines without a move are skipped.
func (r OracleResponse) CandidateSet(fallbackSide decision.Color) (decision.CandidateSet, error) {
	side := fallbackSide
	if r.SideToMove != "" {
		parsed, err := decision.ParseColor(r.SideToMove)
		if err != nil {
			return decision.CandidateSet{}, err
		}
		side = parsed
	}

	candidates := make([]decision.MoveCandidate, 0, len(r.Lines))
	for _, line := range r.Lines {
		if line.Move == "" && len(line.PV) == 0 {
			continue
		}
		c, err := line.Candidate()
		if err != nil {
			return decision.CandidateSet{}, err
		}
		candidates = append(candidates, c)
	}

	set, err := decision.NewCandidateSet(side, candidates)
	if err != nil {
		return decision.CandidateSet{}, err
	}
	if r.StaticEval != nil {
		set = set.WithRootEval(decision.Centipawns(*r.StaticEval))
	}
	return set, nil
}

package errors

import "errors"

var (
	ErrEmptyCandidateSet   = errors.New("candidate set is empty")
	ErrInvalidDistribution = errors.New("invalid weight distribution")
	ErrInvalidEvaluation   = errors.New("invalid evaluation")
	ErrMoveNotInCandidates = errors.New("move is not among the analysed candidates")
	ErrInvalidColor        = errors.New("unknown side to move")
	ErrOracleUnavailable   = errors.New("analysis oracle unavailable")
	ErrAnalysisNotCached   = errors.New("analysis not cached")
	ErrReviewNotFound      = errors.New("no reviews found for game")
	ErrPuzzleNotFound      = errors.New("puzzle not found")
	ErrInvalidPage         = errors.New("invalid page")
	ErrOpeningNotFound     = errors.New("opening not found")
	ErrLineComplete        = errors.New("opening line already completed")
)

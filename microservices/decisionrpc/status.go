package decisionrpc

import (
	stderrors "errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"chess_trainer/internal/errors"
)

func errUnimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

// StatusError maps a decision error onto a gRPC status.
func StatusError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case stderrors.Is(err, errors.ErrEmptyCandidateSet),
		stderrors.Is(err, errors.ErrInvalidEvaluation),
		stderrors.Is(err, errors.ErrInvalidColor),
		stderrors.Is(err, errors.ErrMoveNotInCandidates):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

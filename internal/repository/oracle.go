package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chess_trainer/internal/bootstrap"
	"chess_trainer/internal/domain/analysis"
	"chess_trainer/internal/domain/decision"
	"chess_trainer/internal/errors"
)

// OracleRepository talks to the analysis service over HTTP. The service owns
// the engine process; this side only ships positions and decodes lines.
type OracleRepository struct {
	cfg       *bootstrap.Config
	log       *zap.SugaredLogger
	oracleURL string
	client    *http.Client
}

func NewOracleRepository(cfg *bootstrap.Config, log *zap.SugaredLogger) *OracleRepository {
	return &OracleRepository{
		cfg:       cfg,
		log:       log,
		oracleURL: cfg.OracleUrl,
		client:    &http.Client{Timeout: cfg.OracleTimeout},
	}
}

func generateUUID() string {
	return uuid.New().String()
}

// Analyse returns the ranked candidates for a position.
func (o *OracleRepository) Analyse(ctx context.Context, pos analysis.Position) (decision.CandidateSet, error) {
	resp, err := o.query(ctx, analysis.OracleRequest{
		ID:      generateUUID(),
		FEN:     pos.FEN,
		MultiPV: o.cfg.OracleMultiPV,
		Depth:   o.cfg.OracleDepth,
	})
	if err != nil {
		return decision.CandidateSet{}, err
	}
	return resp.CandidateSet(pos.Side)
}

// EvaluateMove restricts the search to a single move, for moves that did not
// make it into the multi-PV list.
func (o *OracleRepository) EvaluateMove(ctx context.Context, pos analysis.Position, move string) (decision.MoveCandidate, error) {
	resp, err := o.query(ctx, analysis.OracleRequest{
		ID:          generateUUID(),
		FEN:         pos.FEN,
		MultiPV:     1,
		Depth:       o.cfg.OracleDepth,
		SearchMoves: []string{move},
	})
	if err != nil {
		return decision.MoveCandidate{}, err
	}
	set, err := resp.CandidateSet(pos.Side)
	if err != nil {
		return decision.MoveCandidate{}, err
	}
	candidate, ok := set.Find(move)
	if !ok {
		return decision.MoveCandidate{}, fmt.Errorf("%w: oracle did not score %s", errors.ErrMoveNotInCandidates, move)
	}
	return candidate, nil
}

func (o *OracleRepository) query(ctx context.Context, request analysis.OracleRequest) (analysis.OracleResponse, error) {
	reqBody, err := json.Marshal(request)
	if err != nil {
		return analysis.OracleResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.oracleURL, bytes.NewReader(reqBody))
	if err != nil {
		return analysis.OracleResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	o.log.Debugw("oracle request", "id", request.ID, "fen", request.FEN, "multipv", request.MultiPV, "search_moves", request.SearchMoves)

	resp, err := o.client.Do(req)
	if err != nil {
		return analysis.OracleResponse{}, fmt.Errorf("%w: %v", errors.ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return analysis.OracleResponse{}, fmt.Errorf("%w: unexpected status code %d", errors.ErrOracleUnavailable, resp.StatusCode)
	}

	var result analysis.OracleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return analysis.OracleResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Error != "" {
		return analysis.OracleResponse{}, fmt.Errorf("%w: %s", errors.ErrOracleUnavailable, result.Error)
	}
	if result.ID != "" && result.ID != request.ID {
		o.log.Warnw("oracle answered a different request", "sent", request.ID, "got", result.ID)
	}

	return result, nil
}

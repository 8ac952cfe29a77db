package usecase

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"chess_trainer/internal/domain/decision"
	decisionUC "chess_trainer/internal/usecase/decision"
	"chess_trainer/microservices/decisionrpc"
)

func newDecisionClient(t *testing.T) decisionrpc.DecisionServiceClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	decisionrpc.RegisterDecisionServiceServer(server, NewDecisionUseCase(decisionUC.DefaultPolicy(), zap.NewNop().Sugar()))
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return decisionrpc.NewDecisionServiceClient(conn)
}

func candidates() []decision.MoveCandidate {
	return []decision.MoveCandidate{
		{Move: "Rd1", Eval: 20},
		{Move: "Qxf7+", Eval: 310, Capture: true, Check: true, Tactical: true},
		{Move: "h3", Eval: 5, Quiet: true},
	}
}

func TestSelectMove_OverGRPC(t *testing.T) {
	client := newDecisionClient(t)
	seed := int64(9)

	resp, err := client.SelectMove(context.Background(), &decisionrpc.SelectMoveRequest{
		Side:       decision.White,
		Candidates: candidates(),
		Skill:      decision.SkillConfig{Rating: 2500},
		Material: decision.ByColor{
			White: decision.Material{Rooks: 1, Bishops: 1},
			Black: decision.Material{Rooks: 1, Knights: 1},
		},
		Fullmove: 34,
		Queens:   0,
		Seed:     &seed,
	})
	require.NoError(t, err)

	assert.Equal(t, "Qxf7+", resp.Result.Best.Move)
	assert.Equal(t, "Qxf7+", resp.Result.Chosen.Move)
	assert.Equal(t, decision.PhaseEndgame, resp.Phase)
	assert.Equal(t, seed, resp.Seed)
	assert.Equal(t, "White +3.10", resp.EvalText)
	assert.InDelta(t, 1.0, resp.Result.Weights[0], 1e-9)
}

func TestSelectMove_SameSeedSameMove(t *testing.T) {
	client := newDecisionClient(t)
	seed := int64(1234)
	phase := decision.PhaseMiddlegame
	req := &decisionrpc.SelectMoveRequest{
		Side:       decision.Black,
		Candidates: candidates(),
		Skill:      decision.SkillConfig{Rating: 900},
		Phase:      &phase,
		Seed:       &seed,
	}

	first, err := client.SelectMove(context.Background(), req)
	require.NoError(t, err)
	second, err := client.SelectMove(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.Result, second.Result)
	assert.Equal(t, decision.PhaseMiddlegame, first.Phase)
}

func TestSelectMove_InvalidArgument(t *testing.T) {
	client := newDecisionClient(t)

	_, err := client.SelectMove(context.Background(), &decisionrpc.SelectMoveRequest{Side: decision.White})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.SelectMove(context.Background(), &decisionrpc.SelectMoveRequest{
		Candidates: []decision.MoveCandidate{{Move: "e4", Eval: 3 * decision.MateScore}},
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestClassifyMove_OverGRPC(t *testing.T) {
	client := newDecisionClient(t)

	resp, err := client.ClassifyMove(context.Background(), &decisionrpc.ClassifyMoveRequest{
		PlayedEval: -150,
		BestEval:   150,
		Side:       decision.White,
	})
	require.NoError(t, err)
	assert.Equal(t, decision.QualityMistake, resp.Label.Quality)
	assert.Equal(t, decision.Centipawns(300), resp.Label.Loss)

	resp, err = client.ClassifyMove(context.Background(), &decisionrpc.ClassifyMoveRequest{
		PlayedEval: -150,
		BestEval:   150,
		Side:       decision.Black,
	})
	require.NoError(t, err)
	assert.Equal(t, decision.QualityExcellent, resp.Label.Quality)
}

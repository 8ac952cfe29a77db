package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"chess_trainer/internal/bootstrap"
	"chess_trainer/internal/domain/decision"
	decisionUC "chess_trainer/internal/usecase/decision"
	"chess_trainer/microservices/decisionrpc"
)

var decideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Pick a bot move for a candidate set stored as JSON",
	Long:  "Reads a candidate set with skill, personality and phase from a JSON file and prints the selection with its weights. With --remote the decision service does the work over gRPC.",
	RunE:  runDecide,
}

var (
	decideInput  string
	decideSeed   int64
	decideRemote string
)

func init() {
	decideCmd.Flags().StringVarP(&decideInput, "input", "i", "", "Path to the decision JSON file (required)")
	decideCmd.Flags().Int64Var(&decideSeed, "seed", 0, "Seed for the random source; overrides the file, 0 keeps it")
	decideCmd.Flags().StringVar(&decideRemote, "remote", "", "Address of a decision gRPC server, e.g. localhost:8082")

	if err := decideCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}

	rootCmd.AddCommand(decideCmd)
}

// DecideInput is the file format read by the decide command.
type DecideInput struct {
	Position    decision.CandidateSet       `json:"position"`
	Skill       decision.SkillConfig        `json:"skill"`
	Personality *decision.PersonalityConfig `json:"personality,omitempty"`
	Phase       *decision.Phase             `json:"phase,omitempty"`
	Seed        *int64                      `json:"seed,omitempty"`
}

type DecideOutput struct {
	Result   decision.SelectionResult `json:"result"`
	Phase    decision.Phase           `json:"phase"`
	Seed     int64                    `json:"seed"`
	EvalText string                   `json:"eval_text"`
}

func runDecide(cmd *cobra.Command, _ []string) error {
	content, err := os.ReadFile(decideInput)
	if err != nil {
		return fmt.Errorf("failed to read decision file %s: %w", decideInput, err)
	}

	var in DecideInput
	if err := json.Unmarshal(content, &in); err != nil {
		return fmt.Errorf("failed to unmarshal decision JSON: %w", err)
	}
	if decideSeed != 0 {
		in.Seed = &decideSeed
	}
	if in.Seed == nil {
		seed := time.Now().UnixNano()
		in.Seed = &seed
	}
	if in.Phase == nil {
		phase := decision.PhaseMiddlegame
		in.Phase = &phase
	}

	cfg, err := bootstrap.Setup(configPath)
	if err != nil {
		return fmt.Errorf("failed to setup configuration: %w", err)
	}

	var out DecideOutput
	if decideRemote != "" {
		out, err = decideRemotely(cmd.Context(), decideRemote, in)
	} else {
		out, err = decideLocally(cfg.Policy, in)
	}
	if err != nil {
		return err
	}

	return printJSON(cmd, out)
}

func decideLocally(policy decisionUC.Policy, in DecideInput) (DecideOutput, error) {
	personality := decision.NeutralPersonality()
	if in.Personality != nil {
		personality = *in.Personality
	}

	result, err := policy.Decide(in.Position, in.Skill, personality, *in.Phase, decisionUC.NewSource(*in.Seed))
	if err != nil {
		return DecideOutput{}, fmt.Errorf("failed to decide: %w", err)
	}

	return DecideOutput{
		Result:   result,
		Phase:    *in.Phase,
		Seed:     *in.Seed,
		EvalText: decision.EvalText(result.Chosen, in.Position.Side()),
	}, nil
}

func decideRemotely(ctx context.Context, addr string, in DecideInput) (DecideOutput, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return DecideOutput{}, fmt.Errorf("failed to dial decision service: %w", err)
	}
	defer conn.Close()

	req := &decisionrpc.SelectMoveRequest{
		Side:        in.Position.Side(),
		Candidates:  in.Position.Candidates(),
		Skill:       in.Skill,
		Personality: in.Personality,
		Phase:       in.Phase,
		Seed:        in.Seed,
	}
	if root, ok := in.Position.RootEval(); ok {
		req.RootEval = &root
	}

	resp, err := decisionrpc.NewDecisionServiceClient(conn).SelectMove(ctx, req)
	if err != nil {
		return DecideOutput{}, fmt.Errorf("decision service: %w", err)
	}

	return DecideOutput{
		Result:   resp.Result,
		Phase:    resp.Phase,
		Seed:     resp.Seed,
		EvalText: resp.EvalText,
	}, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	jsonOutput, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(jsonOutput))
	return err
}

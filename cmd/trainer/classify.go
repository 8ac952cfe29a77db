package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chess_trainer/internal/bootstrap"
	"chess_trainer/internal/domain/decision"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Grade a played move from two evaluations",
	Long:  "Grades a move by its centipawn loss against the best move. Both evaluations are from White's point of view.",
	RunE:  runClassify,
}

var (
	classifyPlayed float64
	classifyBest   float64
	classifySide   string
)

func init() {
	classifyCmd.Flags().Float64Var(&classifyPlayed, "played", 0, "Evaluation after the played move, in centipawns")
	classifyCmd.Flags().Float64Var(&classifyBest, "best", 0, "Evaluation after the best move, in centipawns")
	classifyCmd.Flags().StringVar(&classifySide, "side", "white", "Side that played the move")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, _ []string) error {
	side, err := decision.ParseColor(classifySide)
	if err != nil {
		return err
	}

	cfg, err := bootstrap.Setup(configPath)
	if err != nil {
		return fmt.Errorf("failed to setup configuration: %w", err)
	}

	label, err := cfg.Policy.Classify(decision.Centipawns(classifyPlayed), decision.Centipawns(classifyBest), side)
	if err != nil {
		return err
	}
	return printJSON(cmd, label)
}

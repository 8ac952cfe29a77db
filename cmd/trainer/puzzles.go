package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chess_trainer/internal/adapters"
	"chess_trainer/internal/bootstrap"
	"chess_trainer/internal/repository"
	puzzlesUC "chess_trainer/internal/usecase/puzzles"
)

var puzzlesCmd = &cobra.Command{
	Use:   "puzzles",
	Short: "Manage the puzzle collection",
}

var puzzlesImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import puzzle JSON files into Mongo",
	Long:  "Walks a directory for .json files holding puzzle arrays and upserts them by id. Puzzles without a level take it from a \"Level N\" directory.",
	RunE:  runPuzzlesImport,
}

var puzzlesPath string

func init() {
	puzzlesImportCmd.Flags().StringVarP(&puzzlesPath, "path", "p", "", "Directory with puzzle files (required)")
	if err := puzzlesImportCmd.MarkFlagRequired("path"); err != nil {
		panic(fmt.Sprintf("failed to mark path flag as required: %v", err))
	}

	puzzlesCmd.AddCommand(puzzlesImportCmd)
	rootCmd.AddCommand(puzzlesCmd)
}

func runPuzzlesImport(cmd *cobra.Command, _ []string) error {
	logger := NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := bootstrap.Setup(configPath)
	if err != nil {
		return fmt.Errorf("failed to setup configuration: %w", err)
	}

	ctx := cmd.Context()
	mongoAdapter := adapters.NewAdapterMongo(cfg, logger)
	if err := mongoAdapter.Init(ctx); err != nil {
		return fmt.Errorf("failed to init mongo: %w", err)
	}
	defer mongoAdapter.Close(ctx)

	storage := repository.NewPuzzleStorage(logger, mongoAdapter.Database, cfg.PageLimitPuzzles)
	n, err := puzzlesUC.NewPuzzleUseCase(storage, cfg.PuzzleTolerance, logger).ImportPuzzles(ctx, puzzlesPath)
	if err != nil {
		return fmt.Errorf("failed to import puzzles: %w", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d puzzles from %s\n", n, puzzlesPath)
	return err
}

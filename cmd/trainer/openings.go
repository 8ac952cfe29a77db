package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chess_trainer/internal/adapters"
	"chess_trainer/internal/bootstrap"
	"chess_trainer/internal/repository"
	openingsUC "chess_trainer/internal/usecase/openings"
)

var openingsCmd = &cobra.Command{
	Use:   "openings",
	Short: "Manage the opening book",
}

var openingsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import opening lines into Mongo",
	Long:  "Walks a directory for .json files holding arrays of opening lines and replaces stored lines of the same name. Without --path the built-in book is seeded, keeping lines already stored.",
	RunE:  runOpeningsImport,
}

var openingsPath string

func init() {
	openingsImportCmd.Flags().StringVarP(&openingsPath, "path", "p", "", "Directory with opening files")

	openingsCmd.AddCommand(openingsImportCmd)
	rootCmd.AddCommand(openingsCmd)
}

func runOpeningsImport(cmd *cobra.Command, _ []string) error {
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

	uc := openingsUC.NewOpeningUseCase(repository.NewOpeningStorage(logger, mongoAdapter.Database), logger)
	if openingsPath == "" {
		n, err := uc.SeedDefaults(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed openings: %w", err)
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d built-in openings\n", n)
		return err
	}

	n, err := uc.ImportOpenings(ctx, openingsPath)
	if err != nil {
		return fmt.Errorf("failed to import openings: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d openings from %s\n", n, openingsPath)
	return err
}

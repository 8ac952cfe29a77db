// Package main is the trainer CLI: the HTTP/gRPC service and offline tools
// around the move decision core.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "trainer",
	Short: "Chess trainer decision service",
	Long:  "Chess trainer picks human-like bot moves for a target rating and personality, and grades played moves against the engine's best.",
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return loadEnv(configPath)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".env", "Path to the .env configuration file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadEnv exports the --config file into the process environment. Variables
// already set win, and a missing file is not an error.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

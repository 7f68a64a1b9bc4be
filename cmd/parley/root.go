package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/parleykit/parley/internal/logging"
	"github.com/parleykit/parley/pkg/adapters/file"
	"github.com/parleykit/parley/pkg/domain"
)

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Parley is an embeddable dialogue script runtime",
	Long:  `Parley walks compiled dialogue resources: branching scripts with conditions, state mutations, and player responses.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("resource", "r", "dialogue.yaml", "Path to the compiled dialogue resource (JSON or YAML)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

func loadResource(cmd *cobra.Command) (*domain.Resource, error) {
	path, _ := cmd.Flags().GetString("resource")
	return file.NewLoader(path).Load()
}

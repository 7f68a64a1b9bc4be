package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/parleykit/parley/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play a dialogue resource interactively",
	Long:  `Walks the resource from a title, printing lines and offering numbered response menus on stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("resource")
		title, _ := cmd.Flags().GetString("title")
		stateJSON, _ := cmd.Flags().GetString("state")
		lenient, _ := cmd.Flags().GetBool("lenient")
		validate, _ := cmd.Flags().GetBool("validate")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := cli.PlayerOptions{
			ResourcePath: path,
			Title:        title,
			StateJSON:    stateJSON,
			Strict:       !lenient,
			Validate:     validate,
			TTY:          term.IsTerminal(int(os.Stdout.Fd())),
			Logger:       newLogger(cmd),
		}

		if err := cli.RunPlayer(ctx, opts, os.Stdin, os.Stdout); err != nil {
			return fmt.Errorf("run failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("title", "t", "start", "Title to start from")
	runCmd.Flags().String("state", "", "Initial variables as a JSON object")
	runCmd.Flags().Bool("lenient", false, "Substitute defaults for unknown properties instead of failing")
	runCmd.Flags().Bool("validate", false, "Validate the resource before playing")
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/parleykit/parley"
	mcpAdapter "github.com/parleykit/parley/pkg/adapters/mcp"
	"github.com/parleykit/parley/pkg/adapters/memory"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the resource over the Model Context Protocol on stdio",
	Long:  `Exposes next_line and list_titles tools so agent hosts can drive dialogue sessions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadResource(cmd)
		if err != nil {
			return err
		}

		server := mcpAdapter.NewServer(res, memory.NewStore(), parley.Version,
			mcpAdapter.WithLogger(newLogger(cmd)))
		return server.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

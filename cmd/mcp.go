package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/smokefree-cli/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server provides tools for reading recovery progress, logging cravings and
asking the coach.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !appConfig.MCP.Enabled {
			return errors.New("MCP server is disabled (set mcp.enabled = true)")
		}

		// stdout carries the protocol
		fmt.Fprintln(cmd.ErrOrStderr(), "🚀 Starting MCP server on stdio. Press Ctrl+C to stop.")

		server := mcp.NewServer(stateService)
		if err := server.Start(setupSignalHandler()); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

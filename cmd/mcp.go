package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomodoro-cli/internal/adapters/mcp"
	"github.com/xvierd/pomodoro-cli/internal/adapters/terminal"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server exposes the timer controls and stats as tools over stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.config.MCP.Enabled {
			return errors.New("MCP server is disabled in config (mcp.enabled = false)")
		}

		// stdout carries the protocol; status goes to stderr.
		fmt.Fprintln(cmd.ErrOrStderr(), "🚀 Starting MCP server on stdio (Ctrl+C to stop)")

		if sink := terminal.StderrTitleSink(); sink != nil {
			app.controller.SetTitleSink(sink)
		}
		app.controller.Mount()
		defer app.controller.Unmount()

		server := mcp.NewServer(app.controller, app.stats)
		defer func() { _ = server.Stop() }()
		app.logger.Info("mcp server starting")
		if err := server.Start(cmd.Context()); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		app.logger.Info("mcp server stopped")
		return nil
	},
}

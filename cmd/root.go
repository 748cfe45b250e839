// Package cmd provides the CLI commands for the pomodoro timer.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/xvierd/pomodoro-cli/internal/adapters/tui"
)

var (
	// Version info (set at build time via ldflags)
	Version = "dev"

	// Global flags
	dbPath     string
	configPath string
	jsonOutput bool
	verbose    bool
)

// isTerminal reports whether w is an interactive terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pomodoro",
	Short: "Pomodoro - a work/break countdown timer for the terminal",
	Long: `Pomodoro is a terminal countdown timer for the work/break technique.
Durations, theme and lifetime stats persist between runs.

Run "pomodoro" with no arguments to open the interactive timer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices(cmd.Context())
	},
	RunE: runTimer,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	// PostRun is skipped when a command fails; pending settings still need a flush.
	if cleanupErr := cleanupServices(context.Background()); err == nil {
		err = cleanupErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.pomodoro/pomodoro.db)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: ~/.pomodoro/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug logs")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Pomodoro CLI\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
}

// runTimer opens the interactive timer, or prints a status line when
// stdout is not a terminal.
func runTimer(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if !isTerminal(out) {
		return tui.ShowStatus(out, app.controller.Snapshot())
	}

	app.logger.Debug("starting interactive timer")
	if err := tui.Run(cmd.Context(), app.controller); err != nil {
		return err
	}
	return nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomodoro-cli/internal/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change timer settings",
	Long: `Show the work and break durations, theme and appearance.
Use the subcommands to change them; changes persist immediately.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSettings(cmd.OutOrStdout(), app.controller.Snapshot().Config)
	},
}

var settingsWorkCmd = &cobra.Command{
	Use:   "work MINUTES",
	Short: "Set the work duration in minutes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.controller.EditWorkDuration(args[0]) {
			return fmt.Errorf("work duration must be a whole number of minutes from 1 to 1440, got %q", args[0])
		}
		return printSettings(cmd.OutOrStdout(), app.controller.Snapshot().Config)
	},
}

var settingsBreakCmd = &cobra.Command{
	Use:   "break MINUTES",
	Short: "Set the break duration in minutes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.controller.EditBreakDuration(args[0]) {
			return fmt.Errorf("break duration must be a whole number of minutes from 1 to 1440, got %q", args[0])
		}
		return printSettings(cmd.OutOrStdout(), app.controller.Snapshot().Config)
	},
}

var settingsThemeCmd = &cobra.Command{
	Use:   "theme [NAME]",
	Short: "Select a theme by name, or cycle to the next one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			if err := app.controller.SelectTheme(args[0]); err != nil {
				return fmt.Errorf("%w (available: %v)", err, domain.ThemeNames())
			}
		} else {
			app.controller.CycleTheme()
		}
		return printSettings(cmd.OutOrStdout(), app.controller.Snapshot().Config)
	},
}

var settingsAppearanceCmd = &cobra.Command{
	Use:   "appearance",
	Short: "Toggle between dark and light appearance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.controller.ToggleAppearance()
		return printSettings(cmd.OutOrStdout(), app.controller.Snapshot().Config)
	},
}

func init() {
	settingsCmd.AddCommand(settingsWorkCmd)
	settingsCmd.AddCommand(settingsBreakCmd)
	settingsCmd.AddCommand(settingsThemeCmd)
	settingsCmd.AddCommand(settingsAppearanceCmd)
}

func printSettings(w io.Writer, cfg domain.SessionConfig) error {
	appearance := "light"
	if cfg.DarkMode {
		appearance = "dark"
	}

	if jsonOutput {
		jsonData, err := json.MarshalIndent(map[string]interface{}{
			"work_minutes":  cfg.WorkDurationMinutes,
			"break_minutes": cfg.BreakDurationMinutes,
			"theme":         cfg.Theme().Name,
			"appearance":    appearance,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonData))
		return err
	}

	fmt.Fprintf(w, "Work Duration:   %d min\n", cfg.WorkDurationMinutes)
	fmt.Fprintf(w, "Break Duration:  %d min\n", cfg.BreakDurationMinutes)
	fmt.Fprintf(w, "Theme:           %s\n", cfg.Theme().Name)
	fmt.Fprintf(w, "Appearance:      %s\n", appearance)
	return nil
}

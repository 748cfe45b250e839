package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomodoro-cli/internal/adapters/tui"
	"github.com/xvierd/pomodoro-cli/internal/domain"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current status",
	Long:  `Print the current phase, remaining time and lifetime totals on one line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := app.controller.Snapshot()
		if jsonOutput {
			return outputStatusJSON(cmd.OutOrStdout(), snap)
		}
		return tui.ShowStatus(cmd.OutOrStdout(), snap)
	},
}

// outputStatusJSON outputs the status in JSON format
func outputStatusJSON(w io.Writer, snap domain.Snapshot) error {
	result := map[string]interface{}{
		"phase":             string(snap.Timer.Phase),
		"remaining":         snap.Clock(),
		"remaining_seconds": snap.Timer.RemainingSeconds,
		"running":           snap.Timer.Running,
		"work_minutes":      snap.Config.WorkDurationMinutes,
		"break_minutes":     snap.Config.BreakDurationMinutes,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

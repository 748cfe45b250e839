package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/xvierd/pomodoro-cli/internal/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime and today's pomodoro statistics",
	Long:  `Display completed pomodoros and focused minutes, lifetime and for today.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lifetime := app.session.Stats()
		today, err := app.stats.Today(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		if jsonOutput {
			return outputStatsJSON(cmd.OutOrStdout(), lifetime, today)
		}
		renderStats(cmd.OutOrStdout(), lifetime, today)
		return nil
	},
}

func outputStatsJSON(w io.Writer, lifetime domain.SessionStats, today *domain.DailyStats) error {
	result := map[string]interface{}{
		"pomodoros_completed":   lifetime.PomodorosCompleted,
		"total_focused_minutes": lifetime.TotalFocusedMinutes,
		"today": map[string]interface{}{
			"date":            today.Date.Format("2006-01-02"),
			"pomodoros":       today.Pomodoros,
			"focused_minutes": today.FocusedMinutes,
		},
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

func renderStats(w io.Writer, lifetime domain.SessionStats, today *domain.DailyStats) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(domain.Themes[0].Accent))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Bold(true)

	row := func(label string, value string) {
		fmt.Fprintf(w, "  %s %s\n", dimStyle.Render(fmt.Sprintf("%-22s", label)), valueStyle.Render(value))
	}

	fmt.Fprintln(w, titleStyle.Render("  🍅 Pomodoro Stats"))
	fmt.Fprintln(w)
	row("Pomodoros Completed:", fmt.Sprint(lifetime.PomodorosCompleted))
	row("Total Focused Time:", formatMinutes(lifetime.TotalFocusedMinutes))
	fmt.Fprintln(w)
	row("Today:", fmt.Sprintf("%d pomodoros, %s", today.Pomodoros, formatMinutes(today.FocusedMinutes)))
}

// formatMinutes renders a minute count as e.g. "1h30m" or "25m".
func formatMinutes(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomodoro-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long:  `Print the config file location and the values in effect for this run.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()

		path := configPath
		if path == "" {
			var err error
			if path, err = config.GetConfigPath(); err != nil {
				return err
			}
		}

		notifStatus := "off"
		if app.config.Notifications.Enabled {
			notifStatus = "on"
		}
		soundStatus := "off"
		if app.config.Notifications.Sound {
			soundStatus = "on"
		}

		fmt.Fprintf(w, "Config file:    %s\n", path)
		fmt.Fprintf(w, "Data dir:       %s\n", app.config.Storage.DataDir)
		fmt.Fprintf(w, "Save debounce:  %s\n", app.config.Timer.SaveDebounce)
		fmt.Fprintf(w, "Notifications:  %s\n", notifStatus)
		fmt.Fprintf(w, "Sound:          %s\n", soundStatus)
		fmt.Fprintf(w, "MCP server:     %v\n", app.config.MCP.Enabled)
		fmt.Fprintf(w, "Log level:      %s\n", app.config.Logging.SlogLevel())
		return nil
	},
}

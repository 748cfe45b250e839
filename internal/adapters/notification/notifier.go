// Package notification provides the audible and desktop phase-end alerts.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/pomodoro-cli/internal/config"
	"github.com/xvierd/pomodoro-cli/internal/domain"
	"github.com/xvierd/pomodoro-cli/internal/ports"
)

// Notifier handles phase-end alerts.
type Notifier struct {
	cfg    *config.NotificationConfig
	beep   func() error
	notify func(title, message string) error
}

// Ensure Notifier implements ports.Alerter.
var _ ports.Alerter = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{
		cfg:    cfg,
		beep: func() error {
			return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
		},
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// Alert plays the cue for a finished phase and, if enabled, shows a
// desktop notification. A failing beep does not suppress the notification.
func (n *Notifier) Alert(finished domain.Phase) error {
	if n.cfg == nil {
		return nil
	}

	var beepErr error
	if n.cfg.Sound {
		beepErr = n.beep()
	}

	if n.cfg.Enabled {
		title, message := alertText(finished)
		if err := n.notify(title, message); err != nil {
			return fmt.Errorf("failed to show notification: %w", err)
		}
	}

	if beepErr != nil {
		return fmt.Errorf("failed to play alert: %w", beepErr)
	}
	return nil
}

// IsEnabled returns true if any alert output is enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && (n.cfg.Enabled || n.cfg.Sound)
}

func alertText(finished domain.Phase) (title, message string) {
	switch finished {
	case domain.PhaseWork:
		return "🍅 Pomodoro Complete!", "Great job! Time for a break."
	case domain.PhaseBreak:
		return "☕ Break Over!", "Ready to focus?"
	default:
		return "Pomodoro Timer", "Phase finished."
	}
}

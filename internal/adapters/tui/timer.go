package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/pomodoro-cli/internal/domain"
	"github.com/xvierd/pomodoro-cli/internal/ports"
)

// Session is the controller surface the TUI drives.
type Session interface {
	ports.TimerControl
	Subscribe(fn func(domain.Snapshot)) (unsubscribe func())
	Mount()
	Unmount()
}

// Run mounts the session and runs the interactive timer until the user
// quits or ctx is cancelled. The session is unmounted on return.
func Run(ctx context.Context, session Session, opts ...tea.ProgramOption) error {
	changes := make(chan struct{}, 1)
	unsubscribe := session.Subscribe(func(domain.Snapshot) {
		notify(changes)
	})
	defer unsubscribe()

	session.Mount()
	defer session.Unmount()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(NewModel(session, changes), opts...)

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// notify posts a change signal without blocking. Pending signals coalesce.
func notify(changes chan<- struct{}) {
	select {
	case changes <- struct{}{}:
	default:
	}
}

// ShowStatus writes a one-line summary for non-interactive output.
func ShowStatus(w io.Writer, snap domain.Snapshot) error {
	state := "paused"
	if snap.Timer.Running {
		state = "running"
	}
	_, err := fmt.Fprintf(w, "%s %s (%s) · %d pomodoros · %d min focused\n",
		snap.Timer.Phase.Heading(),
		snap.Clock(),
		state,
		snap.Stats.PomodorosCompleted,
		snap.Stats.TotalFocusedMinutes,
	)
	return err
}

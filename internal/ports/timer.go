package ports

import "github.com/xvierd/pomodoro-cli/internal/domain"

// Alerter plays the audible cue at a phase boundary.
// This is a driven port (implemented by adapters).
type Alerter interface {
	// Alert is called with the phase that just ran out.
	Alert(finished domain.Phase) error
}

// TitleSink reflects the countdown in a display title.
// This is a driven port (implemented by adapters).
type TitleSink interface {
	SetTitle(title string)
}

// TimerControl is the set of user intents a presentation surface forwards
// to the session controller. This is a driving port.
type TimerControl interface {
	Snapshot() domain.Snapshot
	Toggle()
	Reset()
	SwitchPhase()
	SetWorkDuration(minutes int) bool
	SetBreakDuration(minutes int) bool
	EditWorkDuration(text string) bool
	EditBreakDuration(text string) bool
	CycleTheme()
	SelectTheme(query string) error
	ToggleAppearance()
}

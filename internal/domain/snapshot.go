package domain

// Snapshot is an immutable view of the controller handed to presentation
// surfaces. Version grows with every state change.
type Snapshot struct {
	Version uint64
	Timer   TimerState
	Config  SessionConfig
	Stats   SessionStats
}

// DurationSeconds is the full length of the active phase.
func (s Snapshot) DurationSeconds() int {
	return s.Config.PhaseDurationSeconds(s.Timer.Phase)
}

// Progress is the elapsed fraction of the active phase.
func (s Snapshot) Progress() float64 {
	return Progress(s.DurationSeconds(), s.Timer.RemainingSeconds)
}

// Clock is the remaining time as MM:SS.
func (s Snapshot) Clock() string {
	return FormatClock(s.Timer.RemainingSeconds)
}

// Title is the display title for the snapshot.
func (s Snapshot) Title() string {
	return Title(s.Timer.Phase, s.Timer.RemainingSeconds)
}

// Theme is the selected theme.
func (s Snapshot) Theme() Theme {
	return s.Config.Theme()
}

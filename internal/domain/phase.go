// Package domain contains the core entities of the Pomodoro timer.
// They are independent of any presentation or storage framework.
package domain

// Phase is one of the two mutually exclusive countdown modes.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// Label returns a human-readable label for the phase.
func (p Phase) Label() string {
	switch p {
	case PhaseWork:
		return "Work"
	case PhaseBreak:
		return "Break"
	default:
		return "Unknown"
	}
}

// Next returns the phase that follows p.
func (p Phase) Next() Phase {
	if p == PhaseWork {
		return PhaseBreak
	}
	return PhaseWork
}

// Heading is the card title shown above the countdown.
func (p Phase) Heading() string {
	if p == PhaseBreak {
		return "Break Time"
	}
	return "Work Time"
}

// SwitchLabel is the label of the manual switch action from phase p.
func (p Phase) SwitchLabel() string {
	if p == PhaseBreak {
		return "Start Working"
	}
	return "Take a Break"
}

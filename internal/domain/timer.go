package domain

import "fmt"

// NeutralTitle is the display title when no timer is mounted.
const NeutralTitle = "Pomodoro Timer"

// TimerState is the transient countdown state. It is never persisted.
type TimerState struct {
	Phase            Phase
	RemainingSeconds int
	Running          bool
}

// NewTimerState returns a stopped timer filled for phase p.
func NewTimerState(cfg SessionConfig, p Phase) TimerState {
	return TimerState{
		Phase:            p,
		RemainingSeconds: cfg.PhaseDurationSeconds(p),
	}
}

// Progress returns the elapsed fraction of a phase, clamped to [0,1].
func Progress(durationSeconds, remainingSeconds int) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	p := float64(durationSeconds-remainingSeconds) / float64(durationSeconds)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// FormatClock formats whole seconds as MM:SS. Minutes may exceed two digits.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Title returns the display title for the given countdown.
func Title(p Phase, remainingSeconds int) string {
	return fmt.Sprintf("%s - %s", FormatClock(remainingSeconds), p.Label())
}

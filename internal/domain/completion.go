package domain

import (
	"time"

	"github.com/google/uuid"
)

// Completion records one work phase that ran down to zero.
type Completion struct {
	ID          string
	CompletedAt time.Time
	Minutes     int
}

// NewCompletion creates a completion record stamped at now.
func NewCompletion(minutes int, now time.Time) Completion {
	return Completion{
		ID:          uuid.New().String(),
		CompletedAt: now,
		Minutes:     minutes,
	}
}

// DailyStats aggregates completions since the start of a day.
type DailyStats struct {
	Date           time.Time
	Pomodoros      int
	FocusedMinutes int
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

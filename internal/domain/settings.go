package domain

import (
	"encoding/json"
	"fmt"
)

// SettingsKey is the storage key of the persisted settings blob.
const SettingsKey = "pomodoroSettings"

// Default values applied when nothing usable is stored.
const (
	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5
)

// SessionConfig holds the user-editable timer settings.
type SessionConfig struct {
	WorkDurationMinutes  int
	BreakDurationMinutes int
	ThemeIndex           int
	DarkMode             bool
}

// DefaultSessionConfig returns the standard 25/5 configuration.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		WorkDurationMinutes:  DefaultWorkMinutes,
		BreakDurationMinutes: DefaultBreakMinutes,
		ThemeIndex:           0,
		DarkMode:             true,
	}
}

// PhaseMinutes returns the configured length of phase p in minutes.
func (c SessionConfig) PhaseMinutes(p Phase) int {
	if p == PhaseBreak {
		return c.BreakDurationMinutes
	}
	return c.WorkDurationMinutes
}

// PhaseDurationSeconds returns the configured length of phase p in seconds.
func (c SessionConfig) PhaseDurationSeconds(p Phase) int {
	return c.PhaseMinutes(p) * 60
}

// Theme returns the theme selected by ThemeIndex.
func (c SessionConfig) Theme() Theme {
	return ThemeAt(c.ThemeIndex)
}

// SessionStats accumulates completed work phases. It only ever grows.
type SessionStats struct {
	PomodorosCompleted  int
	TotalFocusedMinutes int
}

// RecordPomodoro adds one completed work phase of the given length.
func (s *SessionStats) RecordPomodoro(minutes int) {
	s.PomodorosCompleted++
	s.TotalFocusedMinutes += minutes
}

// MaxDurationMinutes is the longest phase a user can set: one day.
const MaxDurationMinutes = 24 * 60

// ValidateMinutes checks that a duration edit is a positive integer no
// larger than MaxDurationMinutes.
func ValidateMinutes(minutes int) error {
	if minutes <= 0 || minutes > MaxDurationMinutes {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, minutes)
	}
	return nil
}

// settingsRecord is the wire shape of the persisted blob. Pointers
// distinguish an absent field from a zero value.
type settingsRecord struct {
	WorkDuration       *int  `json:"workDuration"`
	BreakDuration      *int  `json:"breakDuration"`
	PomodorosCompleted *int  `json:"pomodorosCompleted"`
	TotalFocusedTime   *int  `json:"totalFocusedTime"`
	ThemeIndex         *int  `json:"themeIndex"`
	IsDarkMode         *bool `json:"isDarkMode"`
}

// EncodeSettings serializes config and stats into the persisted blob.
func EncodeSettings(cfg SessionConfig, stats SessionStats) (string, error) {
	rec := settingsRecord{
		WorkDuration:       &cfg.WorkDurationMinutes,
		BreakDuration:      &cfg.BreakDurationMinutes,
		PomodorosCompleted: &stats.PomodorosCompleted,
		TotalFocusedTime:   &stats.TotalFocusedMinutes,
		ThemeIndex:         &cfg.ThemeIndex,
		IsDarkMode:         &cfg.DarkMode,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to encode settings: %w", err)
	}
	return string(data), nil
}

// DecodeSettings parses a persisted blob. Fields that are missing or out
// of range fall back to their defaults; a blob that is not a JSON object
// is an error.
func DecodeSettings(blob string) (SessionConfig, SessionStats, error) {
	cfg := DefaultSessionConfig()
	var stats SessionStats

	var rec settingsRecord
	if err := json.Unmarshal([]byte(blob), &rec); err != nil {
		return cfg, stats, fmt.Errorf("failed to decode settings: %w", err)
	}

	if rec.WorkDuration != nil && ValidateMinutes(*rec.WorkDuration) == nil {
		cfg.WorkDurationMinutes = *rec.WorkDuration
	}
	if rec.BreakDuration != nil && ValidateMinutes(*rec.BreakDuration) == nil {
		cfg.BreakDurationMinutes = *rec.BreakDuration
	}
	if rec.ThemeIndex != nil && *rec.ThemeIndex >= 0 && *rec.ThemeIndex < len(Themes) {
		cfg.ThemeIndex = *rec.ThemeIndex
	}
	if rec.IsDarkMode != nil {
		cfg.DarkMode = *rec.IsDarkMode
	}
	if rec.PomodorosCompleted != nil && *rec.PomodorosCompleted > 0 {
		stats.PomodorosCompleted = *rec.PomodorosCompleted
	}
	if rec.TotalFocusedTime != nil && *rec.TotalFocusedTime > 0 {
		stats.TotalFocusedMinutes = *rec.TotalFocusedTime
	}

	return cfg, stats, nil
}

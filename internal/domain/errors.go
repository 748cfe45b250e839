package domain

import "errors"

// Common domain errors.
var (
	ErrInvalidDuration  = errors.New("duration must be between 1 and 1440 minutes")
	ErrUnknownTheme     = errors.New("unknown theme")
	ErrSettingsNotFound = errors.New("settings not found")
)

// Package ports defines the interfaces (driven and driving ports)
// between the Pomodoro session controller and external infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/xvierd/pomodoro-cli/internal/domain"
)

// SettingsStore is a key/value store for serialized settings blobs.
// This is a driven port (implemented by adapters).
type SettingsStore interface {
	// Get returns the value stored under key, or domain.ErrSettingsNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// CompletionLog records work phases that ran down to zero.
// This is a driven port (implemented by adapters).
type CompletionLog interface {
	// Append persists a completion.
	Append(ctx context.Context, c domain.Completion) error

	// Since aggregates completions at or after the given time.
	Since(ctx context.Context, since time.Time) (*domain.DailyStats, error)
}

// Storage is the combined storage interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Settings provides access to the settings key/value store.
	Settings() SettingsStore

	// Completions provides access to the completion log.
	Completions() CompletionLog

	// Close closes the storage connection.
	Close() error

	// Migrate creates the schema.
	Migrate() error
}

package ports

import (
	"context"

	"github.com/xvierd/pomodoro-cli/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// StatsProvider reports today's aggregated completions.
// This is a driven port (implemented by the services layer).
type StatsProvider interface {
	Today(ctx context.Context) (*domain.DailyStats, error)
}

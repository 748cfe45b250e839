package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xvierd/pomodoro-cli/internal/domain"
	"github.com/xvierd/pomodoro-cli/internal/ports"
)

// completionRepository implements ports.CompletionLog using SQLite.
type completionRepository struct {
	db *sql.DB
}

// newCompletionRepository creates a new completion repository.
func newCompletionRepository(db *sql.DB) ports.CompletionLog {
	return &completionRepository{db: db}
}

// Append persists a completion.
func (r *completionRepository) Append(ctx context.Context, c domain.Completion) error {
	query := `INSERT INTO completions (id, completed_at, minutes) VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, c.ID, c.CompletedAt.UnixMilli(), c.Minutes)
	if isConstraintError(err) {
		return fmt.Errorf("completion %s already recorded: %w", c.ID, err)
	}
	if err != nil {
		return fmt.Errorf("failed to save completion: %w", err)
	}
	return nil
}

// Since aggregates completions at or after the given time.
func (r *completionRepository) Since(ctx context.Context, since time.Time) (*domain.DailyStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(minutes), 0)
		FROM completions
		WHERE completed_at >= ?
	`

	stats := &domain.DailyStats{Date: since}
	err := r.db.QueryRowContext(ctx, query, since.UnixMilli()).Scan(&stats.Pomodoros, &stats.FocusedMinutes)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate completions: %w", err)
	}
	return stats, nil
}

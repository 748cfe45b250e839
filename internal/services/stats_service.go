package services

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/xvierd/pomodoro-cli/internal/domain"
	"github.com/xvierd/pomodoro-cli/internal/ports"
)

// StatsService reports aggregated completions from the completion log.
type StatsService struct {
	log   ports.CompletionLog
	clock clockwork.Clock
}

// NewStatsService creates a stats service.
func NewStatsService(log ports.CompletionLog, clock clockwork.Clock) *StatsService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &StatsService{log: log, clock: clock}
}

// Today returns completions since local midnight.
func (s *StatsService) Today(ctx context.Context) (*domain.DailyStats, error) {
	return s.log.Since(ctx, domain.StartOfDay(s.clock.Now()))
}

// Ensure StatsService implements ports.StatsProvider.
var _ ports.StatsProvider = (*StatsService)(nil)

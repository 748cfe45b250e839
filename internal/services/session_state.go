package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/xvierd/pomodoro-cli/internal/domain"
	"github.com/xvierd/pomodoro-cli/internal/ports"
)

// DefaultSaveDebounce is the quiet window before settings are written.
const DefaultSaveDebounce = 500 * time.Millisecond

type persistedSettings struct {
	config domain.SessionConfig
	stats  domain.SessionStats
}

// SessionState is the process-wide persisted state: configuration and
// statistics. It is loaded once by Init and flushed by Teardown; every
// change in between schedules a debounced save.
type SessionState struct {
	store  ports.SettingsStore
	logger *slog.Logger
	saver  *Debouncer[persistedSettings]

	mu          sync.Mutex
	initialized bool
	config      domain.SessionConfig
	stats       domain.SessionStats
}

// NewSessionState creates session state backed by store. It holds
// defaults until Init is called.
func NewSessionState(store ports.SettingsStore, clock clockwork.Clock, debounce time.Duration, logger *slog.Logger) *SessionState {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if debounce <= 0 {
		debounce = DefaultSaveDebounce
	}
	s := &SessionState{
		store:  store,
		logger: logger,
		config: domain.DefaultSessionConfig(),
	}
	s.saver = NewDebouncer(clock, debounce, s.save)
	return s
}

// Init loads the stored settings. Missing or malformed data leaves the
// defaults in place. Only the first call reads the store.
func (s *SessionState) Init(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}
	s.initialized = true

	blob, err := s.store.Get(ctx, domain.SettingsKey)
	if err != nil {
		if errors.Is(err, domain.ErrSettingsNotFound) {
			s.logger.Debug("no saved settings, using defaults")
		} else {
			s.logger.Warn("failed to read settings, using defaults", "error", err)
		}
		return
	}

	cfg, stats, err := domain.DecodeSettings(blob)
	if err != nil {
		s.logger.Warn("saved settings are malformed, using defaults", "error", err)
		return
	}
	s.config = cfg
	s.stats = stats
	s.logger.Debug("settings loaded",
		"work_minutes", cfg.WorkDurationMinutes,
		"break_minutes", cfg.BreakDurationMinutes,
		"pomodoros", stats.PomodorosCompleted)
}

// Teardown writes any pending save immediately.
func (s *SessionState) Teardown(ctx context.Context) error {
	return s.saver.Flush(ctx)
}

// Config returns the current configuration.
func (s *SessionState) Config() domain.SessionConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// Stats returns the current statistics.
func (s *SessionState) Stats() domain.SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// UpdateConfig applies fn to the configuration and schedules a save if
// anything changed.
func (s *SessionState) UpdateConfig(fn func(cfg *domain.SessionConfig)) domain.SessionConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.config
	fn(&cfg)
	if cfg != s.config {
		s.config = cfg
		s.scheduleSaveLocked()
	}
	return s.config
}

// RecordPomodoro counts one completed work phase of the given length.
// Stats have no other mutator, so they never decrease.
func (s *SessionState) RecordPomodoro(minutes int) domain.SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.RecordPomodoro(minutes)
	s.scheduleSaveLocked()
	return s.stats
}

// SavePending reports whether a debounced save is waiting.
func (s *SessionState) SavePending() bool {
	return s.saver.Pending()
}

func (s *SessionState) scheduleSaveLocked() {
	s.saver.Schedule(persistedSettings{config: s.config, stats: s.stats})
}

func (s *SessionState) save(ctx context.Context, p persistedSettings) error {
	blob, err := domain.EncodeSettings(p.config, p.stats)
	if err != nil {
		s.logger.Error("failed to encode settings", "error", err)
		return err
	}
	if err := s.store.Set(ctx, domain.SettingsKey, blob); err != nil {
		s.logger.Warn("failed to save settings", "error", err)
		return fmt.Errorf("failed to save settings: %w", err)
	}
	s.logger.Debug("settings saved")
	return nil
}

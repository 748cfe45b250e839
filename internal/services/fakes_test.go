package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/xvierd/pomodoro-cli/internal/domain"
)

// fakeClock is the part of clockwork's fake clock the tests drive.
type fakeClock interface {
	clockwork.Clock
	Advance(d time.Duration)
	BlockUntilContext(ctx context.Context, n int) error
}

// memoryStore is an in-memory ports.SettingsStore.
type memoryStore struct {
	mu     sync.Mutex
	values map[string]string
	gets   int
	sets   int
	setErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string]string)}
}

func (s *memoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	v, ok := s.values[key]
	if !ok {
		return "", domain.ErrSettingsNotFound
	}
	return v, nil
}

func (s *memoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.sets++
	s.values[key] = value
	return nil
}

func (s *memoryStore) setCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}

func (s *memoryStore) value(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// recordingAlerter records alerts and optionally fails.
type recordingAlerter struct {
	mu     sync.Mutex
	phases []domain.Phase
	err    error
}

func (a *recordingAlerter) Alert(finished domain.Phase) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.phases = append(a.phases, finished)
	return a.err
}

func (a *recordingAlerter) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.phases)
}

// recordingTitles records every title written.
type recordingTitles struct {
	titles []string
}

func (r *recordingTitles) SetTitle(title string) {
	r.titles = append(r.titles, title)
}

func (r *recordingTitles) last() string {
	if len(r.titles) == 0 {
		return ""
	}
	return r.titles[len(r.titles)-1]
}

// memoryCompletions is an in-memory ports.CompletionLog.
type memoryCompletions struct {
	mu      sync.Mutex
	entries []domain.Completion
}

func (m *memoryCompletions) Append(ctx context.Context, c domain.Completion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, c)
	return nil
}

func (m *memoryCompletions) Since(ctx context.Context, since time.Time) (*domain.DailyStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &domain.DailyStats{Date: since}
	for _, e := range m.entries {
		if !e.CompletedAt.Before(since) {
			stats.Pomodoros++
			stats.FocusedMinutes += e.Minutes
		}
	}
	return stats, nil
}

var errBoom = errors.New("boom")

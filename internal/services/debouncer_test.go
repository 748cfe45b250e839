package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type writeRecorder struct {
	mu     sync.Mutex
	values []int
}

func (w *writeRecorder) write(ctx context.Context, v int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.values = append(w.values, v)
	return nil
}

func (w *writeRecorder) snapshot() []int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]int(nil), w.values...)
}

func TestDebouncer_BurstCoalescesToLatest(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := &writeRecorder{}
	d := NewDebouncer(clock, 500*time.Millisecond, rec.write)

	for i := 1; i <= 5; i++ {
		d.Schedule(i)
		clock.Advance(100 * time.Millisecond)
	}
	assert.Empty(t, rec.snapshot(), "nothing should be written inside the quiet window")
	assert.True(t, d.Pending())

	clock.Advance(399 * time.Millisecond)
	assert.Empty(t, rec.snapshot())

	clock.Advance(time.Millisecond)
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{5}, rec.snapshot())
	assert.False(t, d.Pending())
}

func TestDebouncer_FlushWritesImmediately(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := &writeRecorder{}
	d := NewDebouncer(clock, 500*time.Millisecond, rec.write)

	d.Schedule(1)
	d.Schedule(2)
	require.NoError(t, d.Flush(context.Background()))
	assert.Equal(t, []int{2}, rec.snapshot())

	// The cancelled timer must not write again.
	clock.Advance(time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []int{2}, rec.snapshot())
}

func TestDebouncer_FlushWithoutPending(t *testing.T) {
	rec := &writeRecorder{}
	d := NewDebouncer(clockwork.NewFakeClock(), 500*time.Millisecond, rec.write)

	require.NoError(t, d.Flush(context.Background()))
	assert.Empty(t, rec.snapshot())
}

func TestDebouncer_FlushReturnsWriteError(t *testing.T) {
	d := NewDebouncer(clockwork.NewFakeClock(), time.Second, func(ctx context.Context, v int) error {
		return errBoom
	})
	d.Schedule(1)
	assert.ErrorIs(t, d.Flush(context.Background()), errBoom)
}

func TestDebouncer_StaleCallbackIgnored(t *testing.T) {
	rec := &writeRecorder{}
	d := NewDebouncer(clockwork.NewFakeClock(), time.Second, rec.write)

	d.Schedule(1)
	d.mu.Lock()
	stale := d.gen
	d.mu.Unlock()
	d.Schedule(2)

	d.fire(stale)
	assert.Empty(t, rec.snapshot())
	assert.True(t, d.Pending())
}

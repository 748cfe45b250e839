package services

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Debouncer coalesces bursts of values into one write after a quiet
// window. It is a single slot: only the latest value is kept, and every
// Schedule cancels the pending timer before arming a new one.
type Debouncer[T any] struct {
	clock  clockwork.Clock
	window time.Duration
	write  func(ctx context.Context, v T) error

	// writeMu orders writes so an older value never lands after a newer one.
	writeMu sync.Mutex

	mu      sync.Mutex
	timer   clockwork.Timer
	gen     uint64
	pending *T
}

// NewDebouncer creates a debouncer that calls write once the window has
// passed without another Schedule.
func NewDebouncer[T any](clock clockwork.Clock, window time.Duration, write func(ctx context.Context, v T) error) *Debouncer[T] {
	return &Debouncer[T]{
		clock:  clock,
		window: window,
		write:  write,
	}
}

// Schedule replaces the pending value and restarts the quiet window.
func (d *Debouncer[T]) Schedule(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.pending = &v
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.window, func() { d.fire(gen) })
}

// Pending reports whether a write is waiting for the quiet window.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Flush cancels the timer and writes the pending value immediately.
// It returns the write error, or nil if nothing was pending.
func (d *Debouncer[T]) Flush(ctx context.Context) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	d.mu.Lock()
	d.stopLocked()
	v := d.pending
	d.pending = nil
	d.mu.Unlock()

	if v == nil {
		return nil
	}
	return d.write(ctx, *v)
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	v := *d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	// No caller is waiting on a timer write; write reports its own failures.
	_ = d.write(context.Background(), v)
}

// stopLocked cancels the armed timer and invalidates any callback that
// already fired but has not yet taken the lock.
func (d *Debouncer[T]) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

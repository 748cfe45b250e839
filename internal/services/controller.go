package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sahilm/fuzzy"
	"github.com/xvierd/pomodoro-cli/internal/domain"
	"github.com/xvierd/pomodoro-cli/internal/ports"
)

// TickInterval is the countdown granularity.
const TickInterval = time.Second

const completionWriteTimeout = 5 * time.Second

// Controller drives the work/break state machine. Every intent and every
// timer callback runs under one mutex, so the controller behaves as a
// single logical thread; side effects are dispatched after the lock is
// released.
type Controller struct {
	session     *SessionState
	clock       clockwork.Clock
	logger      *slog.Logger
	alerter     ports.Alerter
	title       ports.TitleSink
	completions ports.CompletionLog

	mu        sync.Mutex
	timer     domain.TimerState
	tick      clockwork.Timer
	tickGen   uint64
	version   uint64
	mounted   bool
	lastTitle string
	nextSub   int
	listeners map[int]func(domain.Snapshot)
}

// effects are side effects collected under the lock.
type effects struct {
	alert      *domain.Phase
	completion *domain.Completion
}

type dispatch struct {
	effects
	snapshot  domain.Snapshot
	listeners []func(domain.Snapshot)
}

// NewController creates a controller in the Work phase, stopped, with the
// countdown filled from the session configuration.
func NewController(session *SessionState, clock clockwork.Clock, logger *slog.Logger) *Controller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		session:   session,
		clock:     clock,
		logger:    logger,
		timer:     domain.NewTimerState(session.Config(), domain.PhaseWork),
		listeners: make(map[int]func(domain.Snapshot)),
	}
}

// SetAlerter sets the audible cue played when a phase runs out.
func (c *Controller) SetAlerter(a ports.Alerter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alerter = a
}

// SetTitleSink sets where the display title is written while mounted.
// The sink is called with the controller lock held and must not call back
// into the controller.
func (c *Controller) SetTitleSink(t ports.TitleSink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.title = t
}

// SetCompletionLog sets the log that receives completed work phases.
func (c *Controller) SetCompletionLog(l ports.CompletionLog) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completions = l
}

// Subscribe registers a listener called with a fresh snapshot after every
// state change. Listeners run outside the controller lock, possibly from a
// timer goroutine; use Snapshot.Version to discard out-of-order updates.
func (c *Controller) Subscribe(fn func(domain.Snapshot)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Mount starts reflecting the countdown in the display title.
func (c *Controller) Mount() {
	c.apply(func() effects {
		c.mounted = true
		c.lastTitle = ""
		return effects{}
	})
}

// Unmount stops the timer and restores the neutral title.
func (c *Controller) Unmount() {
	c.apply(func() effects {
		c.cancelTickLocked()
		c.timer.Running = false
		if c.mounted && c.title != nil {
			c.title.SetTitle(domain.NeutralTitle)
		}
		c.mounted = false
		c.lastTitle = ""
		return effects{}
	})
}

// Start resumes the countdown. It is a no-op when already running.
func (c *Controller) Start() {
	c.apply(func() effects {
		c.startLocked()
		return effects{}
	})
}

// Pause stops the countdown without touching the remaining time.
func (c *Controller) Pause() {
	c.apply(func() effects {
		c.pauseLocked()
		return effects{}
	})
}

// Toggle flips between running and paused.
func (c *Controller) Toggle() {
	c.apply(func() effects {
		if c.timer.Running {
			c.pauseLocked()
		} else {
			c.startLocked()
		}
		return effects{}
	})
}

// Tick applies one second of countdown. It does nothing while paused.
func (c *Controller) Tick() {
	c.apply(func() effects {
		if !c.timer.Running {
			return effects{}
		}
		return c.tickLocked()
	})
}

// SwitchPhase flips between Work and Break and stops the timer.
func (c *Controller) SwitchPhase() {
	c.apply(func() effects {
		c.switchPhaseLocked()
		return effects{}
	})
}

// Reset stops the timer and refills the current phase.
func (c *Controller) Reset() {
	c.apply(func() effects {
		c.resetLocked()
		return effects{}
	})
}

// SetWorkDuration changes the work length. Non-positive values are
// rejected and leave everything unchanged.
func (c *Controller) SetWorkDuration(minutes int) bool {
	return c.setDuration(domain.PhaseWork, minutes)
}

// SetBreakDuration changes the break length. Non-positive values are
// rejected and leave everything unchanged.
func (c *Controller) SetBreakDuration(minutes int) bool {
	return c.setDuration(domain.PhaseBreak, minutes)
}

// EditWorkDuration parses user text and applies it as the work length.
func (c *Controller) EditWorkDuration(text string) bool {
	minutes, ok := parseMinutes(text)
	if !ok {
		c.logger.Debug("rejected work duration edit", "value", text)
		return false
	}
	return c.SetWorkDuration(minutes)
}

// EditBreakDuration parses user text and applies it as the break length.
func (c *Controller) EditBreakDuration(text string) bool {
	minutes, ok := parseMinutes(text)
	if !ok {
		c.logger.Debug("rejected break duration edit", "value", text)
		return false
	}
	return c.SetBreakDuration(minutes)
}

// CycleTheme selects the next theme, wrapping after the last one.
func (c *Controller) CycleTheme() {
	c.apply(func() effects {
		c.session.UpdateConfig(func(cfg *domain.SessionConfig) {
			cfg.ThemeIndex = domain.NextThemeIndex(cfg.ThemeIndex)
		})
		return effects{}
	})
}

// SelectTheme selects the theme whose name best matches query.
func (c *Controller) SelectTheme(query string) error {
	idx, err := findTheme(query)
	if err != nil {
		return err
	}
	c.apply(func() effects {
		c.session.UpdateConfig(func(cfg *domain.SessionConfig) {
			cfg.ThemeIndex = idx
		})
		return effects{}
	})
	return nil
}

// ToggleAppearance flips between dark and light mode.
func (c *Controller) ToggleAppearance() {
	c.apply(func() effects {
		c.session.UpdateConfig(func(cfg *domain.SessionConfig) {
			cfg.DarkMode = !cfg.DarkMode
		})
		return effects{}
	})
}

// Running reports whether the countdown is active.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer.Running
}

func (c *Controller) setDuration(p domain.Phase, minutes int) bool {
	if err := domain.ValidateMinutes(minutes); err != nil {
		c.logger.Debug("rejected duration", "phase", p, "error", err)
		return false
	}
	c.apply(func() effects {
		c.session.UpdateConfig(func(cfg *domain.SessionConfig) {
			if p == domain.PhaseWork {
				cfg.WorkDurationMinutes = minutes
			} else {
				cfg.BreakDurationMinutes = minutes
			}
		})
		if c.timer.Phase == p {
			c.resetLocked()
		}
		return effects{}
	})
	return true
}

// apply runs mutate under the lock, then dispatches its side effects.
func (c *Controller) apply(mutate func() effects) {
	c.mu.Lock()
	fx := mutate()
	d := c.commitLocked(fx)
	c.mu.Unlock()

	c.dispatch(d)
}

func (c *Controller) startLocked() {
	if c.timer.Running {
		return
	}
	c.timer.Running = true
	c.scheduleTickLocked()
}

func (c *Controller) pauseLocked() {
	c.cancelTickLocked()
	c.timer.Running = false
}

func (c *Controller) resetLocked() {
	c.cancelTickLocked()
	c.timer = domain.NewTimerState(c.session.Config(), c.timer.Phase)
}

func (c *Controller) switchPhaseLocked() {
	c.cancelTickLocked()
	c.timer = domain.NewTimerState(c.session.Config(), c.timer.Phase.Next())
}

func (c *Controller) tickLocked() effects {
	var fx effects
	if c.timer.RemainingSeconds > 0 {
		c.timer.RemainingSeconds--
	}
	if c.timer.RemainingSeconds > 0 {
		return fx
	}

	finished := c.timer.Phase
	fx.alert = &finished
	if finished == domain.PhaseWork {
		minutes := c.session.Config().WorkDurationMinutes
		stats := c.session.RecordPomodoro(minutes)
		completion := domain.NewCompletion(minutes, c.clock.Now())
		fx.completion = &completion
		c.logger.Info("pomodoro completed",
			"minutes", minutes,
			"total", stats.PomodorosCompleted)
	} else {
		c.logger.Info("break finished")
	}
	c.switchPhaseLocked()
	return fx
}

// scheduleTickLocked arms the single tick timer. Any previous timer is
// cancelled first.
func (c *Controller) scheduleTickLocked() {
	c.cancelTickLocked()
	gen := c.tickGen
	c.tick = c.clock.AfterFunc(TickInterval, func() { c.onTick(gen) })
}

// cancelTickLocked stops the tick timer and bumps the generation so a
// callback that already fired is discarded.
func (c *Controller) cancelTickLocked() {
	if c.tick != nil {
		c.tick.Stop()
		c.tick = nil
	}
	c.tickGen++
}

func (c *Controller) onTick(gen uint64) {
	c.mu.Lock()
	if gen != c.tickGen || !c.timer.Running {
		c.mu.Unlock()
		return
	}
	c.tick = nil
	fx := c.tickLocked()
	if c.timer.Running {
		c.scheduleTickLocked()
	}
	d := c.commitLocked(fx)
	c.mu.Unlock()

	c.dispatch(d)
}

func (c *Controller) snapshotLocked() domain.Snapshot {
	return domain.Snapshot{
		Version: c.version,
		Timer:   c.timer,
		Config:  c.session.Config(),
		Stats:   c.session.Stats(),
	}
}

func (c *Controller) commitLocked(fx effects) dispatch {
	c.version++
	snap := c.snapshotLocked()

	if c.mounted && c.title != nil {
		if title := snap.Title(); title != c.lastTitle {
			c.title.SetTitle(title)
			c.lastTitle = title
		}
	}

	listeners := make([]func(domain.Snapshot), 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	return dispatch{effects: fx, snapshot: snap, listeners: listeners}
}

func (c *Controller) dispatch(d dispatch) {
	c.mu.Lock()
	alerter, completions := c.alerter, c.completions
	c.mu.Unlock()

	if d.alert != nil && alerter != nil {
		if err := alerter.Alert(*d.alert); err != nil {
			c.logger.Debug("alert failed", "phase", *d.alert, "error", err)
		}
	}
	if d.completion != nil && completions != nil {
		ctx, cancel := context.WithTimeout(context.Background(), completionWriteTimeout)
		if err := completions.Append(ctx, *d.completion); err != nil {
			c.logger.Warn("failed to record completion", "error", err)
		}
		cancel()
	}
	for _, l := range d.listeners {
		l(d.snapshot)
	}
}

func parseMinutes(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	return n, true
}

// findTheme resolves a theme name. An exact case-insensitive match wins;
// otherwise the best fuzzy match is used.
func findTheme(query string) (int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, fmt.Errorf("%w: empty name", domain.ErrUnknownTheme)
	}
	names := domain.ThemeNames()
	for i, name := range names {
		if strings.EqualFold(name, query) {
			return i, nil
		}
	}
	matches := fuzzy.Find(strings.ToLower(query), lowerAll(names))
	if len(matches) == 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownTheme, query)
	}
	return matches[0].Index, nil
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

// Ensure Controller implements ports.TimerControl.
var _ ports.TimerControl = (*Controller)(nil)

package services

import (
	"context"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/pomodoro-cli/internal/domain"
)

type controllerFixture struct {
	ctrl        *Controller
	session     *SessionState
	store       *memoryStore
	clock       fakeClock
	alerter     *recordingAlerter
	titles      *recordingTitles
	completions *memoryCompletions
}

func newControllerFixture(t *testing.T) *controllerFixture {
	t.Helper()
	store := newMemoryStore()
	clock := clockwork.NewFakeClock()
	session := NewSessionState(store, clock, DefaultSaveDebounce, nil)
	session.Init(context.Background())

	f := &controllerFixture{
		session:     session,
		store:       store,
		clock:       clock,
		alerter:     &recordingAlerter{},
		titles:      &recordingTitles{},
		completions: &memoryCompletions{},
	}
	f.ctrl = NewController(session, clock, nil)
	f.ctrl.SetAlerter(f.alerter)
	f.ctrl.SetTitleSink(f.titles)
	f.ctrl.SetCompletionLog(f.completions)
	return f
}

func (f *controllerFixture) ticks(n int) {
	for range n {
		f.ctrl.Tick()
	}
}

func TestController_InitialState(t *testing.T) {
	f := newControllerFixture(t)
	snap := f.ctrl.Snapshot()

	assert.Equal(t, domain.TimerState{Phase: domain.PhaseWork, RemainingSeconds: 1500, Running: false}, snap.Timer)
	assert.Equal(t, "25:00", snap.Clock())
	assert.Zero(t, snap.Progress())
}

func TestController_ToggleStartsAndPauses(t *testing.T) {
	f := newControllerFixture(t)

	f.ctrl.Toggle()
	assert.True(t, f.ctrl.Running())
	f.ctrl.Toggle()
	assert.False(t, f.ctrl.Running())

	f.ctrl.Start()
	f.ctrl.Start()
	assert.True(t, f.ctrl.Running())
	f.ctrl.Pause()
	assert.False(t, f.ctrl.Running())
}

func TestController_SetWorkDurationWhileStopped(t *testing.T) {
	for _, w := range []int{1, 5, 25, 60, 180} {
		f := newControllerFixture(t)
		require.True(t, f.ctrl.SetWorkDuration(w))

		snap := f.ctrl.Snapshot()
		assert.Equal(t, w*60, snap.Timer.RemainingSeconds, "work duration %d", w)
		assert.Equal(t, w, snap.Config.WorkDurationMinutes)
	}
}

func TestController_SetWorkDurationResetsRunningWorkPhase(t *testing.T) {
	f := newControllerFixture(t)
	f.ctrl.Start()
	f.ticks(10)

	require.True(t, f.ctrl.SetWorkDuration(30))
	snap := f.ctrl.Snapshot()
	assert.False(t, snap.Timer.Running)
	assert.Equal(t, 1800, snap.Timer.RemainingSeconds)
}

func TestController_SetBreakDurationKeepsWorkCountdown(t *testing.T) {
	f := newControllerFixture(t)
	f.ctrl.Start()
	f.ticks(10)

	require.True(t, f.ctrl.SetBreakDuration(10))
	snap := f.ctrl.Snapshot()
	assert.True(t, snap.Timer.Running)
	assert.Equal(t, 1490, snap.Timer.RemainingSeconds)
	assert.Equal(t, 10, snap.Config.BreakDurationMinutes)

	f.ctrl.SwitchPhase()
	assert.Equal(t, 600, f.ctrl.Snapshot().Timer.RemainingSeconds)
}

func TestController_RejectsInvalidDurations(t *testing.T) {
	f := newControllerFixture(t)

	assert.False(t, f.ctrl.SetWorkDuration(-5))
	assert.False(t, f.ctrl.SetWorkDuration(0))
	assert.False(t, f.ctrl.SetBreakDuration(-1))
	assert.False(t, f.ctrl.EditWorkDuration("abc"))
	assert.False(t, f.ctrl.EditBreakDuration(""))
	assert.False(t, f.ctrl.EditWorkDuration("2.5"))
	assert.False(t, f.ctrl.SetWorkDuration(domain.MaxDurationMinutes+1))
	assert.False(t, f.ctrl.SetBreakDuration(math.MaxInt/60+1))
	assert.False(t, f.ctrl.EditWorkDuration(strconv.Itoa(math.MaxInt/60+1)))

	snap := f.ctrl.Snapshot()
	assert.Equal(t, 25, snap.Config.WorkDurationMinutes)
	assert.Equal(t, 5, snap.Config.BreakDurationMinutes)
	assert.Equal(t, 1500, snap.Timer.RemainingSeconds)
	assert.False(t, f.session.SavePending())
}

func TestController_EditDurationParsesText(t *testing.T) {
	f := newControllerFixture(t)

	assert.True(t, f.ctrl.EditWorkDuration(" 30 "))
	assert.True(t, f.ctrl.EditBreakDuration("7"))

	snap := f.ctrl.Snapshot()
	assert.Equal(t, 30, snap.Config.WorkDurationMinutes)
	assert.Equal(t, 7, snap.Config.BreakDurationMinutes)
	assert.Equal(t, 1800, snap.Timer.RemainingSeconds)
}

func TestController_FullWorkPhase(t *testing.T) {
	f := newControllerFixture(t)
	f.ctrl.Start()
	f.ticks(1500)

	snap := f.ctrl.Snapshot()
	assert.Equal(t, domain.PhaseBreak, snap.Timer.Phase)
	assert.Equal(t, 300, snap.Timer.RemainingSeconds)
	assert.False(t, snap.Timer.Running)
	assert.Equal(t, domain.SessionStats{PomodorosCompleted: 1, TotalFocusedMinutes: 25}, snap.Stats)
	assert.Equal(t, []domain.Phase{domain.PhaseWork}, f.alerter.phases)
	require.Len(t, f.completions.entries, 1)
	assert.Equal(t, 25, f.completions.entries[0].Minutes)
}

func TestController_ZeroCrossingHappensOnce(t *testing.T) {
	f := newControllerFixture(t)
	require.True(t, f.ctrl.SetWorkDuration(1))
	f.ctrl.Start()

	f.ticks(59)
	snap := f.ctrl.Snapshot()
	assert.Equal(t, domain.PhaseWork, snap.Timer.Phase)
	assert.Equal(t, 1, snap.Timer.RemainingSeconds)
	assert.Equal(t, 0, f.alerter.count())

	f.ctrl.Tick()
	assert.Equal(t, 1, f.alerter.count())
	assert.Equal(t, domain.PhaseBreak, f.ctrl.Snapshot().Timer.Phase)

	// The switch paused the timer, so further ticks do nothing.
	f.ticks(100)
	snap = f.ctrl.Snapshot()
	assert.Equal(t, 1, f.alerter.count())
	assert.Equal(t, 300, snap.Timer.RemainingSeconds)
	assert.Equal(t, 1, snap.Stats.PomodorosCompleted)
}

func TestController_BreakCompletionDoesNotCount(t *testing.T) {
	f := newControllerFixture(t)
	f.ctrl.SwitchPhase()
	f.ctrl.Start()
	f.ticks(300)

	snap := f.ctrl.Snapshot()
	assert.Equal(t, domain.PhaseWork, snap.Timer.Phase)
	assert.Equal(t, 1500, snap.Timer.RemainingSeconds)
	assert.Equal(t, domain.SessionStats{}, snap.Stats)
	assert.Equal(t, []domain.Phase{domain.PhaseBreak}, f.alerter.phases)
	assert.Empty(t, f.completions.entries)
}

func TestController_AlertFailureIsIgnored(t *testing.T) {
	f := newControllerFixture(t)
	f.alerter.err = errBoom
	require.True(t, f.ctrl.SetWorkDuration(1))
	f.ctrl.Start()
	f.ticks(60)

	snap := f.ctrl.Snapshot()
	assert.Equal(t, domain.PhaseBreak, snap.Timer.Phase)
	assert.Equal(t, 1, snap.Stats.PomodorosCompleted)
}

func TestController_TickWhilePausedIsNoop(t *testing.T) {
	f := newControllerFixture(t)
	f.ticks(5)
	assert.Equal(t, 1500, f.ctrl.Snapshot().Timer.RemainingSeconds)
}

func TestController_ResetKeepsPhaseAndStats(t *testing.T) {
	f := newControllerFixture(t)
	require.True(t, f.ctrl.SetWorkDuration(1))
	f.ctrl.Start()
	f.ticks(60)
	f.ctrl.Start()
	f.ticks(30)

	before := f.ctrl.Snapshot()
	f.ctrl.Reset()
	after := f.ctrl.Snapshot()

	assert.Equal(t, before.Timer.Phase, after.Timer.Phase)
	assert.Equal(t, before.Stats, after.Stats)
	assert.False(t, after.Timer.Running)
	assert.Equal(t, 300, after.Timer.RemainingSeconds)
}

func TestController_SwitchPhaseStops(t *testing.T) {
	f := newControllerFixture(t)
	f.ctrl.Start()
	f.ticks(3)

	f.ctrl.SwitchPhase()
	snap := f.ctrl.Snapshot()
	assert.Equal(t, domain.TimerState{Phase: domain.PhaseBreak, RemainingSeconds: 300}, snap.Timer)
	assert.Equal(t, domain.SessionStats{}, snap.Stats)

	f.ctrl.SwitchPhase()
	assert.Equal(t, domain.PhaseWork, f.ctrl.Snapshot().Timer.Phase)
}

func TestController_StatsNeverDecrease(t *testing.T) {
	f := newControllerFixture(t)
	require.True(t, f.ctrl.SetWorkDuration(1))
	require.True(t, f.ctrl.SetBreakDuration(1))

	prev := f.ctrl.Snapshot().Stats
	ops := []func(){
		f.ctrl.Start,
		func() { f.ticks(60) },
		f.ctrl.Reset,
		f.ctrl.SwitchPhase,
		f.ctrl.Start,
		func() { f.ticks(45) },
		func() { f.ctrl.SetWorkDuration(2) },
		f.ctrl.CycleTheme,
		f.ctrl.ToggleAppearance,
		f.ctrl.Start,
		func() { f.ticks(200) },
		f.ctrl.SwitchPhase,
	}
	for _, op := range ops {
		op()
		cur := f.ctrl.Snapshot().Stats
		assert.GreaterOrEqual(t, cur.PomodorosCompleted, prev.PomodorosCompleted)
		assert.GreaterOrEqual(t, cur.TotalFocusedMinutes, prev.TotalFocusedMinutes)
		prev = cur
	}
}

func TestController_CycleThemeWraps(t *testing.T) {
	f := newControllerFixture(t)
	start := f.ctrl.Snapshot().Config.ThemeIndex

	f.ctrl.CycleTheme()
	assert.Equal(t, 1, f.ctrl.Snapshot().Config.ThemeIndex)

	for i := 1; i < len(domain.Themes); i++ {
		f.ctrl.CycleTheme()
	}
	assert.Equal(t, start, f.ctrl.Snapshot().Config.ThemeIndex)
}

func TestController_SelectTheme(t *testing.T) {
	f := newControllerFixture(t)

	require.NoError(t, f.ctrl.SelectTheme("oce"))
	assert.Equal(t, "Ocean", f.ctrl.Snapshot().Theme().Name)

	require.NoError(t, f.ctrl.SelectTheme("SUNSET"))
	assert.Equal(t, 3, f.ctrl.Snapshot().Config.ThemeIndex)

	assert.ErrorIs(t, f.ctrl.SelectTheme("xyzzy"), domain.ErrUnknownTheme)
	assert.ErrorIs(t, f.ctrl.SelectTheme("  "), domain.ErrUnknownTheme)
	assert.Equal(t, 3, f.ctrl.Snapshot().Config.ThemeIndex)
}

func TestController_ToggleAppearance(t *testing.T) {
	f := newControllerFixture(t)
	assert.True(t, f.ctrl.Snapshot().Config.DarkMode)
	f.ctrl.ToggleAppearance()
	assert.False(t, f.ctrl.Snapshot().Config.DarkMode)
	f.ctrl.ToggleAppearance()
	assert.True(t, f.ctrl.Snapshot().Config.DarkMode)
}

func TestController_MutationsArePersisted(t *testing.T) {
	f := newControllerFixture(t)
	f.ctrl.SetWorkDuration(40)
	f.ctrl.CycleTheme()
	f.ctrl.ToggleAppearance()
	require.NoError(t, f.session.Teardown(context.Background()))

	cfg, _, err := domain.DecodeSettings(f.store.value(domain.SettingsKey))
	require.NoError(t, err)
	assert.Equal(t, domain.SessionConfig{WorkDurationMinutes: 40, BreakDurationMinutes: 5, ThemeIndex: 1, DarkMode: false}, cfg)
	assert.Equal(t, 1, f.store.setCount())
}

func TestController_TitleWhileMounted(t *testing.T) {
	f := newControllerFixture(t)

	f.ctrl.Start()
	assert.Empty(t, f.titles.titles, "no title before mount")

	f.ctrl.Mount()
	assert.Equal(t, "25:00 - Work", f.titles.last())

	f.ctrl.Tick()
	assert.Equal(t, "24:59 - Work", f.titles.last())

	f.ctrl.CycleTheme()
	assert.Len(t, f.titles.titles, 2, "unchanged title is not rewritten")

	f.ctrl.SwitchPhase()
	assert.Equal(t, "05:00 - Break", f.titles.last())

	f.ctrl.Unmount()
	assert.Equal(t, domain.NeutralTitle, f.titles.last())
	assert.False(t, f.ctrl.Running())
}

func TestController_SubscribeReceivesSnapshots(t *testing.T) {
	f := newControllerFixture(t)

	var got []domain.Snapshot
	unsubscribe := f.ctrl.Subscribe(func(s domain.Snapshot) { got = append(got, s) })

	f.ctrl.Start()
	f.ctrl.Tick()
	require.Len(t, got, 2)
	assert.Less(t, got[0].Version, got[1].Version)
	assert.Equal(t, 1499, got[1].Timer.RemainingSeconds)

	unsubscribe()
	f.ctrl.Tick()
	assert.Len(t, got, 2)
}

func TestController_ScheduledTicks(t *testing.T) {
	f := newControllerFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	f.ctrl.Start()
	require.NoError(t, f.clock.BlockUntilContext(ctx, 1))

	for i := 0; i < 3; i++ {
		f.clock.Advance(TickInterval)
		require.NoError(t, f.clock.BlockUntilContext(ctx, 1), "tick should re-arm")
	}
	assert.Equal(t, 1497, f.ctrl.Snapshot().Timer.RemainingSeconds)

	f.ctrl.Pause()
	require.NoError(t, f.clock.BlockUntilContext(ctx, 0), "pause cancels the pending tick")
	f.clock.Advance(10 * TickInterval)
	assert.Equal(t, 1497, f.ctrl.Snapshot().Timer.RemainingSeconds)
}

func TestController_ScheduledTickRunsDownToBreak(t *testing.T) {
	f := newControllerFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.True(t, f.ctrl.SetWorkDuration(1))
	f.ctrl.Start()
	for i := 0; i < 59; i++ {
		require.NoError(t, f.clock.BlockUntilContext(ctx, 1))
		f.clock.Advance(TickInterval)
	}
	require.NoError(t, f.clock.BlockUntilContext(ctx, 1))
	f.clock.Advance(TickInterval)

	require.Eventually(t, func() bool {
		return f.ctrl.Snapshot().Timer.Phase == domain.PhaseBreak
	}, time.Second, 5*time.Millisecond)
	assert.False(t, f.ctrl.Running())
	assert.Equal(t, 1, f.alerter.count())
}

func TestController_StaleTickIsDiscarded(t *testing.T) {
	f := newControllerFixture(t)
	f.ctrl.Start()

	f.ctrl.mu.Lock()
	stale := f.ctrl.tickGen
	f.ctrl.mu.Unlock()

	f.ctrl.SetWorkDuration(10)
	f.ctrl.Start()
	f.ctrl.onTick(stale)

	assert.Equal(t, 600, f.ctrl.Snapshot().Timer.RemainingSeconds)
}

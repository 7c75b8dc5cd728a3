package timer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestCountdown(t *testing.T) {
	clock := newFakeClock()
	tm, err := NewCountdown(10*time.Second, clock)
	require.NoError(t, err)

	s := tm.Snapshot()
	assert.Equal(t, StateIdle, s.State)
	assert.Equal(t, 10*time.Second, s.Remaining)

	require.NoError(t, tm.Start())
	clock.Advance(3 * time.Second)
	require.NoError(t, tm.Pause())

	clock.Advance(time.Hour)
	s = tm.Snapshot()
	assert.Equal(t, StatePaused, s.State)
	assert.Equal(t, 3*time.Second, s.Elapsed, "paused time does not count")
	assert.Equal(t, 7*time.Second, s.Remaining)

	require.NoError(t, tm.Resume())
	clock.Advance(8 * time.Second)
	s = tm.Snapshot()
	assert.Equal(t, StateFinished, s.State)
	assert.Equal(t, time.Duration(0), s.Remaining)
	assert.Equal(t, 10*time.Second, s.Elapsed)

	assert.ErrorIs(t, tm.Pause(), ErrInvalidTransition)

	tm.Reset()
	s = tm.Snapshot()
	assert.Equal(t, StateIdle, s.State)
	assert.Equal(t, 10*time.Second, s.Remaining)
}

func TestCountdown_InvalidDuration(t *testing.T) {
	_, err := NewCountdown(0, nil)
	require.Error(t, err)
}

func TestTransitions(t *testing.T) {
	tm := NewStopwatch(newFakeClock())

	assert.ErrorIs(t, tm.Pause(), ErrInvalidTransition)
	assert.ErrorIs(t, tm.Resume(), ErrInvalidTransition)
	require.NoError(t, tm.Start())
	assert.ErrorIs(t, tm.Start(), ErrInvalidTransition)
	assert.ErrorIs(t, tm.Resume(), ErrInvalidTransition)
	assert.ErrorIs(t, tm.Skip(), ErrInvalidTransition)
}

func TestStopwatchLaps(t *testing.T) {
	clock := newFakeClock()
	tm := NewStopwatch(clock)

	_, err := tm.Lap()
	assert.ErrorIs(t, err, ErrInvalidTransition, "lap before start")

	require.NoError(t, tm.Start())
	clock.Advance(1500 * time.Millisecond)
	lap1, err := tm.Lap()
	require.NoError(t, err)
	clock.Advance(2 * time.Second)
	lap2, err := tm.Lap()
	require.NoError(t, err)

	assert.Equal(t, Lap{Number: 1, Split: 1500 * time.Millisecond, Total: 1500 * time.Millisecond}, lap1)
	assert.Equal(t, Lap{Number: 2, Split: 2 * time.Second, Total: 3500 * time.Millisecond}, lap2)

	s := tm.Snapshot()
	assert.Equal(t, StateRunning, s.State)
	assert.Len(t, s.Laps, 2)
	assert.Equal(t, time.Duration(0), s.Remaining)

	tm.Reset()
	assert.Empty(t, tm.Snapshot().Laps)
}

func TestPomodoroCycle(t *testing.T) {
	clock := newFakeClock()
	cfg := PomodoroConfig{Work: 25 * time.Minute, ShortBreak: 5 * time.Minute, LongBreak: 15 * time.Minute, LongBreakEvery: 2}
	tm, err := NewPomodoro(cfg, clock)
	require.NoError(t, err)
	require.NoError(t, tm.Start())

	clock.Advance(24 * time.Minute)
	s := tm.Snapshot()
	assert.Equal(t, PhaseWork, s.Phase)
	assert.Equal(t, time.Minute, s.Remaining)

	clock.Advance(2 * time.Minute)
	s = tm.Snapshot()
	assert.Equal(t, PhaseShortBreak, s.Phase)
	assert.Equal(t, 1, s.CompletedSessions)
	assert.Equal(t, time.Minute, s.Elapsed, "overshoot carries into the break")

	// Rest of the break, then a second work session: long break is due.
	clock.Advance(4*time.Minute + 25*time.Minute)
	s = tm.Snapshot()
	assert.Equal(t, PhaseLongBreak, s.Phase)
	assert.Equal(t, 2, s.CompletedSessions)
	assert.Equal(t, 15*time.Minute, s.Remaining)
	assert.Equal(t, StateRunning, s.State, "pomodoro never finishes on its own")
}

func TestPomodoroSkipAndReset(t *testing.T) {
	clock := newFakeClock()
	tm, err := NewPomodoro(DefaultPomodoro, clock)
	require.NoError(t, err)
	require.NoError(t, tm.Start())

	clock.Advance(10 * time.Minute)
	require.NoError(t, tm.Skip())
	s := tm.Snapshot()
	assert.Equal(t, PhaseShortBreak, s.Phase)
	assert.Equal(t, time.Duration(0), s.Elapsed)
	assert.Equal(t, 1, s.CompletedSessions)

	tm.Reset()
	s = tm.Snapshot()
	assert.Equal(t, PhaseWork, s.Phase)
	assert.Equal(t, 0, s.CompletedSessions)
	assert.Equal(t, StateIdle, s.State)
}

func TestPomodoro_InvalidConfig(t *testing.T) {
	_, err := NewPomodoro(PomodoroConfig{Work: time.Minute, ShortBreak: time.Minute, LongBreak: time.Minute}, nil)
	require.Error(t, err)

	_, err = NewPomodoro(PomodoroConfig{Work: 0, ShortBreak: time.Minute, LongBreak: time.Minute, LongBreakEvery: 4}, nil)
	require.Error(t, err)
}

func TestRun_StopsWhenCountdownFinishes(t *testing.T) {
	tm, err := NewCountdown(30*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, tm.Start())

	var ticks []Snapshot
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = Run(ctx, tm, 5*time.Millisecond, func(s Snapshot) { ticks = append(ticks, s) })
	require.NoError(t, err)
	require.NotEmpty(t, ticks)
	assert.Equal(t, StateFinished, ticks[len(ticks)-1].State)
}

func TestRun_StopsOnContext(t *testing.T) {
	tm := NewStopwatch(nil)
	require.NoError(t, tm.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := Run(ctx, tm, 5*time.Millisecond, func(Snapshot) {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Error(t, Run(context.Background(), tm, 0, func(Snapshot) {}))
}

func TestWorldClock(t *testing.T) {
	at := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	rows, err := WorldClock(at, []string{"Asia/Tokyo", "UTC", "America/New_York"})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "America/New_York", rows[0].Zone)
	assert.Equal(t, -300, rows[0].OffsetMinutes)
	assert.Equal(t, 7, rows[0].Time.Hour())
	assert.Equal(t, "UTC", rows[1].Zone)
	assert.Equal(t, "Asia/Tokyo", rows[2].Zone)
	assert.Equal(t, 21, rows[2].Time.Hour())

	_, err = WorldClock(at, []string{"Mars/Olympus"})
	require.Error(t, err)

	rows, err = WorldClock(at, nil)
	require.NoError(t, err)
	assert.Len(t, rows, len(DefaultZones))
}

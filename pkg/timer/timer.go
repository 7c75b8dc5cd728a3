// Package timer is the state machine behind the countdown, stopwatch and
// Pomodoro widget.
//
// A Timer does not own a goroutine. Elapsed time is derived from an
// injected Clock whenever the timer is observed, and Run drives periodic
// observation for callers that want ticks.
package timer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

// Mode selects the timer behavior.
type Mode string

const (
	ModeCountdown Mode = "countdown"
	ModeStopwatch Mode = "stopwatch"
	ModePomodoro  Mode = "pomodoro"
)

// State is the lifecycle state of a Timer.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateFinished State = "finished"
)

// Phase is the current Pomodoro phase.
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// ErrInvalidTransition is returned when an operation does not apply to the
// current state or mode.
var ErrInvalidTransition = errors.New("invalid timer transition")

// PomodoroConfig sets the phase lengths and how often the long break comes.
type PomodoroConfig struct {
	Work           time.Duration `json:"work" yaml:"work"`
	ShortBreak     time.Duration `json:"short_break" yaml:"short_break"`
	LongBreak      time.Duration `json:"long_break" yaml:"long_break"`
	LongBreakEvery int           `json:"long_break_every" yaml:"long_break_every"`
}

// DefaultPomodoro is the classic 25/5/15 cycle with a long break every four sessions.
var DefaultPomodoro = PomodoroConfig{
	Work:           25 * time.Minute,
	ShortBreak:     5 * time.Minute,
	LongBreak:      15 * time.Minute,
	LongBreakEvery: 4,
}

func (c PomodoroConfig) validate() error {
	if c.Work <= 0 || c.ShortBreak <= 0 || c.LongBreak <= 0 {
		return fmt.Errorf("pomodoro phases must be positive")
	}
	if c.LongBreakEvery < 1 {
		return fmt.Errorf("long_break_every must be at least 1")
	}
	return nil
}

func (c PomodoroConfig) length(p Phase) time.Duration {
	switch p {
	case PhaseShortBreak:
		return c.ShortBreak
	case PhaseLongBreak:
		return c.LongBreak
	default:
		return c.Work
	}
}

// Lap is a stopwatch split.
type Lap struct {
	Number int           `json:"number"`
	Split  time.Duration `json:"split"`
	Total  time.Duration `json:"total"`
}

// Snapshot is a consistent view of a Timer.
type Snapshot struct {
	Mode    Mode          `json:"mode"`
	State   State         `json:"state"`
	Elapsed time.Duration `json:"elapsed"`
	// Remaining is zero for stopwatches.
	Remaining time.Duration `json:"remaining"`
	Laps      []Lap         `json:"laps,omitempty"`

	Phase             Phase `json:"phase,omitempty"`
	CompletedSessions int   `json:"completed_sessions,omitempty"`
}

// Timer is safe for concurrent use.
type Timer struct {
	mu    sync.Mutex
	clock Clock
	mode  Mode

	duration time.Duration // countdown length
	pomodoro PomodoroConfig

	state     State
	startedAt time.Time     // start of the current running stretch
	banked    time.Duration // elapsed before startedAt, within the current phase
	laps      []Lap

	phase     Phase
	completed int
}

// NewCountdown creates a countdown of length d. A nil clock means SystemClock.
func NewCountdown(d time.Duration, clock Clock) (*Timer, error) {
	if d <= 0 {
		return nil, fmt.Errorf("countdown duration must be positive, got %s", d)
	}
	return newTimer(ModeCountdown, clock, func(t *Timer) { t.duration = d }), nil
}

// NewStopwatch creates a stopwatch. A nil clock means SystemClock.
func NewStopwatch(clock Clock) *Timer {
	return newTimer(ModeStopwatch, clock, nil)
}

// NewPomodoro creates a Pomodoro timer starting in the work phase.
func NewPomodoro(cfg PomodoroConfig, clock Clock) (*Timer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return newTimer(ModePomodoro, clock, func(t *Timer) {
		t.pomodoro = cfg
		t.phase = PhaseWork
	}), nil
}

func newTimer(mode Mode, clock Clock, init func(*Timer)) *Timer {
	if clock == nil {
		clock = SystemClock
	}
	t := &Timer{clock: clock, mode: mode, state: StateIdle}
	if init != nil {
		init(t)
	}
	return t
}

// Start begins timing from idle.
func (t *Timer) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateIdle {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, t.state)
	}
	t.state = StateRunning
	t.startedAt = t.clock.Now()
	return nil
}

// Pause freezes elapsed time.
func (t *Timer) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.clock.Now()
	t.advance(now)
	if t.state != StateRunning {
		return fmt.Errorf("%w: pause from %s", ErrInvalidTransition, t.state)
	}
	t.banked += now.Sub(t.startedAt)
	t.state = StatePaused
	return nil
}

// Resume continues after Pause.
func (t *Timer) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StatePaused {
		return fmt.Errorf("%w: resume from %s", ErrInvalidTransition, t.state)
	}
	t.state = StateRunning
	t.startedAt = t.clock.Now()
	return nil
}

// Reset returns the timer to idle, clearing laps and Pomodoro progress.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = StateIdle
	t.banked = 0
	t.laps = nil
	t.completed = 0
	if t.mode == ModePomodoro {
		t.phase = PhaseWork
	}
}

// Lap records a split on a running stopwatch.
func (t *Timer) Lap() (Lap, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.mode != ModeStopwatch || t.state != StateRunning {
		return Lap{}, fmt.Errorf("%w: lap needs a running stopwatch", ErrInvalidTransition)
	}

	total := t.elapsed(t.clock.Now())
	var prev time.Duration
	if n := len(t.laps); n > 0 {
		prev = t.laps[n-1].Total
	}
	lap := Lap{Number: len(t.laps) + 1, Split: total - prev, Total: total}
	t.laps = append(t.laps, lap)
	return lap, nil
}

// Skip ends the current Pomodoro phase early and moves to the next one.
func (t *Timer) Skip() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.mode != ModePomodoro {
		return fmt.Errorf("%w: skip needs a pomodoro timer", ErrInvalidTransition)
	}
	now := t.clock.Now()
	t.advance(now)
	t.nextPhase()
	t.banked = 0
	t.startedAt = now
	return nil
}

// Snapshot reports the current state, first applying any countdown finish
// or Pomodoro phase change that is due.
func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	t.advance(now)

	s := Snapshot{
		Mode:    t.mode,
		State:   t.state,
		Elapsed: t.elapsed(now),
	}
	switch t.mode {
	case ModeCountdown:
		s.Remaining = t.duration - s.Elapsed
	case ModePomodoro:
		s.Phase = t.phase
		s.CompletedSessions = t.completed
		s.Remaining = t.pomodoro.length(t.phase) - s.Elapsed
	case ModeStopwatch:
		s.Laps = append([]Lap(nil), t.laps...)
	}
	if s.Remaining < 0 {
		s.Remaining = 0
	}
	return s
}

// elapsed is the time spent running in the current phase.
func (t *Timer) elapsed(now time.Time) time.Duration {
	if t.state == StateRunning {
		return t.banked + now.Sub(t.startedAt)
	}
	return t.banked
}

// advance finishes a due countdown and rolls over due Pomodoro phases,
// carrying any overshoot into the next phase.
func (t *Timer) advance(now time.Time) {
	if t.state != StateRunning {
		return
	}
	switch t.mode {
	case ModeCountdown:
		if t.elapsed(now) >= t.duration {
			t.state = StateFinished
			t.banked = t.duration
		}
	case ModePomodoro:
		for {
			length := t.pomodoro.length(t.phase)
			over := t.elapsed(now) - length
			if over < 0 {
				return
			}
			t.nextPhase()
			t.banked = over
			t.startedAt = now
		}
	}
}

func (t *Timer) nextPhase() {
	if t.phase != PhaseWork {
		t.phase = PhaseWork
		return
	}
	t.completed++
	if t.completed%t.pomodoro.LongBreakEvery == 0 {
		t.phase = PhaseLongBreak
	} else {
		t.phase = PhaseShortBreak
	}
}

// Run calls fn with a fresh snapshot every interval until ctx ends or a
// countdown finishes. The final snapshot of a finished countdown is
// delivered before Run returns nil.
func Run(ctx context.Context, t *Timer, interval time.Duration, fn func(Snapshot)) error {
	if interval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s := t.Snapshot()
			fn(s)
			if s.State == StateFinished {
				return nil
			}
		}
	}
}

package idle

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultTimeout is how long without input before the user is marked offline.
const DefaultTimeout = 10 * time.Minute

type State int

const (
	StateStopped State = iota
	StateArmed
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateArmed:
		return "armed"
	case StateExpired:
		return "expired"
	default:
		return "stopped"
	}
}

// Timer is the part of *time.Timer the monitor needs.
type Timer interface {
	Stop() bool
}

// ScheduleFunc runs f after d. time.AfterFunc satisfies it.
type ScheduleFunc func(d time.Duration, f func()) Timer

func afterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Monitor fires onIdle once the input stream has been quiet for the
// timeout. Every Touch cancels the pending deadline and sets a new one.
type Monitor struct {
	timeout  time.Duration
	onIdle   func()
	schedule ScheduleFunc

	mu       sync.Mutex
	state    State
	timer    Timer
	gen      uint64
	deadline time.Time
	now      func() time.Time
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithScheduler overrides how deadlines are scheduled (for testing).
func WithScheduler(s ScheduleFunc) Option {
	return func(m *Monitor) { m.schedule = s }
}

// WithClock overrides the time source used for Deadline.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

func New(timeout time.Duration, onIdle func(), opts ...Option) *Monitor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	m := &Monitor{
		timeout:  timeout,
		onIdle:   onIdle,
		schedule: afterFunc,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start arms the monitor at session start.
func (m *Monitor) Start() {
	m.Touch()
}

// Touch records user activity.
func (m *Monitor) Touch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rearm()
}

// Stop cancels any pending deadline. Later Touch calls re-arm.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.gen++
	m.state = StateStopped
	m.deadline = time.Time{}
}

func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Deadline is when the monitor will fire, or zero when not armed.
func (m *Monitor) Deadline() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deadline
}

// rearm cancels the pending timer and schedules a new one. Caller holds mu.
func (m *Monitor) rearm() {
	if m.timer != nil {
		m.timer.Stop()
	}
	m.gen++
	gen := m.gen
	m.state = StateArmed
	m.deadline = m.now().Add(m.timeout)
	m.timer = m.schedule(m.timeout, func() { m.fire(gen) })
}

func (m *Monitor) fire(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || m.state != StateArmed {
		// Superseded by a Touch or Stop after this timer was created.
		m.mu.Unlock()
		return
	}
	m.state = StateExpired
	m.timer = nil
	m.deadline = time.Time{}
	m.mu.Unlock()

	slog.Info("no activity, marking user offline", "timeout", m.timeout)
	if m.onIdle != nil {
		m.onIdle()
	}
}

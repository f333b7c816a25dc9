// Package stopwatch implements the elapsed-time state machine behind the
// stopwatch display. It knows nothing about rendering or scheduling: callers
// drive it through Start, Stop and Reset and poll Elapsed whenever they need
// to redraw.
package stopwatch

import "time"

// State is the run state of an Engine.
type State int

const (
	// Idle means never started or freshly reset.
	Idle State = iota
	// Running means the current run segment is accumulating.
	Running
	// Paused means stopped with time on the clock; Start resumes.
	Paused
)

// String returns the string representation of the State.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Engine accumulates elapsed time across run segments.
//
// An Engine has a single owner and does no locking of its own. Callers that
// share one between goroutines must serialize every call, including Elapsed.
// Redundant calls (Start while running, Stop while not) are no-ops so that a
// UI can forward repeated input without checking state first.
type Engine struct {
	clock        Clock
	accumulated  time.Duration
	runStartedAt time.Time
	state        State
	segments     int
}

// New creates an Idle engine reading from clock. A nil clock falls back to
// MonotonicClock.
func New(clock Clock) *Engine {
	if clock == nil {
		clock = MonotonicClock{}
	}
	return &Engine{clock: clock}
}

// Start begins or resumes a run segment.
func (e *Engine) Start() {
	if e.state == Running {
		return
	}
	e.runStartedAt = e.clock.Now()
	e.state = Running
	e.segments++
}

// Stop folds the current run segment into the accumulated total and pauses.
func (e *Engine) Stop() {
	if e.state != Running {
		return
	}
	e.accumulated += e.segment(e.clock.Now())
	e.runStartedAt = time.Time{}
	e.state = Paused
}

// Reset stops any running segment and zeroes the total.
func (e *Engine) Reset() {
	e.Stop()
	e.accumulated = 0
	e.segments = 0
	e.state = Idle
}

// Elapsed returns the total elapsed time without changing state. While
// running it includes the live segment.
func (e *Engine) Elapsed() time.Duration {
	if e.state != Running {
		return e.accumulated
	}
	return e.accumulated + e.segment(e.clock.Now())
}

// State returns the current run state.
func (e *Engine) State() State {
	return e.state
}

// Running reports whether a run segment is in progress.
func (e *Engine) Running() bool {
	return e.state == Running
}

// Segments returns the number of run segments since the last reset.
func (e *Engine) Segments() int {
	return e.segments
}

// segment is the length of the live run segment at now. A clock that went
// backwards yields zero rather than eating into the accumulated total.
func (e *Engine) segment(now time.Time) time.Duration {
	d := now.Sub(e.runStartedAt)
	if d < 0 {
		return 0
	}
	return d
}

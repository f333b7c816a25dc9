package stopwatch

import (
	"regexp"
	"testing"
	"time"
)

func newTestEngine() (*Engine, *ManualClock) {
	clock := NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return New(clock), clock
}

func TestNew_StartsIdle(t *testing.T) {
	e, _ := newTestEngine()

	if e.State() != Idle {
		t.Errorf("State() = %v, want Idle", e.State())
	}
	if got := e.Elapsed(); got != 0 {
		t.Errorf("Elapsed() = %v, want 0", got)
	}
}

func TestNew_NilClock(t *testing.T) {
	e := New(nil)
	e.Start()
	e.Stop()

	if e.State() != Paused {
		t.Errorf("State() = %v, want Paused", e.State())
	}
	if e.Elapsed() < 0 {
		t.Errorf("Elapsed() = %v, want >= 0", e.Elapsed())
	}
}

func TestScenarioA_SingleSegment(t *testing.T) {
	e, clock := newTestEngine()

	e.Start()
	clock.Advance(1500 * time.Millisecond)
	e.Stop()

	if got := e.Elapsed(); got != 1500*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 1.5s", got)
	}
	if got := Format(e.Elapsed()); got != "00:00:01.50" {
		t.Errorf("Format() = %q, want %q", got, "00:00:01.50")
	}
}

func TestScenarioB_AccumulatesSegments(t *testing.T) {
	e, clock := newTestEngine()

	e.Start()
	clock.Advance(time.Second)
	e.Stop()

	// Paused time must not count.
	clock.Advance(10 * time.Second)

	e.Start()
	clock.Advance(2 * time.Second)
	e.Stop()

	if got := e.Elapsed(); got != 3*time.Second {
		t.Errorf("Elapsed() = %v, want 3s", got)
	}
	if got := e.Segments(); got != 2 {
		t.Errorf("Segments() = %d, want 2", got)
	}
}

func TestScenarioC_ResetWhileRunning(t *testing.T) {
	e, clock := newTestEngine()

	e.Start()
	clock.Advance(500 * time.Millisecond)
	e.Reset()

	if got := e.Elapsed(); got != 0 {
		t.Errorf("Elapsed() = %v, want 0", got)
	}
	if e.State() != Idle {
		t.Errorf("State() = %v, want Idle", e.State())
	}

	clock.Advance(time.Second)
	if got := e.Elapsed(); got != 0 {
		t.Errorf("Elapsed() after reset = %v, want 0", got)
	}
}

func TestScenarioD_LiveElapsed(t *testing.T) {
	e, clock := newTestEngine()

	e.Start()
	clock.Advance(750 * time.Millisecond)

	if got := e.Elapsed(); got != 750*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 750ms", got)
	}
	if e.State() != Running {
		t.Errorf("State() = %v, want Running", e.State())
	}
}

func TestStart_Idempotent(t *testing.T) {
	e, clock := newTestEngine()

	e.Start()
	clock.Advance(300 * time.Millisecond)
	e.Start()
	clock.Advance(200 * time.Millisecond)

	if got := e.Elapsed(); got != 500*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 500ms", got)
	}
	if got := e.Segments(); got != 1 {
		t.Errorf("Segments() = %d, want 1", got)
	}
}

func TestStop_Idempotent(t *testing.T) {
	tests := []struct {
		name  string
		setup func(e *Engine, c *ManualClock)
		want  time.Duration
		state State
	}{
		{
			name:  "Idle",
			setup: func(e *Engine, c *ManualClock) {},
			want:  0,
			state: Idle,
		},
		{
			name: "Paused",
			setup: func(e *Engine, c *ManualClock) {
				e.Start()
				c.Advance(time.Second)
				e.Stop()
			},
			want:  time.Second,
			state: Paused,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, clock := newTestEngine()
			tt.setup(e, clock)

			clock.Advance(time.Minute)
			e.Stop()
			e.Stop()

			if got := e.Elapsed(); got != tt.want {
				t.Errorf("Elapsed() = %v, want %v", got, tt.want)
			}
			if e.State() != tt.state {
				t.Errorf("State() = %v, want %v", e.State(), tt.state)
			}
		})
	}
}

func TestReset_FromEveryState(t *testing.T) {
	tests := []struct {
		name  string
		setup func(e *Engine, c *ManualClock)
	}{
		{"Idle", func(e *Engine, c *ManualClock) {}},
		{"Running", func(e *Engine, c *ManualClock) {
			e.Start()
			c.Advance(time.Second)
		}},
		{"Paused", func(e *Engine, c *ManualClock) {
			e.Start()
			c.Advance(time.Second)
			e.Stop()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, clock := newTestEngine()
			tt.setup(e, clock)

			e.Reset()

			if got := e.Elapsed(); got != 0 {
				t.Errorf("Elapsed() = %v, want 0", got)
			}
			if e.State() != Idle {
				t.Errorf("State() = %v, want Idle", e.State())
			}
			if e.Segments() != 0 {
				t.Errorf("Segments() = %d, want 0", e.Segments())
			}
		})
	}
}

func TestReset_ThenReuse(t *testing.T) {
	e, clock := newTestEngine()

	e.Start()
	clock.Advance(time.Hour)
	e.Reset()

	e.Start()
	clock.Advance(250 * time.Millisecond)
	e.Stop()

	if got := e.Elapsed(); got != 250*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 250ms", got)
	}
}

func TestElapsed_MonotonicAcrossOperations(t *testing.T) {
	e, clock := newTestEngine()

	ops := []func(){
		e.Start,
		func() { clock.Advance(10 * time.Millisecond) },
		e.Stop,
		e.Stop,
		func() { clock.Advance(time.Second) },
		e.Start,
		e.Start,
		func() { clock.Advance(7 * time.Millisecond) },
		e.Stop,
		e.Start,
		func() { clock.Advance(time.Millisecond) },
	}

	var prev time.Duration
	for i, op := range ops {
		op()
		got := e.Elapsed()
		if got < prev {
			t.Fatalf("step %d: Elapsed() decreased from %v to %v", i, prev, got)
		}
		prev = got
	}

	if prev != 18*time.Millisecond {
		t.Errorf("final Elapsed() = %v, want 18ms", prev)
	}
}

func TestElapsed_DoesNotMutate(t *testing.T) {
	e, clock := newTestEngine()

	e.Start()
	clock.Advance(time.Second)
	_ = e.Elapsed()
	_ = e.Elapsed()
	clock.Advance(time.Second)
	e.Stop()

	if got := e.Elapsed(); got != 2*time.Second {
		t.Errorf("Elapsed() = %v, want 2s", got)
	}
}

type rewindClock struct {
	times []time.Time
	i     int
}

func (c *rewindClock) Now() time.Time {
	t := c.times[c.i]
	if c.i < len(c.times)-1 {
		c.i++
	}
	return t
}

func TestStop_BackwardsClockClampsSegment(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := &rewindClock{times: []time.Time{base, base.Add(-time.Second)}}
	e := New(clock)

	e.Start()
	e.Stop()

	if got := e.Elapsed(); got != 0 {
		t.Errorf("Elapsed() = %v, want 0", got)
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Idle, "Idle"},
		{Running, "Running"},
		{Paused, "Paused"},
		{State(42), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"Zero", 0, "00:00:00.00"},
		{"Negative", -time.Second, "00:00:00.00"},
		{"SubHundredth", 9 * time.Millisecond, "00:00:00.00"},
		{"TruncatesNotRounds", 999 * time.Millisecond, "00:00:00.99"},
		{"OneHundredth", 10 * time.Millisecond, "00:00:00.01"},
		{"OneHourTwoMinThreeSec", time.Hour + 2*time.Minute + 3*time.Second + 450*time.Millisecond, "01:02:03.45"},
		{"JustUnderMinute", 59*time.Second + 999*time.Millisecond, "00:00:59.99"},
		{"NoDayRollover", 25 * time.Hour, "25:00:00.00"},
		{"ThreeDigitHours", 100*time.Hour + 59*time.Minute, "100:59:00.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.d); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestFormat_Pattern(t *testing.T) {
	pattern := regexp.MustCompile(`^\d+:\d{2}:\d{2}\.\d{2}$`)

	for _, d := range []time.Duration{0, time.Millisecond, 61 * time.Minute, 1000 * time.Hour} {
		if got := Format(d); !pattern.MatchString(got) {
			t.Errorf("Format(%v) = %q does not match %s", d, got, pattern)
		}
	}
}

func TestManualClock_IgnoresNegativeAdvance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewManualClock(start)

	clock.Advance(-time.Second)
	if !clock.Now().Equal(start) {
		t.Errorf("Now() = %v, want %v", clock.Now(), start)
	}

	clock.Advance(time.Second)
	if got := clock.Now().Sub(start); got != time.Second {
		t.Errorf("Now() advanced by %v, want 1s", got)
	}
}

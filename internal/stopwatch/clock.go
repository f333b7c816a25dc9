package stopwatch

import (
	"sync"
	"time"
)

// Clock is the time source the engine reads on every transition and query.
// Implementations must never go backwards between successive calls and must
// not be affected by wall-clock adjustments.
type Clock interface {
	Now() time.Time
}

// MonotonicClock reads the system clock. time.Now carries a monotonic reading,
// so Sub between two of its values ignores wall-clock corrections.
type MonotonicClock struct{}

// Now returns the current time with its monotonic reading.
func (MonotonicClock) Now() time.Time {
	return time.Now()
}

// ManualClock only moves when told to. It is safe for concurrent use.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a ManualClock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current reading.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d. Negative values are ignored.
func (c *ManualClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

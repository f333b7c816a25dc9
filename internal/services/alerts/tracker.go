// Package alerts raises desktop notifications when a running stopwatch
// crosses a milestone or reaches its target duration.
package alerts

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/j-veylop/stopwatch-tui/internal/stopwatch"
)

// Kind distinguishes repeating milestones from the one-shot target.
type Kind int

const (
	// KindMilestone fires each time elapsed passes a new multiple of the interval.
	KindMilestone Kind = iota
	// KindTarget fires once per run when elapsed reaches the target.
	KindTarget
)

// Alert is a crossing detected by Check.
type Alert struct {
	Kind  Kind
	At    time.Duration
	Title string
	Body  string
}

// Notifier delivers an alert to the desktop.
type Notifier func(a Alert) error

// DesktopNotifier sends milestones as plain notifications and the target as
// an audible alert.
func DesktopNotifier(a Alert) error {
	if a.Kind == KindTarget {
		return beeep.Alert(a.Title, a.Body, "")
	}
	return beeep.Notify(a.Title, a.Body, "")
}

// Tracker remembers which thresholds already fired so each one is reported
// once per run. It is owned by the UI loop and does no locking.
type Tracker struct {
	milestone   time.Duration
	target      time.Duration
	enabled     bool
	fired       int64
	targetFired bool
	notify      Notifier
}

// NewTracker creates a tracker. Zero milestone or target disables that alert.
func NewTracker(milestone, target time.Duration, enabled bool, notify Notifier) *Tracker {
	if notify == nil {
		notify = DesktopNotifier
	}
	return &Tracker{
		milestone: milestone,
		target:    target,
		enabled:   enabled,
		notify:    notify,
	}
}

// Enabled reports whether any alert can still fire.
func (t *Tracker) Enabled() bool {
	return t.enabled && (t.milestone > 0 || t.target > 0)
}

// Check returns the alerts crossed by elapsed since the previous call. When
// several milestones were skipped between polls only the latest is reported.
func (t *Tracker) Check(elapsed time.Duration) []Alert {
	if !t.Enabled() {
		return nil
	}

	var alerts []Alert

	if t.milestone > 0 {
		// Only notify if we crossed a new multiple upwards
		n := int64(elapsed / t.milestone)
		if n > t.fired {
			t.fired = n
			at := time.Duration(n) * t.milestone
			alerts = append(alerts, Alert{
				Kind:  KindMilestone,
				At:    at,
				Title: "Stopwatch milestone",
				Body:  fmt.Sprintf("%s elapsed", stopwatch.Format(at)),
			})
		}
	}

	if t.target > 0 && !t.targetFired && elapsed >= t.target {
		t.targetFired = true
		alerts = append(alerts, Alert{
			Kind:  KindTarget,
			At:    t.target,
			Title: "Target reached",
			Body:  fmt.Sprintf("Stopwatch reached %s", stopwatch.Format(t.target)),
		})
	}

	return alerts
}

// Send delivers alerts and returns the first delivery error.
func (t *Tracker) Send(alerts []Alert) error {
	var firstErr error
	for _, a := range alerts {
		if err := t.notify(a); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Reset re-arms every threshold.
func (t *Tracker) Reset() {
	t.fired = 0
	t.targetFired = false
}

// Configure swaps thresholds in place. Thresholds already behind elapsed are
// treated as fired so a settings change never triggers a burst.
func (t *Tracker) Configure(milestone, target time.Duration, enabled bool, elapsed time.Duration) {
	t.milestone = milestone
	t.target = target
	t.enabled = enabled

	t.fired = 0
	if milestone > 0 {
		t.fired = int64(elapsed / milestone)
	}
	t.targetFired = target > 0 && elapsed >= target
}

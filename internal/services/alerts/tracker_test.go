package alerts

import (
	"errors"
	"testing"
	"time"
)

func nopNotifier(Alert) error { return nil }

func TestCheck_Milestones(t *testing.T) {
	tr := NewTracker(time.Minute, 0, true, nopNotifier)

	steps := []struct {
		elapsed time.Duration
		want    int
		at      time.Duration
	}{
		{30 * time.Second, 0, 0},
		{time.Minute, 1, time.Minute},
		{90 * time.Second, 0, 0},
		{time.Minute + 59*time.Second, 0, 0},
		// Skipped a milestone between polls: only the latest is reported.
		{3*time.Minute + time.Second, 1, 3 * time.Minute},
	}

	for i, s := range steps {
		got := tr.Check(s.elapsed)
		if len(got) != s.want {
			t.Fatalf("step %d: got %d alerts, want %d", i, len(got), s.want)
		}
		if s.want == 1 {
			if got[0].Kind != KindMilestone {
				t.Errorf("step %d: Kind = %v, want milestone", i, got[0].Kind)
			}
			if got[0].At != s.at {
				t.Errorf("step %d: At = %v, want %v", i, got[0].At, s.at)
			}
		}
	}
}

func TestCheck_TargetFiresOnce(t *testing.T) {
	tr := NewTracker(0, 10*time.Second, true, nopNotifier)

	if got := tr.Check(9 * time.Second); len(got) != 0 {
		t.Fatalf("got %d alerts before target", len(got))
	}

	got := tr.Check(10 * time.Second)
	if len(got) != 1 || got[0].Kind != KindTarget {
		t.Fatalf("got %+v, want one target alert", got)
	}
	if got[0].Body != "Stopwatch reached 00:00:10.00" {
		t.Errorf("Body = %q", got[0].Body)
	}

	if got := tr.Check(20 * time.Second); len(got) != 0 {
		t.Errorf("target fired twice")
	}
}

func TestCheck_Disabled(t *testing.T) {
	tests := []struct {
		name string
		tr   *Tracker
	}{
		{"NotificationsOff", NewTracker(time.Second, time.Second, false, nopNotifier)},
		{"NoThresholds", NewTracker(0, 0, true, nopNotifier)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tr.Enabled() {
				t.Error("Enabled() should be false")
			}
			if got := tt.tr.Check(time.Hour); got != nil {
				t.Errorf("Check() = %v, want nil", got)
			}
		})
	}
}

func TestReset_RearmsThresholds(t *testing.T) {
	tr := NewTracker(time.Second, 2*time.Second, true, nopNotifier)

	if got := tr.Check(2 * time.Second); len(got) != 2 {
		t.Fatalf("got %d alerts, want milestone and target", len(got))
	}

	tr.Reset()

	if got := tr.Check(time.Second); len(got) != 1 {
		t.Errorf("got %d alerts after reset, want 1", len(got))
	}
	if got := tr.Check(2 * time.Second); len(got) != 2 {
		t.Errorf("got %d alerts after reset, want 2", len(got))
	}
}

func TestConfigure_NoBurst(t *testing.T) {
	tr := NewTracker(0, 0, true, nopNotifier)

	tr.Configure(time.Minute, 30*time.Second, true, 5*time.Minute)

	if got := tr.Check(5*time.Minute + time.Second); len(got) != 0 {
		t.Errorf("got %d alerts right after Configure, want 0", len(got))
	}
	if got := tr.Check(6 * time.Minute); len(got) != 1 {
		t.Errorf("got %d alerts at next milestone, want 1", len(got))
	}
}

func TestConfigure_RaisedTargetRearms(t *testing.T) {
	tr := NewTracker(0, time.Second, true, nopNotifier)
	tr.Check(2 * time.Second)

	tr.Configure(0, time.Minute, true, 2*time.Second)

	if got := tr.Check(time.Minute); len(got) != 1 {
		t.Errorf("got %d alerts, want raised target to fire", len(got))
	}
}

func TestSend(t *testing.T) {
	var sent []Alert
	boom := errors.New("boom")
	tr := NewTracker(time.Second, 0, true, func(a Alert) error {
		sent = append(sent, a)
		if a.Kind == KindTarget {
			return boom
		}
		return nil
	})

	err := tr.Send([]Alert{{Kind: KindMilestone}, {Kind: KindTarget}, {Kind: KindMilestone}})
	if !errors.Is(err, boom) {
		t.Errorf("Send() err = %v, want boom", err)
	}
	if len(sent) != 3 {
		t.Errorf("sent %d alerts, want 3", len(sent))
	}
}

func TestNewTracker_DefaultNotifier(t *testing.T) {
	tr := NewTracker(time.Second, 0, true, nil)
	if tr.notify == nil {
		t.Error("notify should default to DesktopNotifier")
	}
}

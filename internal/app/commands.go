package app

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/stopwatch-tui/internal/services"
	"github.com/j-veylop/stopwatch-tui/internal/services/alerts"
	"github.com/j-veylop/stopwatch-tui/internal/stopwatch"
)

const (
	// DefaultTickInterval is the default interval between housekeeping ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// displayTickCmd schedules the next redraw of a running stopwatch.
func displayTickCmd(id int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return DisplayTickMsg{ID: id, Time: t}
	})
}

// ApplyControl runs a control against the engine and reports the transition
// to the root model. For a reset, Elapsed and Segments describe the run that
// was cleared. It returns nil when the control left the state unchanged.
func ApplyControl(engine *stopwatch.Engine, control func()) tea.Cmd {
	from := engine.State()
	elapsed, segments := engine.Elapsed(), engine.Segments()

	control()

	to := engine.State()
	if from == to {
		return nil
	}
	if to != stopwatch.Idle {
		elapsed, segments = engine.Elapsed(), engine.Segments()
	}

	msg := StopwatchChangedMsg{
		From:     from,
		To:       to,
		Elapsed:  elapsed,
		Segments: segments,
	}
	return func() tea.Msg { return msg }
}

// loadStatsCmd returns a command that loads session statistics.
func loadStatsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		stats, err := mgr.GetStats()
		return StatsLoadedMsg{Stats: stats, Error: err}
	}
}

// recordSessionCmd stores a finished run.
func recordSessionCmd(mgr *services.Manager, elapsed time.Duration, segments int) tea.Cmd {
	return func() tea.Msg {
		session, err := mgr.RecordSession(elapsed, segments)
		return SessionRecordedMsg{Session: session, Error: err}
	}
}

// sendAlertsCmd delivers desktop alerts off the UI goroutine.
func sendAlertsCmd(tracker *alerts.Tracker, fired []alerts.Alert) tea.Cmd {
	return func() tea.Msg {
		return AlertsSentMsg{Error: tracker.Send(fired)}
	}
}

// copyToClipboardCmd writes text to the system clipboard.
func copyToClipboardCmd(text string) tea.Cmd {
	return func() tea.Msg {
		err := writeClipboard(text)
		if err != nil {
			err = fmt.Errorf("clipboard unavailable: %w", err)
		}
		return ClipboardResultMsg{Text: text, Error: err}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

func notifyCmd(t NotificationType, message string, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{Type: t, Message: message, Duration: d}
	}
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return notifyCmd(NotificationSuccess, message, DefaultNotificationDuration)
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return notifyCmd(NotificationError, message, LongNotificationDuration)
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return notifyCmd(NotificationWarning, message, DefaultNotificationDuration)
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return notifyCmd(NotificationInfo, message, QuickNotificationDuration)
}

// Commands builds the commands that need the service manager, plus the
// toasts tabs raise. Methods needing a manager return nil without one.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// LoadStats returns a command that loads statistics. Nil without a manager.
func (c *Commands) LoadStats() tea.Cmd {
	if c.manager == nil {
		return nil
	}
	return loadStatsCmd(c.manager)
}

// RecordSession returns a command that stores a run. Nil without a manager.
func (c *Commands) RecordSession(elapsed time.Duration, segments int) tea.Cmd {
	if c.manager == nil || elapsed <= 0 {
		return nil
	}
	return recordSessionCmd(c.manager, elapsed, segments)
}

// CopyToClipboard returns a command that copies text to the clipboard.
func (c *Commands) CopyToClipboard(text string) tea.Cmd {
	return copyToClipboardCmd(text)
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}



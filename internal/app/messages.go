package app

import (
	"time"

	"github.com/j-veylop/stopwatch-tui/internal/config"
	"github.com/j-veylop/stopwatch-tui/internal/models"
	"github.com/j-veylop/stopwatch-tui/internal/services"
	"github.com/j-veylop/stopwatch-tui/internal/stopwatch"
)

// TickMsg is sent periodically to expire notifications.
type TickMsg struct {
	Time time.Time
}

// DisplayTickMsg drives redraws and threshold checks while the stopwatch
// runs. Ticks whose ID no longer matches the model's are dropped so that
// stopping and restarting never leaves two tick chains alive.
type DisplayTickMsg struct {
	Time time.Time
	ID   int
}

// StopwatchChangedMsg is emitted after a control changed the engine state.
// Redundant presses that leave the state as it was are not reported. On a
// reset Elapsed and Segments hold the values of the cleared run.
type StopwatchChangedMsg struct {
	From     stopwatch.State
	To       stopwatch.State
	Elapsed  time.Duration
	Segments int
}

// StartLoadingMsg signals that a resource is starting to load. The toast names
// the resource until every matching StopLoadingMsg has arrived.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// StatsLoadedMsg contains loaded session statistics.
type StatsLoadedMsg struct {
	Error error
	Stats models.SessionStats
}

// SessionRecordedMsg is the result of storing a finished run.
type SessionRecordedMsg struct {
	Session *models.Session
	Error   error
}

// SessionsChangedMsg tells every tab the session log changed.
type SessionsChangedMsg struct{}

// SettingsChangedMsg tells every tab the configuration was reloaded.
type SettingsChangedMsg struct {
	Config *config.Config
}

// AlertsSentMsg is the result of delivering desktop alerts.
type AlertsSentMsg struct {
	Error error
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Message  string
	Type     NotificationType
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// CopyToClipboardMsg requests copying text to clipboard.
type CopyToClipboardMsg struct {
	Text string
}

// ClipboardResultMsg contains the result of a clipboard operation.
type ClipboardResultMsg struct {
	Error error
	Text  string
}

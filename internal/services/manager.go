// Package services provides service orchestration for the TUI.
package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/stopwatch-tui/internal/config"
	"github.com/j-veylop/stopwatch-tui/internal/db"
	"github.com/j-veylop/stopwatch-tui/internal/logger"
	"github.com/j-veylop/stopwatch-tui/internal/models"
	"github.com/j-veylop/stopwatch-tui/internal/services/history"
	"github.com/j-veylop/stopwatch-tui/internal/services/settings"
)

type (
	// SessionRecordedEvent is emitted when a finished session is stored.
	SessionRecordedEvent struct {
		Session models.Session
	}

	// SessionDeletedEvent is emitted when a session is removed.
	SessionDeletedEvent struct {
		ID string
	}

	// SettingsChangedEvent is emitted when the .env file is reloaded.
	SettingsChangedEvent struct {
		Config *config.Config
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}

	// StatsEvent carries aggregate session statistics.
	StatsEvent struct {
		Stats models.SessionStats
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (SessionRecordedEvent) isServiceEvent() {}
func (SessionDeletedEvent) isServiceEvent()  {}
func (SettingsChangedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()           {}
func (StatsEvent) isServiceEvent()           {}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	config      *config.Config
	database    *db.DB
	history     *history.Service
	settings    *settings.Watcher
	stopChan    chan struct{}
	subscribers []chan ServiceEvent
	closeOnce   sync.Once
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		config:   cfg,
		stopChan: make(chan struct{}),
	}

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.history = history.New(m.database)

	m.settings, err = settings.New(cfg.EnvFile, nil)
	if err != nil {
		// Hot reload is a convenience; run without it.
		logger.Warn("settings watcher disabled", "path", cfg.EnvFile, "error", err)
		m.settings, _ = settings.New("", nil)
	}

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.history.Events():
			m.handleHistoryEvent(event)

		case event := <-m.settings.Events():
			m.handleSettingsEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleHistoryEvent(event history.Event) {
	switch event.Type {
	case history.EventSessionRecorded:
		m.broadcast(SessionRecordedEvent{Session: *event.Session})
		m.broadcastStats()

	case history.EventSessionDeleted:
		m.broadcast(SessionDeletedEvent{ID: event.Session.ID})
		m.broadcastStats()

	case history.EventError:
		m.broadcast(ErrorEvent{Service: "history", Error: event.Error})
	}
}

func (m *Manager) handleSettingsEvent(event settings.Event) {
	switch event.Type {
	case settings.EventReloaded:
		m.mu.Lock()
		m.config = event.Config
		m.mu.Unlock()
		m.broadcast(SettingsChangedEvent{Config: event.Config})

	case settings.EventError:
		m.broadcast(ErrorEvent{Service: "settings", Error: event.Error})
	}
}

func (m *Manager) broadcastStats() {
	stats, err := m.history.Stats()
	if err != nil {
		m.broadcast(ErrorEvent{Service: "history", Error: err})
		return
	}
	m.broadcast(StatsEvent{Stats: stats})
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Config returns the most recently loaded configuration.
func (m *Manager) Config() *config.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// RecordSession stores a finished stopwatch run. Zero elapsed is ignored and
// returns nil, nil.
func (m *Manager) RecordSession(elapsed time.Duration, segments int) (*models.Session, error) {
	return m.history.Record(elapsed, segments)
}

// RecentSessions returns up to limit sessions, newest first.
func (m *Manager) RecentSessions(limit int) ([]models.Session, error) {
	return m.history.Recent(limit)
}

// DeleteSession removes a recorded session.
func (m *Manager) DeleteSession(id string) error {
	return m.history.Delete(id)
}

// LabelSession sets or clears the label of a recorded session.
func (m *Manager) LabelSession(id, label string) error {
	return m.history.Label(id, label)
}

// GetStats returns aggregated session statistics.
func (m *Manager) GetStats() (models.SessionStats, error) {
	return m.history.Stats()
}

// History returns the history service.
func (m *Manager) History() *history.Service {
	return m.history
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	var errs []error

	m.closeOnce.Do(func() {
		if m.stopChan != nil {
			close(m.stopChan)
		}

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if m.settings != nil {
			if err := m.settings.Close(); err != nil {
				errs = append(errs, err)
			}
		}

		if m.database != nil {
			if err := m.database.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	})

	return errors.Join(errs...)
}

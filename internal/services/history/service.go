// Package history records finished stopwatch sessions and serves them back
// to the UI and CLI.
package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/j-veylop/stopwatch-tui/internal/db"
	"github.com/j-veylop/stopwatch-tui/internal/logger"
	"github.com/j-veylop/stopwatch-tui/internal/models"
)

// EventType defines the type of history event.
type EventType int

const (
	// EventSessionRecorded is emitted after a run was stored.
	EventSessionRecorded EventType = iota
	// EventSessionDeleted is emitted after a session was removed.
	EventSessionDeleted
	// EventError is emitted when a write failed.
	EventError
)

// Event represents a history service event.
type Event struct {
	Type    EventType
	Session *models.Session
	Error   error
}

// Service stores sessions in the database.
type Service struct {
	database  *db.DB
	eventChan chan Event
	now       func() time.Time
}

// New creates a history service backed by database.
func New(database *db.DB) *Service {
	return &Service{
		database:  database,
		eventChan: make(chan Event, 100),
		now:       time.Now,
	}
}

// Events returns the event channel for subscribing to history changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Record stores a session with the given elapsed time. Zero or negative
// durations are not worth keeping and return nil, nil.
func (s *Service) Record(elapsed time.Duration, segments int) (*models.Session, error) {
	if elapsed <= 0 {
		return nil, nil
	}

	session := &models.Session{
		ID:         uuid.NewString(),
		RecordedAt: s.now(),
		Elapsed:    elapsed,
		Segments:   max(segments, 1),
	}

	if err := s.database.InsertSession(session); err != nil {
		s.sendEvent(Event{Type: EventError, Error: err})
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	logger.Info("session recorded", "id", session.ID, "elapsed", elapsed, "segments", session.Segments)
	s.sendEvent(Event{Type: EventSessionRecorded, Session: session})
	return session, nil
}

// Recent returns up to limit sessions, newest first.
func (s *Service) Recent(limit int) ([]models.Session, error) {
	return s.database.GetRecentSessions(limit)
}

// Stats returns aggregate totals across all sessions.
func (s *Service) Stats() (models.SessionStats, error) {
	return s.database.GetSessionStats()
}

// Delete removes a session by ID.
func (s *Service) Delete(id string) error {
	if err := s.database.DeleteSession(id); err != nil {
		return err
	}
	logger.Info("session deleted", "id", id)
	s.sendEvent(Event{Type: EventSessionDeleted, Session: &models.Session{ID: id}})
	return nil
}

// Label sets or clears the label of a session.
func (s *Service) Label(id, label string) error {
	if err := s.database.SetSessionLabel(id, label); err != nil {
		return err
	}
	logger.Info("session labeled", "id", id, "label", label)
	return nil
}

// Compact reclaims free pages and returns the database path.
func (s *Service) Compact() (string, error) {
	if err := s.database.Vacuum(); err != nil {
		return "", err
	}
	logger.Info("database compacted", "path", s.database.Path())
	return s.database.Path(), nil
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

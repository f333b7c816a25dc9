package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/j-veylop/stopwatch-tui/internal/logger"
	"github.com/j-veylop/stopwatch-tui/internal/models"
)

// ErrSessionNotFound is returned when a session ID does not exist.
var ErrSessionNotFound = errors.New("session not found")

// InsertSession stores a finished stopwatch session.
func (db *DB) InsertSession(s *models.Session) error {
	if s.ID == "" {
		return fmt.Errorf("failed to insert session: empty id")
	}

	recordedAt := s.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	_, err := db.ExecContext(context.Background(), `
		INSERT INTO sessions (id, recorded_at, elapsed_ms, segments, label)
		VALUES (?, ?, ?, ?, ?)
	`,
		s.ID,
		recordedAt.UnixMilli(),
		s.Elapsed.Milliseconds(),
		s.Segments,
		nullString(s.Label),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	s.RecordedAt = time.UnixMilli(recordedAt.UnixMilli())
	return nil
}

// GetRecentSessions returns the most recently recorded sessions, newest first.
func (db *DB) GetRecentSessions(limit int) ([]models.Session, error) {
	if limit <= 0 {
		limit = defaultSessionLimit
	}

	rows, err := db.QueryContext(context.Background(), `
		SELECT id, recorded_at, elapsed_ms, segments, label
		FROM sessions
		ORDER BY recorded_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent sessions: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var sessions []models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// GetSession returns a single session by ID.
func (db *DB) GetSession(id string) (*models.Session, error) {
	row := db.QueryRowContext(context.Background(), `
		SELECT id, recorded_at, elapsed_ms, segments, label
		FROM sessions
		WHERE id = ?
	`, id)

	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSession removes a session by ID.
func (db *DB) DeleteSession(id string) error {
	result, err := db.ExecContext(context.Background(), `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// SetSessionLabel replaces the label of a session. An empty label clears it.
func (db *DB) SetSessionLabel(id, label string) error {
	result, err := db.ExecContext(context.Background(),
		`UPDATE sessions SET label = ? WHERE id = ?`, nullString(label), id)
	if err != nil {
		return fmt.Errorf("failed to label session: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to label session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// GetSessionStats aggregates every recorded session.
func (db *DB) GetSessionStats() (models.SessionStats, error) {
	var (
		stats            models.SessionStats
		totalMs, longest int64
	)

	err := db.QueryRowContext(context.Background(), `
		SELECT COUNT(*), COALESCE(SUM(elapsed_ms), 0), COALESCE(MAX(elapsed_ms), 0)
		FROM sessions
	`).Scan(&stats.Count, &totalMs, &longest)
	if err != nil {
		return stats, fmt.Errorf("failed to query session stats: %w", err)
	}

	stats.Total = time.Duration(totalMs) * time.Millisecond
	stats.Longest = time.Duration(longest) * time.Millisecond
	if stats.Count > 0 {
		stats.Average = stats.Total / time.Duration(stats.Count)
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(r rowScanner) (models.Session, error) {
	var (
		s                     models.Session
		recordedAt, elapsedMs int64
		label                 sql.NullString
	)

	if err := r.Scan(&s.ID, &recordedAt, &elapsedMs, &s.Segments, &label); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s, err
		}
		return s, fmt.Errorf("failed to scan session: %w", err)
	}

	s.RecordedAt = time.UnixMilli(recordedAt)
	s.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	s.Label = label.String
	return s, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

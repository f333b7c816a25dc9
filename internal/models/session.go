// Package models defines data structures and domain types.
package models

import "time"

// Session is one finished stopwatch measurement, recorded when a stopwatch
// with time on it is reset.
type Session struct {
	RecordedAt time.Time
	ID         string
	Label      string
	Elapsed    time.Duration
	Segments   int
}

// SessionStats aggregates every recorded session.
type SessionStats struct {
	Count   int
	Total   time.Duration
	Longest time.Duration
	Average time.Duration
}

// HasData returns true if at least one session has been recorded.
func (s SessionStats) HasData() bool {
	return s.Count > 0
}

// ElapsedSeries returns the elapsed seconds of sessions in chronological
// order, oldest first, for charting. Input is expected newest first.
func ElapsedSeries(sessions []Session) []float64 {
	series := make([]float64, len(sessions))
	for i, s := range sessions {
		series[len(sessions)-1-i] = s.Elapsed.Seconds()
	}
	return series
}

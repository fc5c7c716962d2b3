// Package mission computes the mission countdown and allocates sequential scroll ids.
package mission

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// Status is a snapshot of the mission window for a given calendar date.
type Status struct {
	CurrentDay      int     `json:"current_day"`
	TotalDays       int     `json:"total_days"`
	DaysRemaining   int     `json:"days_remaining"`
	MissionStart    string  `json:"mission_start"`
	MissionEnd      string  `json:"mission_end"`
	ProgressPercent float64 `json:"progress_percent"`
	IsActive        bool    `json:"is_active"`
}

// Clock holds the fixed mission window. Only calendar dates are compared.
type Clock struct {
	start     time.Time
	totalDays int
}

// NewClock builds a Clock starting on the calendar date of start.
func NewClock(start time.Time, totalDays int) (Clock, error) {
	if totalDays < 1 {
		return Clock{}, errors.New("mission total days must be positive")
	}
	if start.IsZero() {
		return Clock{}, errors.New("mission start date is required")
	}
	return Clock{start: civilDate(start), totalDays: totalDays}, nil
}

// Start returns the first mission day.
func (c Clock) Start() time.Time {
	return c.start
}

// End returns the last mission day (start + total - 1).
func (c Clock) End() time.Time {
	return c.start.AddDate(0, 0, c.totalDays-1)
}

// TotalDays returns the length of the mission window.
func (c Clock) TotalDays() int {
	return c.totalDays
}

// Status computes the mission snapshot for the calendar date of today.
// The day counter is clamped to the window; the active flag uses the unclamped
// value so the day after the final day reports an inactive mission.
func (c Clock) Status(today time.Time) Status {
	status := Status{
		TotalDays:    c.totalDays,
		MissionStart: c.start.Format(dateLayout),
		MissionEnd:   c.End().Format(dateLayout),
	}

	elapsed := daysBetween(c.start, civilDate(today)) + 1
	if elapsed < 1 {
		status.DaysRemaining = c.totalDays
		return status
	}

	day := elapsed
	if day > c.totalDays {
		day = c.totalDays
	}

	status.CurrentDay = day
	status.DaysRemaining = max(0, c.totalDays-day)
	status.ProgressPercent = round2(math.Min(100, float64(day)/float64(c.totalDays)*100))
	status.IsActive = elapsed <= c.totalDays
	return status
}

// FormatScrollID renders the n-th scroll id, zero padded to four digits.
func FormatScrollID(prefix string, n int) string {
	return fmt.Sprintf("%s-%04d", prefix, n)
}

// NextScrollID returns the id for the registration that follows count existing members.
func NextScrollID(prefix string, count int64) string {
	return FormatScrollID(prefix, int(count)+1)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

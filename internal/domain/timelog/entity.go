package timelog

import (
	"math"
	"time"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// BreakInterval is one pause inside a session. It is owned by its parent
// TimeLog and never referenced on its own.
type BreakInterval struct {
	ID        string
	TimeLogID string
	StartTime time.Time
	EndTime   *time.Time
	Status    Status
	Duration  float64 // hours, set once on completion
	CreatedAt time.Time
}

// TimeLog is one employee's clock-in-to-clock-out record. Status moves from
// active to completed exactly once; a completed log only accepts notes edits.
type TimeLog struct {
	ID         string
	EmployeeID string
	LoginTime  time.Time
	LogoutTime *time.Time
	Status     Status
	Breaks     []BreakInterval // insertion order = chronological order

	TotalHours      float64
	TotalBreakHours float64

	// Exactly one of these is populated, depending on the deployment's
	// hours policy.
	NetWorkHours       *float64
	AdjustedHours      *float64
	LunchBreakDeducted bool

	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveBreak returns the currently running break, or nil. Only the newest
// break can be active.
func (t *TimeLog) ActiveBreak() *BreakInterval {
	if len(t.Breaks) == 0 {
		return nil
	}
	last := &t.Breaks[len(t.Breaks)-1]
	if last.Status == StatusActive {
		return last
	}
	return nil
}

// HasActiveBreak reports whether a break is currently running.
func (t *TimeLog) HasActiveBreak() bool {
	return t.ActiveBreak() != nil
}

// IsCompleted reports whether the session has been clocked out.
func (t *TimeLog) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// NetHours returns whichever derived hours field the active policy populated,
// or 0 for a log that has not been finalized.
func (t *TimeLog) NetHours() float64 {
	if t.NetWorkHours != nil {
		return *t.NetWorkHours
	}
	if t.AdjustedHours != nil {
		return *t.AdjustedHours
	}
	return 0
}

// Round2 rounds hours to 2 decimal places, half away from zero. Every hour
// value is rounded with this before it is stored.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package timelog

import (
	"context"
	"time"
)

// TimeLogRepository defines data access for time logs and their breaks.
//
// The "at most one active session per employee" and "at most one active break
// per session" invariants are enforced here with conditional writes backed by
// partial unique indexes, never with a read followed by a separate write.
type TimeLogRepository interface {
	// CreateActive atomically inserts an active session for employeeID.
	// Fails with ErrActiveSessionExists when one already exists.
	CreateActive(ctx context.Context, employeeID string, loginTime time.Time) (TimeLog, error)

	// GetActiveByEmployee retrieves the employee's active session with its
	// breaks. Fails with ErrNoActiveSession when there is none.
	GetActiveByEmployee(ctx context.Context, employeeID string) (TimeLog, error)

	// GetByID retrieves a time log with its breaks
	GetByID(ctx context.Context, id string) (TimeLog, error)

	// Complete transitions an active session to completed, writing logout
	// time and the finalized hour fields. The write only commits when the
	// session has no active break. Fails with ErrClockOutDuringBreak when
	// a break is still running and with ErrNoActiveSession when the row is
	// no longer active.
	Complete(ctx context.Context, log TimeLog) error

	// StartBreak atomically appends an active break to the session. The
	// write only commits while the parent session is still active. Fails
	// with ErrBreakInProgress when a break is already running and with
	// ErrNoActiveSession when the session is gone or completed.
	StartBreak(ctx context.Context, timeLogID string, startTime time.Time) (BreakInterval, error)

	// EndBreak atomically completes the session's active break, computing
	// its rounded duration and re-rounding the session's accumulated break
	// total. Fails with ErrNoActiveBreak when no break is running.
	EndBreak(ctx context.Context, timeLogID string, endTime time.Time) (BreakInterval, error)

	// ListByEmployee retrieves an employee's time logs with filters and
	// pagination, newest login first by default.
	ListByEmployee(ctx context.Context, employeeID string, filter TimeLogFilter) ([]TimeLog, int64, error)

	// List retrieves time logs across employees with filters and pagination
	List(ctx context.Context, filter TimeLogFilter) ([]TimeLog, int64, error)

	// ListAllByEmployee retrieves every time log of an employee, oldest
	// first, for statistics aggregation.
	ListAllByEmployee(ctx context.Context, employeeID string) ([]TimeLog, error)

	// UpdateNotes updates the notes field of a time log
	UpdateNotes(ctx context.Context, id string, notes string) error

	// DeleteByEmployee removes all of an employee's time logs. Used by the
	// employee-removal cascade.
	DeleteByEmployee(ctx context.Context, employeeID string) error
}

package timelog

import "context"

// TimeLogService defines business logic for clock events and statistics. The
// caller's identity comes from the request context's JWT claims.
type TimeLogService interface {
	// ClockIn opens a new session for the authenticated employee
	ClockIn(ctx context.Context) (TimeLogResponse, error)

	// ClockOut completes the authenticated employee's active session and
	// finalizes its hour fields under the configured policy
	ClockOut(ctx context.Context) (TimeLogResponse, error)

	// StartBreak begins a break inside the active session
	StartBreak(ctx context.Context) (TimeLogResponse, error)

	// EndBreak ends the running break and accumulates its duration
	EndBreak(ctx context.Context) (TimeLogResponse, error)

	// GetMyTimeLogs lists the authenticated employee's sessions
	GetMyTimeLogs(ctx context.Context, filter TimeLogFilter) (ListTimeLogResponse, error)

	// ListTimeLogs lists sessions across employees (admin)
	ListTimeLogs(ctx context.Context, filter TimeLogFilter) (ListTimeLogResponse, error)

	// GetEmployeeTimeLogs lists one employee's sessions (admin)
	GetEmployeeTimeLogs(ctx context.Context, employeeID string, filter TimeLogFilter) (ListTimeLogResponse, error)

	// GetMyStats aggregates the authenticated employee's statistics
	GetMyStats(ctx context.Context) (StatsResponse, error)

	// GetEmployeeStats aggregates one employee's statistics (admin)
	GetEmployeeStats(ctx context.Context, employeeID string) (StatsResponse, error)

	// UpdateNotes edits a completed session's notes; allowed for the
	// session owner or an admin, never for hour fields
	UpdateNotes(ctx context.Context, req UpdateNotesRequest) (TimeLogResponse, error)
}

package timelog

import "errors"

// Time log domain errors
var (
	// Session lifecycle errors
	ErrActiveSessionExists = errors.New("you already have an active session")
	ErrNoActiveSession     = errors.New("no active session found")

	// Break lifecycle errors
	ErrBreakInProgress     = errors.New("a break is already in progress")
	ErrNoActiveBreak       = errors.New("no active break found")
	ErrClockOutDuringBreak = errors.New("end your break before clocking out")
	ErrBreakTrackingOff    = errors.New("break tracking is disabled under the fixed lunch policy")

	// General errors
	ErrTimeLogNotFound    = errors.New("time log not found")
	ErrNotesEditForbidden = errors.New("only the session owner or an admin may edit notes")
)

package response

import (
	"errors"
	"net/http"

	"github.com/shiftlog-hq/timetracker-backend-go/internal/domain/auth"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/domain/timelog"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/domain/user"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid employee ID or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmployeeIDExists):
		Conflict(w, "Employee ID already exists")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrSuperAdminRequired):
		Forbidden(w, "Superadmin privilege required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Time log domain errors
	case errors.Is(err, timelog.ErrActiveSessionExists):
		Conflict(w, "You already have an active session")
	case errors.Is(err, timelog.ErrNoActiveSession):
		NotFound(w, "No active session found")
	case errors.Is(err, timelog.ErrBreakInProgress):
		Conflict(w, "A break is already in progress")
	case errors.Is(err, timelog.ErrNoActiveBreak):
		NotFound(w, "No active break found")
	case errors.Is(err, timelog.ErrClockOutDuringBreak):
		Conflict(w, "End your break before clocking out")
	case errors.Is(err, timelog.ErrBreakTrackingOff):
		Conflict(w, "Break tracking is disabled for this deployment")
	case errors.Is(err, timelog.ErrTimeLogNotFound):
		NotFound(w, "Time log not found")
	case errors.Is(err, timelog.ErrNotesEditForbidden):
		Forbidden(w, "You may only edit notes on your own time logs")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

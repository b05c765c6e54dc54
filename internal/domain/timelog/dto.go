package timelog

import (
	"time"

	"github.com/shiftlog-hq/timetracker-backend-go/internal/pkg/validator"
)

// ========================================
// TIME LOG DTOs
// ========================================

type BreakResponse struct {
	ID        string   `json:"id"`
	StartTime string   `json:"start_time"`
	EndTime   *string  `json:"end_time,omitempty"`
	Status    string   `json:"status"`
	Duration  *float64 `json:"duration,omitempty"`
}

type TimeLogResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	LoginTime          string          `json:"login_time"`
	LogoutTime         *string         `json:"logout_time,omitempty"`
	Status             string          `json:"status"`
	Breaks             []BreakResponse `json:"breaks,omitempty"`
	TotalHours         float64         `json:"total_hours"`
	TotalBreakHours    float64         `json:"total_break_hours"`
	NetWorkHours       *float64        `json:"net_work_hours,omitempty"`
	AdjustedHours      *float64        `json:"adjusted_hours,omitempty"`
	LunchBreakDeducted bool            `json:"lunch_break_deducted"`
	Notes              *string         `json:"notes,omitempty"`
	CreatedAt          string          `json:"created_at"`
	UpdatedAt          string          `json:"updated_at"`
}

type ListTimeLogResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	TimeLogs   []TimeLogResponse `json:"time_logs"`
}

type TimeLogFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`

	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	SortOrder string `json:"sort_order"`
}

func (f *TimeLogFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && *f.Status != "" &&
		!validator.IsInSlice(*f.Status, []string{string(StatusActive), string(StatusCompleted)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be 'active' or 'completed'",
		})
	}

	var start, end time.Time
	if f.StartDate != nil && *f.StartDate != "" {
		var ok bool
		if start, ok = validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		var ok bool
		if end, ok = validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateNotesRequest struct {
	ID    string `json:"-"`
	Notes string `json:"notes"`
}

func (r *UpdateNotesRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "time log id is required",
		})
	}

	if len(r.Notes) > 2000 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 2000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// STATISTICS DTOs
// ========================================

// WindowTotals sums hours over sessions whose login time falls in a trailing
// window.
type WindowTotals struct {
	TotalHours float64 `json:"total_hours"`
	BreakHours float64 `json:"break_hours"`
	NetHours   float64 `json:"net_hours"`
}

// BreakDistribution sums completed break durations by the local hour of the
// break's start: morning (< 12), afternoon (12-16), evening (>= 17).
type BreakDistribution struct {
	Morning   float64 `json:"morning"`
	Afternoon float64 `json:"afternoon"`
	Evening   float64 `json:"evening"`
}

type StatsResponse struct {
	EmployeeID        string            `json:"employee_id"`
	Today             WindowTotals      `json:"today"`
	Week              WindowTotals      `json:"week"`
	Month             WindowTotals      `json:"month"`
	AllTime           WindowTotals      `json:"all_time"`
	TotalDaysWorked   int               `json:"total_days_worked"`
	AvgDailyHours     float64           `json:"avg_daily_hours"`
	AvgBreakTime      float64           `json:"avg_break_time"`
	BreakDistribution BreakDistribution `json:"break_distribution"`
}

// ========================================
// MAPPERS
// ========================================

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// ToResponse converts a TimeLog entity to its API shape.
func ToResponse(t TimeLog) TimeLogResponse {
	breaks := make([]BreakResponse, 0, len(t.Breaks))
	for _, b := range t.Breaks {
		br := BreakResponse{
			ID:        b.ID,
			StartTime: b.StartTime.Format("2006-01-02 15:04:05"),
			EndTime:   timePtrToString(b.EndTime),
			Status:    string(b.Status),
		}
		if b.Status == StatusCompleted {
			d := b.Duration
			br.Duration = &d
		}
		breaks = append(breaks, br)
	}

	return TimeLogResponse{
		ID:                 t.ID,
		EmployeeID:         t.EmployeeID,
		LoginTime:          t.LoginTime.Format("2006-01-02 15:04:05"),
		LogoutTime:         timePtrToString(t.LogoutTime),
		Status:             string(t.Status),
		Breaks:             breaks,
		TotalHours:         t.TotalHours,
		TotalBreakHours:    t.TotalBreakHours,
		NetWorkHours:       t.NetWorkHours,
		AdjustedHours:      t.AdjustedHours,
		LunchBreakDeducted: t.LunchBreakDeducted,
		Notes:              t.Notes,
		CreatedAt:          t.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:          t.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shiftlog-hq/timetracker-backend-go/internal/domain/timelog"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/pkg/database"
)

type timeLogRepository struct {
	db *database.DB
}

func NewTimeLogRepository(db *database.DB) timelog.TimeLogRepository {
	return &timeLogRepository{db: db}
}

const timeLogColumns = `
	id, employee_id, login_time, logout_time, status,
	total_hours, total_break_hours, net_work_hours, adjusted_hours,
	lunch_break_deducted, notes, created_at, updated_at
`

func scanTimeLog(row pgx.Row) (timelog.TimeLog, error) {
	var t timelog.TimeLog
	err := row.Scan(
		&t.ID, &t.EmployeeID, &t.LoginTime, &t.LogoutTime, &t.Status,
		&t.TotalHours, &t.TotalBreakHours, &t.NetWorkHours, &t.AdjustedHours,
		&t.LunchBreakDeducted, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// CreateActive implements timelog.TimeLogRepository.
//
// The insert is conditional on no active row existing for the employee; the
// partial unique index on (employee_id) WHERE status = 'active' closes the
// race between two concurrent clock-ins.
func (r *timeLogRepository) CreateActive(ctx context.Context, employeeID string, loginTime time.Time) (timelog.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_logs (id, employee_id, login_time, status)
		SELECT $1, $2, $3, 'active'
		WHERE NOT EXISTS (
			SELECT 1 FROM time_logs
			WHERE employee_id = $2 AND status = 'active'
		)
		RETURNING ` + timeLogColumns

	t, err := scanTimeLog(q.QueryRow(ctx, query, uuid.NewString(), employeeID, loginTime))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timelog.TimeLog{}, timelog.ErrActiveSessionExists
		}
		return timelog.TimeLog{}, fmt.Errorf("failed to create time log: %w", err)
	}

	return t, nil
}

// GetActiveByEmployee implements timelog.TimeLogRepository.
func (r *timeLogRepository) GetActiveByEmployee(ctx context.Context, employeeID string) (timelog.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeLogColumns + `
		FROM time_logs
		WHERE employee_id = $1 AND status = 'active'
	`

	t, err := scanTimeLog(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timelog.TimeLog{}, timelog.ErrNoActiveSession
		}
		return timelog.TimeLog{}, fmt.Errorf("failed to get active session: %w", err)
	}

	logs := []timelog.TimeLog{t}
	if err := r.loadBreaks(ctx, q, logs); err != nil {
		return timelog.TimeLog{}, err
	}

	return logs[0], nil
}

// GetByID implements timelog.TimeLogRepository.
func (r *timeLogRepository) GetByID(ctx context.Context, id string) (timelog.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeLogColumns + `
		FROM time_logs
		WHERE id = $1
	`

	t, err := scanTimeLog(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timelog.TimeLog{}, timelog.ErrTimeLogNotFound
		}
		return timelog.TimeLog{}, fmt.Errorf("failed to get time log by ID: %w", err)
	}

	logs := []timelog.TimeLog{t}
	if err := r.loadBreaks(ctx, q, logs); err != nil {
		return timelog.TimeLog{}, err
	}

	return logs[0], nil
}

// Complete implements timelog.TimeLogRepository.
//
// The NOT EXISTS guard makes the no-active-break check part of the same
// conditional write; a break started after the caller's read cannot end up
// inside a completed session.
func (r *timeLogRepository) Complete(ctx context.Context, log timelog.TimeLog) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_logs
		SET logout_time = $2,
		    status = 'completed',
		    total_hours = $3,
		    net_work_hours = $4,
		    adjusted_hours = $5,
		    lunch_break_deducted = $6,
		    updated_at = now()
		WHERE id = $1 AND status = 'active'
		  AND NOT EXISTS (
			SELECT 1 FROM time_log_breaks
			WHERE time_log_id = $1 AND status = 'active'
		  )
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		log.ID,
		log.LogoutTime,
		log.TotalHours,
		log.NetWorkHours,
		log.AdjustedHours,
		log.LunchBreakDeducted,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var activeBreak bool
			checkQuery := `
				SELECT EXISTS (
					SELECT 1 FROM time_log_breaks
					WHERE time_log_id = $1 AND status = 'active'
				)
			`
			if checkErr := q.QueryRow(ctx, checkQuery, log.ID).Scan(&activeBreak); checkErr == nil && activeBreak {
				return timelog.ErrClockOutDuringBreak
			}
			return timelog.ErrNoActiveSession
		}
		return fmt.Errorf("failed to complete time log: %w", err)
	}

	return nil
}

// StartBreak implements timelog.TimeLogRepository.
//
// Conditional insert, same shape as CreateActive: the partial unique index on
// (time_log_id) WHERE status = 'active' backs the NOT EXISTS check. The EXISTS
// check on the parent session mirrors Complete's break guard, so a break can
// never attach to a session that was just completed.
func (r *timeLogRepository) StartBreak(ctx context.Context, timeLogID string, startTime time.Time) (timelog.BreakInterval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_log_breaks (id, time_log_id, start_time, status)
		SELECT $1, $2, $3, 'active'
		WHERE EXISTS (
			SELECT 1 FROM time_logs
			WHERE id = $2 AND status = 'active'
		)
		AND NOT EXISTS (
			SELECT 1 FROM time_log_breaks
			WHERE time_log_id = $2 AND status = 'active'
		)
		RETURNING id, time_log_id, start_time, end_time, status, duration, created_at
	`

	var b timelog.BreakInterval
	err := q.QueryRow(ctx, query, uuid.NewString(), timeLogID, startTime).Scan(
		&b.ID, &b.TimeLogID, &b.StartTime, &b.EndTime, &b.Status, &b.Duration, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var sessionActive bool
			checkQuery := `
				SELECT EXISTS (
					SELECT 1 FROM time_logs
					WHERE id = $1 AND status = 'active'
				)
			`
			if checkErr := q.QueryRow(ctx, checkQuery, timeLogID).Scan(&sessionActive); checkErr == nil && !sessionActive {
				return timelog.BreakInterval{}, timelog.ErrNoActiveSession
			}
			return timelog.BreakInterval{}, timelog.ErrBreakInProgress
		}
		return timelog.BreakInterval{}, fmt.Errorf("failed to start break: %w", err)
	}

	return b, nil
}

// EndBreak implements timelog.TimeLogRepository.
//
// The break row and the session's running total change together inside one
// transaction. Duration is rounded to 2 decimals, and the accumulated total
// is re-rounded after the increment is added.
func (r *timeLogRepository) EndBreak(ctx context.Context, timeLogID string, endTime time.Time) (timelog.BreakInterval, error) {
	var b timelog.BreakInterval

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		closeQuery := `
			UPDATE time_log_breaks
			SET end_time = $2,
			    status = 'completed',
			    duration = ROUND((EXTRACT(EPOCH FROM ($2::timestamptz - start_time)) / 3600.0)::numeric, 2)
			WHERE time_log_id = $1 AND status = 'active'
			RETURNING id, time_log_id, start_time, end_time, status, duration, created_at
		`

		err := q.QueryRow(txCtx, closeQuery, timeLogID, endTime).Scan(
			&b.ID, &b.TimeLogID, &b.StartTime, &b.EndTime, &b.Status, &b.Duration, &b.CreatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return timelog.ErrNoActiveBreak
			}
			return fmt.Errorf("failed to end break: %w", err)
		}

		accumulateQuery := `
			UPDATE time_logs
			SET total_break_hours = ROUND((total_break_hours + $2)::numeric, 2),
			    updated_at = now()
			WHERE id = $1
		`

		if _, err := q.Exec(txCtx, accumulateQuery, timeLogID, b.Duration); err != nil {
			return fmt.Errorf("failed to accumulate break hours: %w", err)
		}

		return nil
	})
	if err != nil {
		return timelog.BreakInterval{}, err
	}

	return b, nil
}

// ListByEmployee implements timelog.TimeLogRepository.
func (r *timeLogRepository) ListByEmployee(ctx context.Context, employeeID string, filter timelog.TimeLogFilter) ([]timelog.TimeLog, int64, error) {
	f := filter
	f.EmployeeID = &employeeID
	return r.List(ctx, f)
}

// List implements timelog.TimeLogRepository.
func (r *timeLogRepository) List(ctx context.Context, filter timelog.TimeLogFilter) ([]timelog.TimeLog, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	// Date range filters on the login timestamp
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND login_time >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND login_time < $%d::date + interval '1 day'", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	// Count total
	countQuery := "SELECT COUNT(*) FROM time_logs WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time logs: %w", err)
	}

	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	offset := (page - 1) * limit

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM time_logs
		WHERE %s
		ORDER BY login_time %s
		LIMIT $%d OFFSET $%d
	`, timeLogColumns, baseWhere, sortOrder, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query time logs: %w", err)
	}
	defer rows.Close()

	var logs []timelog.TimeLog
	for rows.Next() {
		t, err := scanTimeLog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan time log: %w", err)
		}
		logs = append(logs, t)
	}

	if err := r.loadBreaks(ctx, q, logs); err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// ListAllByEmployee implements timelog.TimeLogRepository.
func (r *timeLogRepository) ListAllByEmployee(ctx context.Context, employeeID string) ([]timelog.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeLogColumns + `
		FROM time_logs
		WHERE employee_id = $1
		ORDER BY login_time ASC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time logs: %w", err)
	}
	defer rows.Close()

	var logs []timelog.TimeLog
	for rows.Next() {
		t, err := scanTimeLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time log: %w", err)
		}
		logs = append(logs, t)
	}

	if err := r.loadBreaks(ctx, q, logs); err != nil {
		return nil, err
	}

	return logs, nil
}

// UpdateNotes implements timelog.TimeLogRepository.
func (r *timeLogRepository) UpdateNotes(ctx context.Context, id string, notes string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_logs
		SET notes = $2, updated_at = now()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, notes).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timelog.ErrTimeLogNotFound
		}
		return fmt.Errorf("failed to update notes: %w", err)
	}

	return nil
}

// DeleteByEmployee implements timelog.TimeLogRepository.
func (r *timeLogRepository) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM time_logs WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to delete time logs: %w", err)
	}

	return nil
}

// loadBreaks attaches break intervals, ordered by start time, to the given
// logs in place.
func (r *timeLogRepository) loadBreaks(ctx context.Context, q database.Querier, logs []timelog.TimeLog) error {
	if len(logs) == 0 {
		return nil
	}

	ids := make([]string, 0, len(logs))
	byID := make(map[string]int, len(logs))
	for i, t := range logs {
		ids = append(ids, t.ID)
		byID[t.ID] = i
	}

	query := `
		SELECT id, time_log_id, start_time, end_time, status, duration, created_at
		FROM time_log_breaks
		WHERE time_log_id = ANY($1::uuid[])
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query breaks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b timelog.BreakInterval
		if err := rows.Scan(&b.ID, &b.TimeLogID, &b.StartTime, &b.EndTime, &b.Status, &b.Duration, &b.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan break: %w", err)
		}
		if i, ok := byID[b.TimeLogID]; ok {
			logs[i].Breaks = append(logs[i].Breaks, b)
		}
	}

	return nil
}

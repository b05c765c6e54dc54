package timelog

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shiftlog-hq/timetracker-backend-go/internal/domain/timelog"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/pkg/jwt"
)

type TimeLogServiceImpl struct {
	repo       timelog.TimeLogRepository
	calculator timelog.HoursCalculator
	aggregator *StatsAggregator
	now        func() time.Time
}

func NewTimeLogService(
	repo timelog.TimeLogRepository,
	calculator timelog.HoursCalculator,
	aggregator *StatsAggregator,
) timelog.TimeLogService {
	return &TimeLogServiceImpl{
		repo:       repo,
		calculator: calculator,
		aggregator: aggregator,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ClockIn implements timelog.TimeLogService.
func (s *TimeLogServiceImpl) ClockIn(ctx context.Context) (timelog.TimeLogResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return timelog.TimeLogResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	log, err := s.repo.CreateActive(ctx, identity.EmployeeID, s.now())
	if err != nil {
		return timelog.TimeLogResponse{}, err
	}

	return timelog.ToResponse(log), nil
}

// ClockOut implements timelog.TimeLogService.
func (s *TimeLogServiceImpl) ClockOut(ctx context.Context) (timelog.TimeLogResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return timelog.TimeLogResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	log, err := s.repo.GetActiveByEmployee(ctx, identity.EmployeeID)
	if err != nil {
		return timelog.TimeLogResponse{}, err
	}

	if s.calculator.TracksBreaks() && log.HasActiveBreak() {
		return timelog.TimeLogResponse{}, timelog.ErrClockOutDuringBreak
	}

	logoutTime := s.now()
	log.LogoutTime = &logoutTime
	s.calculator.Finalize(&log)

	if err := s.repo.Complete(ctx, log); err != nil {
		return timelog.TimeLogResponse{}, err
	}
	log.Status = timelog.StatusCompleted

	return timelog.ToResponse(log), nil
}

// StartBreak implements timelog.TimeLogService.
func (s *TimeLogServiceImpl) StartBreak(ctx context.Context) (timelog.TimeLogResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return timelog.TimeLogResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	if !s.calculator.TracksBreaks() {
		return timelog.TimeLogResponse{}, timelog.ErrBreakTrackingOff
	}

	log, err := s.repo.GetActiveByEmployee(ctx, identity.EmployeeID)
	if err != nil {
		return timelog.TimeLogResponse{}, err
	}

	b, err := s.repo.StartBreak(ctx, log.ID, s.now())
	if err != nil {
		return timelog.TimeLogResponse{}, err
	}
	log.Breaks = append(log.Breaks, b)

	return timelog.ToResponse(log), nil
}

// EndBreak implements timelog.TimeLogService.
func (s *TimeLogServiceImpl) EndBreak(ctx context.Context) (timelog.TimeLogResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return timelog.TimeLogResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	if !s.calculator.TracksBreaks() {
		return timelog.TimeLogResponse{}, timelog.ErrBreakTrackingOff
	}

	log, err := s.repo.GetActiveByEmployee(ctx, identity.EmployeeID)
	if err != nil {
		return timelog.TimeLogResponse{}, err
	}

	if _, err := s.repo.EndBreak(ctx, log.ID, s.now()); err != nil {
		return timelog.TimeLogResponse{}, err
	}

	// Re-read so the response carries the accumulated break total.
	updated, err := s.repo.GetByID(ctx, log.ID)
	if err != nil {
		return timelog.TimeLogResponse{}, fmt.Errorf("failed to get updated time log: %w", err)
	}

	return timelog.ToResponse(updated), nil
}

// GetMyTimeLogs implements timelog.TimeLogService.
func (s *TimeLogServiceImpl) GetMyTimeLogs(ctx context.Context, filter timelog.TimeLogFilter) (timelog.ListTimeLogResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return timelog.ListTimeLogResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	return s.list(ctx, &identity.EmployeeID, filter)
}

// ListTimeLogs implements timelog.TimeLogService.
func (s *TimeLogServiceImpl) ListTimeLogs(ctx context.Context, filter timelog.TimeLogFilter) (timelog.ListTimeLogResponse, error) {
	return s.list(ctx, nil, filter)
}

// GetEmployeeTimeLogs implements timelog.TimeLogService.
func (s *TimeLogServiceImpl) GetEmployeeTimeLogs(ctx context.Context, employeeID string, filter timelog.TimeLogFilter) (timelog.ListTimeLogResponse, error) {
	return s.list(ctx, &employeeID, filter)
}

func (s *TimeLogServiceImpl) list(ctx context.Context, employeeID *string, filter timelog.TimeLogFilter) (timelog.ListTimeLogResponse, error) {
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}

	var (
		logs  []timelog.TimeLog
		total int64
		err   error
	)
	if employeeID != nil {
		logs, total, err = s.repo.ListByEmployee(ctx, *employeeID, filter)
	} else {
		logs, total, err = s.repo.List(ctx, filter)
	}
	if err != nil {
		return timelog.ListTimeLogResponse{}, fmt.Errorf("failed to list time logs: %w", err)
	}

	responses := make([]timelog.TimeLogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, timelog.ToResponse(log))
	}

	return timelog.ListTimeLogResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		TimeLogs:   responses,
	}, nil
}

// GetMyStats implements timelog.TimeLogService.
func (s *TimeLogServiceImpl) GetMyStats(ctx context.Context) (timelog.StatsResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return timelog.StatsResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	return s.GetEmployeeStats(ctx, identity.EmployeeID)
}

// GetEmployeeStats implements timelog.TimeLogService.
func (s *TimeLogServiceImpl) GetEmployeeStats(ctx context.Context, employeeID string) (timelog.StatsResponse, error) {
	logs, err := s.repo.ListAllByEmployee(ctx, employeeID)
	if err != nil {
		return timelog.StatsResponse{}, fmt.Errorf("failed to load time logs for stats: %w", err)
	}

	return s.aggregator.Aggregate(employeeID, logs, s.now()), nil
}

// UpdateNotes implements timelog.TimeLogService.
//
// Owner or admin may edit notes; nobody may edit hour fields.
func (s *TimeLogServiceImpl) UpdateNotes(ctx context.Context, req timelog.UpdateNotesRequest) (timelog.TimeLogResponse, error) {
	if err := req.Validate(); err != nil {
		return timelog.TimeLogResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return timelog.TimeLogResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	log, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return timelog.TimeLogResponse{}, err
	}

	isOwner := log.EmployeeID == identity.EmployeeID
	if !isOwner && !identity.Role.IsAdmin() {
		return timelog.TimeLogResponse{}, timelog.ErrNotesEditForbidden
	}

	if err := s.repo.UpdateNotes(ctx, log.ID, req.Notes); err != nil {
		return timelog.TimeLogResponse{}, err
	}
	log.Notes = &req.Notes

	return timelog.ToResponse(log), nil
}

package timelog

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftlog-hq/timetracker-backend-go/internal/domain/timelog"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/domain/user"
)

const testSecret = "test-secret-key-for-jwt"

var testAuth = jwtauth.New("HS256", []byte(testSecret), nil)

func authedContext(t *testing.T, employeeID string, role user.Role) context.Context {
	t.Helper()
	token, _, err := testAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"name":        "Test User",
		"role":        string(role),
		"type":        "access",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// fakeTimeLogRepo is an in-memory TimeLogRepository that enforces the same
// one-active-session and one-active-break rules as the SQL implementation.
type fakeTimeLogRepo struct {
	logs   map[string]*timelog.TimeLog
	nextID int
}

func newFakeTimeLogRepo() *fakeTimeLogRepo {
	return &fakeTimeLogRepo{logs: make(map[string]*timelog.TimeLog)}
}

func (r *fakeTimeLogRepo) id() string {
	r.nextID++
	return "id-" + strconv.Itoa(r.nextID)
}

func (r *fakeTimeLogRepo) CreateActive(ctx context.Context, employeeID string, loginTime time.Time) (timelog.TimeLog, error) {
	for _, l := range r.logs {
		if l.EmployeeID == employeeID && l.Status == timelog.StatusActive {
			return timelog.TimeLog{}, timelog.ErrActiveSessionExists
		}
	}
	log := &timelog.TimeLog{
		ID:         r.id(),
		EmployeeID: employeeID,
		LoginTime:  loginTime,
		Status:     timelog.StatusActive,
		CreatedAt:  loginTime,
		UpdatedAt:  loginTime,
	}
	r.logs[log.ID] = log
	return *log, nil
}

func (r *fakeTimeLogRepo) GetActiveByEmployee(ctx context.Context, employeeID string) (timelog.TimeLog, error) {
	for _, l := range r.logs {
		if l.EmployeeID == employeeID && l.Status == timelog.StatusActive {
			return *l, nil
		}
	}
	return timelog.TimeLog{}, timelog.ErrNoActiveSession
}

func (r *fakeTimeLogRepo) GetByID(ctx context.Context, id string) (timelog.TimeLog, error) {
	l, ok := r.logs[id]
	if !ok {
		return timelog.TimeLog{}, timelog.ErrTimeLogNotFound
	}
	return *l, nil
}

func (r *fakeTimeLogRepo) Complete(ctx context.Context, log timelog.TimeLog) error {
	stored, ok := r.logs[log.ID]
	if !ok || stored.Status != timelog.StatusActive {
		return timelog.ErrNoActiveSession
	}
	// Same guard the SQL carries: the stored row, not the caller's copy,
	// decides whether a break is still running.
	if stored.HasActiveBreak() {
		return timelog.ErrClockOutDuringBreak
	}
	log.Status = timelog.StatusCompleted
	log.Breaks = stored.Breaks
	r.logs[log.ID] = &log
	return nil
}

func (r *fakeTimeLogRepo) StartBreak(ctx context.Context, timeLogID string, startTime time.Time) (timelog.BreakInterval, error) {
	l, ok := r.logs[timeLogID]
	if !ok || l.Status != timelog.StatusActive {
		return timelog.BreakInterval{}, timelog.ErrNoActiveSession
	}
	if l.HasActiveBreak() {
		return timelog.BreakInterval{}, timelog.ErrBreakInProgress
	}
	b := timelog.BreakInterval{
		ID:        r.id(),
		TimeLogID: timeLogID,
		StartTime: startTime,
		Status:    timelog.StatusActive,
	}
	l.Breaks = append(l.Breaks, b)
	return b, nil
}

func (r *fakeTimeLogRepo) EndBreak(ctx context.Context, timeLogID string, endTime time.Time) (timelog.BreakInterval, error) {
	l, ok := r.logs[timeLogID]
	if !ok {
		return timelog.BreakInterval{}, timelog.ErrNoActiveBreak
	}
	for i := range l.Breaks {
		if l.Breaks[i].Status == timelog.StatusActive {
			b := &l.Breaks[i]
			b.EndTime = &endTime
			b.Status = timelog.StatusCompleted
			b.Duration = timelog.Round2(endTime.Sub(b.StartTime).Hours())
			l.TotalBreakHours = timelog.Round2(l.TotalBreakHours + b.Duration)
			return *b, nil
		}
	}
	return timelog.BreakInterval{}, timelog.ErrNoActiveBreak
}

func (r *fakeTimeLogRepo) ListByEmployee(ctx context.Context, employeeID string, filter timelog.TimeLogFilter) ([]timelog.TimeLog, int64, error) {
	var out []timelog.TimeLog
	for _, l := range r.logs {
		if l.EmployeeID == employeeID {
			out = append(out, *l)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeTimeLogRepo) List(ctx context.Context, filter timelog.TimeLogFilter) ([]timelog.TimeLog, int64, error) {
	var out []timelog.TimeLog
	for _, l := range r.logs {
		out = append(out, *l)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTimeLogRepo) ListAllByEmployee(ctx context.Context, employeeID string) ([]timelog.TimeLog, error) {
	var out []timelog.TimeLog
	for _, l := range r.logs {
		if l.EmployeeID == employeeID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeTimeLogRepo) UpdateNotes(ctx context.Context, id string, notes string) error {
	l, ok := r.logs[id]
	if !ok {
		return timelog.ErrTimeLogNotFound
	}
	l.Notes = &notes
	return nil
}

func (r *fakeTimeLogRepo) DeleteByEmployee(ctx context.Context, employeeID string) error {
	for id, l := range r.logs {
		if l.EmployeeID == employeeID {
			delete(r.logs, id)
		}
	}
	return nil
}

func newTestService(t *testing.T, policy timelog.Policy, repo timelog.TimeLogRepository) *TimeLogServiceImpl {
	t.Helper()
	calc, err := NewHoursCalculator(policy)
	require.NoError(t, err)
	svc := NewTimeLogService(repo, calc, NewStatsAggregator(time.UTC)).(*TimeLogServiceImpl)
	return svc
}

func TestTimeLogService_ClockIn(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := newTestService(t, timelog.PolicyBreakSubtraction, repo)
	ctx := authedContext(t, "EMP001", user.RoleEmployee)

	result, err := svc.ClockIn(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EMP001", result.EmployeeID)
	assert.Equal(t, string(timelog.StatusActive), result.Status)

	// A second clock-in while a session is open must be rejected.
	_, err = svc.ClockIn(ctx)
	assert.ErrorIs(t, err, timelog.ErrActiveSessionExists)
}

func TestTimeLogService_ClockIn_DifferentEmployees(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := newTestService(t, timelog.PolicyBreakSubtraction, repo)

	_, err := svc.ClockIn(authedContext(t, "EMP001", user.RoleEmployee))
	require.NoError(t, err)
	_, err = svc.ClockIn(authedContext(t, "EMP002", user.RoleEmployee))
	assert.NoError(t, err)
}

func TestTimeLogService_ClockOut(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := newTestService(t, timelog.PolicyBreakSubtraction, repo)
	ctx := authedContext(t, "EMP001", user.RoleEmployee)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }
	_, err := svc.ClockIn(ctx)
	require.NoError(t, err)

	svc.now = func() time.Time { return start.Add(8 * time.Hour) }
	result, err := svc.ClockOut(ctx)
	require.NoError(t, err)

	assert.Equal(t, string(timelog.StatusCompleted), result.Status)
	assert.Equal(t, 8.0, result.TotalHours)
	require.NotNil(t, result.NetWorkHours)
	assert.Equal(t, 8.0, *result.NetWorkHours)

	// Session is gone; a second clock-out finds nothing.
	_, err = svc.ClockOut(ctx)
	assert.ErrorIs(t, err, timelog.ErrNoActiveSession)
}

func TestTimeLogService_ClockOut_DuringBreak(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := newTestService(t, timelog.PolicyBreakSubtraction, repo)
	ctx := authedContext(t, "EMP001", user.RoleEmployee)

	_, err := svc.ClockIn(ctx)
	require.NoError(t, err)
	_, err = svc.StartBreak(ctx)
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx)
	assert.ErrorIs(t, err, timelog.ErrClockOutDuringBreak)

	// Ending the break unblocks the clock-out.
	_, err = svc.EndBreak(ctx)
	require.NoError(t, err)
	_, err = svc.ClockOut(ctx)
	assert.NoError(t, err)
}

func TestTimeLogRepo_Complete_RejectsActiveBreak(t *testing.T) {
	repo := newFakeTimeLogRepo()
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	log, err := repo.CreateActive(ctx, "EMP001", start)
	require.NoError(t, err)

	// A break lands after the clock-out path took its snapshot of the row.
	_, err = repo.StartBreak(ctx, log.ID, start.Add(time.Hour))
	require.NoError(t, err)

	stale := log
	logout := start.Add(8 * time.Hour)
	stale.LogoutTime = &logout
	err = repo.Complete(ctx, stale)
	assert.ErrorIs(t, err, timelog.ErrClockOutDuringBreak)

	// The session stays active and the break stays endable.
	_, err = repo.GetActiveByEmployee(ctx, "EMP001")
	require.NoError(t, err)
	_, err = repo.EndBreak(ctx, log.ID, start.Add(90*time.Minute))
	require.NoError(t, err)
	require.NoError(t, repo.Complete(ctx, stale))
}

func TestTimeLogRepo_StartBreak_RejectsCompletedSession(t *testing.T) {
	repo := newFakeTimeLogRepo()
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	log, err := repo.CreateActive(ctx, "EMP001", start)
	require.NoError(t, err)
	logout := start.Add(8 * time.Hour)
	log.LogoutTime = &logout
	require.NoError(t, repo.Complete(ctx, log))

	// A clock-out that committed first must block the late break.
	_, err = repo.StartBreak(ctx, log.ID, start.Add(4*time.Hour))
	assert.ErrorIs(t, err, timelog.ErrNoActiveSession)
}

func TestTimeLogService_Breaks(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := newTestService(t, timelog.PolicyBreakSubtraction, repo)
	ctx := authedContext(t, "EMP001", user.RoleEmployee)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }
	_, err := svc.ClockIn(ctx)
	require.NoError(t, err)

	svc.now = func() time.Time { return start.Add(2 * time.Hour) }
	result, err := svc.StartBreak(ctx)
	require.NoError(t, err)
	require.Len(t, result.Breaks, 1)
	assert.Equal(t, string(timelog.StatusActive), result.Breaks[0].Status)

	// Only one break may run at a time.
	_, err = svc.StartBreak(ctx)
	assert.ErrorIs(t, err, timelog.ErrBreakInProgress)

	svc.now = func() time.Time { return start.Add(2*time.Hour + 30*time.Minute) }
	result, err = svc.EndBreak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.5, result.TotalBreakHours)

	// No running break left to end.
	_, err = svc.EndBreak(ctx)
	assert.ErrorIs(t, err, timelog.ErrNoActiveBreak)
}

func TestTimeLogService_Breaks_AccumulateAcrossIntervals(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := newTestService(t, timelog.PolicyBreakSubtraction, repo)
	ctx := authedContext(t, "EMP001", user.RoleEmployee)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }
	_, err := svc.ClockIn(ctx)
	require.NoError(t, err)

	svc.now = func() time.Time { return start.Add(1 * time.Hour) }
	_, err = svc.StartBreak(ctx)
	require.NoError(t, err)
	svc.now = func() time.Time { return start.Add(1*time.Hour + 15*time.Minute) }
	_, err = svc.EndBreak(ctx)
	require.NoError(t, err)

	svc.now = func() time.Time { return start.Add(4 * time.Hour) }
	_, err = svc.StartBreak(ctx)
	require.NoError(t, err)
	svc.now = func() time.Time { return start.Add(4*time.Hour + 45*time.Minute) }
	result, err := svc.EndBreak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.TotalBreakHours)

	svc.now = func() time.Time { return start.Add(8 * time.Hour) }
	out, err := svc.ClockOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8.0, out.TotalHours)
	require.NotNil(t, out.NetWorkHours)
	assert.Equal(t, 7.0, *out.NetWorkHours)
}

func TestTimeLogService_Breaks_FixedLunchPolicy(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := newTestService(t, timelog.PolicyFixedLunch, repo)
	ctx := authedContext(t, "EMP001", user.RoleEmployee)

	_, err := svc.ClockIn(ctx)
	require.NoError(t, err)

	_, err = svc.StartBreak(ctx)
	assert.ErrorIs(t, err, timelog.ErrBreakTrackingOff)
	_, err = svc.EndBreak(ctx)
	assert.ErrorIs(t, err, timelog.ErrBreakTrackingOff)
}

func TestTimeLogService_ClockOut_FixedLunchPolicy(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := newTestService(t, timelog.PolicyFixedLunch, repo)
	ctx := authedContext(t, "EMP001", user.RoleEmployee)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }
	_, err := svc.ClockIn(ctx)
	require.NoError(t, err)

	svc.now = func() time.Time { return start.Add(9 * time.Hour) }
	result, err := svc.ClockOut(ctx)
	require.NoError(t, err)

	assert.Equal(t, 9.0, result.TotalHours)
	require.NotNil(t, result.AdjustedHours)
	assert.Equal(t, 8.0, *result.AdjustedHours)
	assert.True(t, result.LunchBreakDeducted)
	assert.Nil(t, result.NetWorkHours)
}

func TestTimeLogService_UpdateNotes(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := newTestService(t, timelog.PolicyBreakSubtraction, repo)
	ownerCtx := authedContext(t, "EMP001", user.RoleEmployee)

	created, err := svc.ClockIn(ownerCtx)
	require.NoError(t, err)

	result, err := svc.UpdateNotes(ownerCtx, timelog.UpdateNotesRequest{
		ID:    created.ID,
		Notes: "worked on the quarterly report",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Notes)
	assert.Equal(t, "worked on the quarterly report", *result.Notes)
}

func TestTimeLogService_UpdateNotes_OtherEmployeeForbidden(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := newTestService(t, timelog.PolicyBreakSubtraction, repo)

	created, err := svc.ClockIn(authedContext(t, "EMP001", user.RoleEmployee))
	require.NoError(t, err)

	_, err = svc.UpdateNotes(authedContext(t, "EMP002", user.RoleEmployee), timelog.UpdateNotesRequest{
		ID:    created.ID,
		Notes: "not mine",
	})
	assert.ErrorIs(t, err, timelog.ErrNotesEditForbidden)

	// Admins may edit anyone's notes.
	_, err = svc.UpdateNotes(authedContext(t, "ADM001", user.RoleAdmin), timelog.UpdateNotesRequest{
		ID:    created.ID,
		Notes: "adjusted by admin",
	})
	assert.NoError(t, err)
}

func TestTimeLogService_UpdateNotes_NotFound(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := newTestService(t, timelog.PolicyBreakSubtraction, repo)

	_, err := svc.UpdateNotes(authedContext(t, "EMP001", user.RoleEmployee), timelog.UpdateNotesRequest{
		ID:    "missing",
		Notes: "anything",
	})
	assert.ErrorIs(t, err, timelog.ErrTimeLogNotFound)
}

func TestTimeLogService_GetMyStats(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := newTestService(t, timelog.PolicyBreakSubtraction, repo)
	ctx := authedContext(t, "EMP001", user.RoleEmployee)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }
	_, err := svc.ClockIn(ctx)
	require.NoError(t, err)
	svc.now = func() time.Time { return start.Add(4 * time.Hour) }
	_, err = svc.ClockOut(ctx)
	require.NoError(t, err)

	svc.now = func() time.Time { return start.Add(5 * time.Hour) }
	stats, err := svc.GetMyStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, "EMP001", stats.EmployeeID)
	assert.Equal(t, 4.0, stats.Today.NetHours)
	assert.Equal(t, 4.0, stats.AllTime.NetHours)
	assert.Equal(t, 1, stats.TotalDaysWorked)
}

func TestTimeLogService_GetMyTimeLogs(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := newTestService(t, timelog.PolicyBreakSubtraction, repo)
	ctx := authedContext(t, "EMP001", user.RoleEmployee)

	_, err := svc.ClockIn(ctx)
	require.NoError(t, err)

	result, err := svc.GetMyTimeLogs(ctx, timelog.TimeLogFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalCount)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.Limit)
	assert.Equal(t, 1, result.TotalPages)
	require.Len(t, result.TimeLogs, 1)
}

func TestTimeLogService_NoClaims(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := newTestService(t, timelog.PolicyBreakSubtraction, repo)

	_, err := svc.ClockIn(context.Background())
	assert.Error(t, err)
}

package timelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftlog-hq/timetracker-backend-go/internal/domain/timelog"
)

func completedLog(start time.Time, worked time.Duration, breakHours float64) timelog.TimeLog {
	logout := start.Add(worked)
	return timelog.TimeLog{
		ID:              "log-1",
		EmployeeID:      "EMP001",
		LoginTime:       start,
		LogoutTime:      &logout,
		TotalBreakHours: breakHours,
	}
}

func TestNewHoursCalculator(t *testing.T) {
	calc, err := NewHoursCalculator(timelog.PolicyBreakSubtraction)
	require.NoError(t, err)
	assert.Equal(t, timelog.PolicyBreakSubtraction, calc.Policy())
	assert.True(t, calc.TracksBreaks())

	calc, err = NewHoursCalculator(timelog.PolicyFixedLunch)
	require.NoError(t, err)
	assert.Equal(t, timelog.PolicyFixedLunch, calc.Policy())
	assert.False(t, calc.TracksBreaks())

	_, err = NewHoursCalculator(timelog.Policy("hourly"))
	assert.Error(t, err)
}

func TestBreakSubtraction_Finalize(t *testing.T) {
	calc, err := NewHoursCalculator(timelog.PolicyBreakSubtraction)
	require.NoError(t, err)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	log := completedLog(start, 8*time.Hour+30*time.Minute, 1.0)

	calc.Finalize(&log)

	assert.Equal(t, 8.5, log.TotalHours)
	require.NotNil(t, log.NetWorkHours)
	assert.Equal(t, 7.5, *log.NetWorkHours)
	assert.Nil(t, log.AdjustedHours)
	assert.False(t, log.LunchBreakDeducted)
}

func TestBreakSubtraction_Finalize_NoBreaks(t *testing.T) {
	calc, err := NewHoursCalculator(timelog.PolicyBreakSubtraction)
	require.NoError(t, err)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	log := completedLog(start, 4*time.Hour, 0)

	calc.Finalize(&log)

	assert.Equal(t, 4.0, log.TotalHours)
	require.NotNil(t, log.NetWorkHours)
	assert.Equal(t, 4.0, *log.NetWorkHours)
}

func TestBreakSubtraction_Finalize_Rounding(t *testing.T) {
	calc, err := NewHoursCalculator(timelog.PolicyBreakSubtraction)
	require.NoError(t, err)

	// 7h20m = 7.333... rounds to 7.33
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	log := completedLog(start, 7*time.Hour+20*time.Minute, 0.5)

	calc.Finalize(&log)

	assert.Equal(t, 7.33, log.TotalHours)
	require.NotNil(t, log.NetWorkHours)
	assert.Equal(t, 6.83, *log.NetWorkHours)
}

func TestFixedLunch_Finalize_AboveThreshold(t *testing.T) {
	calc, err := NewHoursCalculator(timelog.PolicyFixedLunch)
	require.NoError(t, err)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	log := completedLog(start, 8*time.Hour, 0)

	calc.Finalize(&log)

	assert.Equal(t, 8.0, log.TotalHours)
	require.NotNil(t, log.AdjustedHours)
	assert.Equal(t, 7.0, *log.AdjustedHours)
	assert.True(t, log.LunchBreakDeducted)
	assert.Nil(t, log.NetWorkHours)
}

func TestFixedLunch_Finalize_AtThreshold(t *testing.T) {
	calc, err := NewHoursCalculator(timelog.PolicyFixedLunch)
	require.NoError(t, err)

	// Exactly 5 hours still triggers the deduction.
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	log := completedLog(start, 5*time.Hour, 0)

	calc.Finalize(&log)

	assert.Equal(t, 5.0, log.TotalHours)
	require.NotNil(t, log.AdjustedHours)
	assert.Equal(t, 4.0, *log.AdjustedHours)
	assert.True(t, log.LunchBreakDeducted)
}

func TestFixedLunch_Finalize_BelowThreshold(t *testing.T) {
	calc, err := NewHoursCalculator(timelog.PolicyFixedLunch)
	require.NoError(t, err)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	log := completedLog(start, 4*time.Hour+59*time.Minute, 0)

	calc.Finalize(&log)

	assert.Equal(t, 4.98, log.TotalHours)
	require.NotNil(t, log.AdjustedHours)
	assert.Equal(t, 4.98, *log.AdjustedHours)
	assert.False(t, log.LunchBreakDeducted)
}

func TestRound2(t *testing.T) {
	cases := []struct {
		input float64
		want  float64
	}{
		{7.333333, 7.33},
		{7.666666, 7.67},
		{0.125, 0.13}, // halves round away from zero
		{-0.125, -0.13},
		{8.5, 8.5},
		{0, 0},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, timelog.Round2(c.input), 1e-9, "Round2(%v)", c.input)
	}
}

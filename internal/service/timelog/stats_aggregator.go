package timelog

import (
	"time"

	"github.com/shiftlog-hq/timetracker-backend-go/internal/domain/timelog"
)

// StatsAggregator summarizes an employee's completed sessions over trailing
// windows. It is a pure, total function over its input: empty input yields an
// all-zero record, never an error.
type StatsAggregator struct {
	loc *time.Location
}

func NewStatsAggregator(loc *time.Location) *StatsAggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &StatsAggregator{loc: loc}
}

// Aggregate computes the statistics record for one employee's sessions as of
// now. Only completed sessions contribute; session membership in a window is
// decided by the login time. Numeric outputs are rounded once, at the end.
func (a *StatsAggregator) Aggregate(employeeID string, logs []timelog.TimeLog, now time.Time) timelog.StatsResponse {
	nowLocal := now.In(a.loc)
	midnight := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, a.loc)
	weekStart := midnight.AddDate(0, 0, -7)
	monthStart := monthBefore(midnight)

	var today, week, month, allTime timelog.WindowTotals
	var dist timelog.BreakDistribution

	daysWorked := make(map[string]struct{})
	sessionsWithBreaks := 0

	for _, log := range logs {
		if !log.IsCompleted() {
			continue
		}

		login := log.LoginTime.In(a.loc)
		net := log.NetHours()

		accumulate(&allTime, log, net)
		if !login.Before(monthStart) {
			accumulate(&month, log, net)
		}
		if !login.Before(weekStart) {
			accumulate(&week, log, net)
		}
		if !login.Before(midnight) {
			accumulate(&today, log, net)
		}

		daysWorked[login.Format("2006-01-02")] = struct{}{}
		if log.TotalBreakHours > 0 {
			sessionsWithBreaks++
		}

		for _, b := range log.Breaks {
			if b.Status != timelog.StatusCompleted {
				continue
			}
			switch hour := b.StartTime.In(a.loc).Hour(); {
			case hour < 12:
				dist.Morning += b.Duration
			case hour < 17:
				dist.Afternoon += b.Duration
			default:
				dist.Evening += b.Duration
			}
		}
	}

	avgDaily := 0.0
	if len(daysWorked) > 0 {
		avgDaily = allTime.NetHours / float64(len(daysWorked))
	}

	avgBreak := 0.0
	if sessionsWithBreaks > 0 {
		avgBreak = allTime.BreakHours / float64(sessionsWithBreaks)
	}

	return timelog.StatsResponse{
		EmployeeID:      employeeID,
		Today:           roundTotals(today),
		Week:            roundTotals(week),
		Month:           roundTotals(month),
		AllTime:         roundTotals(allTime),
		TotalDaysWorked: len(daysWorked),
		AvgDailyHours:   timelog.Round2(avgDaily),
		AvgBreakTime:    timelog.Round2(avgBreak),
		BreakDistribution: timelog.BreakDistribution{
			Morning:   timelog.Round2(dist.Morning),
			Afternoon: timelog.Round2(dist.Afternoon),
			Evening:   timelog.Round2(dist.Evening),
		},
	}
}

func accumulate(w *timelog.WindowTotals, log timelog.TimeLog, net float64) {
	w.TotalHours += log.TotalHours
	w.BreakHours += log.TotalBreakHours
	w.NetHours += net
}

func roundTotals(w timelog.WindowTotals) timelog.WindowTotals {
	return timelog.WindowTotals{
		TotalHours: timelog.Round2(w.TotalHours),
		BreakHours: timelog.Round2(w.BreakHours),
		NetHours:   timelog.Round2(w.NetHours),
	}
}

// monthBefore returns the same day-of-month one calendar month earlier,
// clamped to the last valid day of that month. time.AddDate would normalize
// Mar 31 - 1 month into Mar 3; the clamp keeps it at Feb 28/29.
func monthBefore(t time.Time) time.Time {
	year, month := t.Year(), t.Month()
	if month == time.January {
		year, month = year-1, time.December
	} else {
		month--
	}

	day := t.Day()
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

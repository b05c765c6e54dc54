package timelog

import (
	"fmt"

	"github.com/shiftlog-hq/timetracker-backend-go/internal/domain/timelog"
)

// NewHoursCalculator builds the calculator for the configured policy.
func NewHoursCalculator(policy timelog.Policy) (timelog.HoursCalculator, error) {
	switch policy {
	case timelog.PolicyBreakSubtraction:
		return &breakSubtractionCalculator{}, nil
	case timelog.PolicyFixedLunch:
		return &fixedLunchCalculator{}, nil
	default:
		return nil, fmt.Errorf("unknown hours policy %q", policy)
	}
}

// breakSubtractionCalculator derives net work hours by subtracting tracked
// break time from the raw elapsed hours.
type breakSubtractionCalculator struct{}

func (c *breakSubtractionCalculator) Policy() timelog.Policy {
	return timelog.PolicyBreakSubtraction
}

func (c *breakSubtractionCalculator) TracksBreaks() bool {
	return true
}

func (c *breakSubtractionCalculator) Finalize(log *timelog.TimeLog) {
	total := timelog.Round2(log.LogoutTime.Sub(log.LoginTime).Hours())
	net := timelog.Round2(total - log.TotalBreakHours)

	log.TotalHours = total
	log.NetWorkHours = &net
	log.AdjustedHours = nil
	log.LunchBreakDeducted = false
}

// fixedLunchCalculator deducts a fixed 1 hour lunch from sessions of at least
// 5 raw hours. Break intervals are not tracked under this policy.
type fixedLunchCalculator struct{}

const (
	lunchThresholdHours = 5.0
	lunchDeductionHours = 1.0
)

func (c *fixedLunchCalculator) Policy() timelog.Policy {
	return timelog.PolicyFixedLunch
}

func (c *fixedLunchCalculator) TracksBreaks() bool {
	return false
}

func (c *fixedLunchCalculator) Finalize(log *timelog.TimeLog) {
	total := timelog.Round2(log.LogoutTime.Sub(log.LoginTime).Hours())

	adjusted := total
	deducted := false
	if total >= lunchThresholdHours {
		adjusted = total - lunchDeductionHours
		if adjusted < 0 {
			adjusted = 0
		}
		deducted = true
	}
	adjusted = timelog.Round2(adjusted)

	log.TotalHours = total
	log.AdjustedHours = &adjusted
	log.NetWorkHours = nil
	log.LunchBreakDeducted = deducted
}

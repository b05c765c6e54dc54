package timelog

// Policy identifies how raw clock timestamps become billable hours. The
// policy is a deployment-level choice; a running instance never mixes both.
type Policy string

const (
	// PolicyBreakSubtraction tracks break intervals and subtracts their
	// summed duration from the raw elapsed hours.
	PolicyBreakSubtraction Policy = "break_subtraction"

	// PolicyFixedLunch deducts a fixed 1 hour lunch from sessions of at
	// least 5 raw hours and does not track break intervals at all.
	PolicyFixedLunch Policy = "fixed_lunch"
)

// HoursCalculator converts a session's timestamps and breaks into stored hour
// fields. Finalize is called exactly once, at clock-out, after LogoutTime has
// been set.
type HoursCalculator interface {
	Policy() Policy

	// TracksBreaks reports whether break intervals are recorded under this
	// policy.
	TracksBreaks() bool

	// Finalize fills TotalHours and the policy's derived field on the log.
	Finalize(log *TimeLog)
}

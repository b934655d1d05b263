// Package planner contains the adaptive session allocator: preference
// normalization, course ranking and multi-day schedule generation. Everything
// here is a pure, deterministic function of its inputs so callers can re-run,
// memoize or parallelize invocations freely.
package planner

// Config holds the allocator tunables. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// StatusBoost multiplies the urgency score of every ongoing course.
	StatusBoost float64
	// Window start hours (hour of day).
	MorningStart   int
	AfternoonStart int
	EveningStart   int
	// HoursPerCredit converts credit hours into a weekly study-hour target.
	HoursPerCredit float64
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		StatusBoost:    1.5,
		MorningStart:   9,
		AfternoonStart: 13,
		EveningStart:   17,
		HoursPerCredit: 2.0,
	}
}

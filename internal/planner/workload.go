package planner

import "github.com/aboagye/studyflow/internal/models"

// RecommendedWeeklyHours converts a course's credit hours into a weekly
// study-hour target: two hours per credit, scaled by relative difficulty.
// A default 3-credit, difficulty-3 course targets 6 hours per week.
func RecommendedWeeklyHours(course models.Course, cfg Config) float64 {
	credits := course.CreditHours
	if credits <= 0 {
		credits = 3
	}
	difficulty := course.Difficulty
	if difficulty < 1 || difficulty > 5 {
		difficulty = 3
	}

	hours := float64(credits) * cfg.HoursPerCredit * (float64(difficulty) / 3.0)
	if hours < 1 {
		hours = 1
	}
	return hours
}

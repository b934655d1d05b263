package planner

import (
	"sort"

	"github.com/aboagye/studyflow/internal/models"
)

// PriorityScore computes the allocation urgency of a single course:
// credit hours weighted by remaining progress, boosted for ongoing status.
func PriorityScore(course models.Course, cfg Config) float64 {
	credits := course.CreditHours
	if credits <= 0 {
		credits = 3
	}
	progress := clampF(course.Progress, 0, 100)
	return float64(credits) * (1 - progress/100) * cfg.StatusBoost
}

// RankCourses filters to ongoing courses and orders them by descending
// priority score. The sort is stable: ties preserve input order. An empty
// result is not an error here; the caller decides whether it is fatal.
func RankCourses(courses []models.Course, cfg Config) []models.Course {
	ranked := make([]models.Course, 0, len(courses))
	for _, c := range courses {
		if c.Status == models.CourseOngoing {
			ranked = append(ranked, c)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return PriorityScore(ranked[i], cfg) > PriorityScore(ranked[j], cfg)
	})
	return ranked
}

package analytics

import (
	"math"

	"github.com/aboagye/studyflow/internal/models"
)

// Weights are the per-factor contributions to the efficiency score. Factors
// without data are dropped and the remainder renormalized, so only the
// relative magnitudes matter.
type Weights struct {
	Assignments    float64
	Quizzes        float64
	Consistency    float64
	TimeAllocation float64
	Diversity      float64
}

// DefaultWeights returns the standard factor weighting.
func DefaultWeights() Weights {
	return Weights{
		Assignments:    0.25,
		Quizzes:        0.25,
		Consistency:    0.20,
		TimeAllocation: 0.15,
		Diversity:      0.15,
	}
}

// quizzesPerStudyBlock is the study-hour block that is expected to produce
// one quiz attempt.
const quizzesPerStudyBlock = 4.0

// efficiencyScore blends up to five weighted factors into a 0-100 score.
// Unavailable factors are skipped and the result renormalized by the weights
// actually used. With no factor data at all the score falls back to course
// progress, or the neutral 50 for a course with no recorded progress.
// A difficulty adjustment is applied last.
func efficiencyScore(d courseData, w Weights) float64 {
	var weighted, used float64

	if v, ok := assignmentFactor(d); ok {
		weighted += v * w.Assignments
		used += w.Assignments
	}
	if v, ok := quizFactor(d); ok {
		weighted += v * w.Quizzes
		used += w.Quizzes
	}
	if v, ok := consistencyFactor(d); ok {
		weighted += v * w.Consistency
		used += w.Consistency
	}
	if v, ok := timeAllocationFactor(d); ok {
		weighted += v * w.TimeAllocation
		used += w.TimeAllocation
	}
	if v, ok := diversityFactor(d); ok {
		weighted += v * w.Diversity
		used += w.Diversity
	}

	var score float64
	if used > 0 {
		score = weighted / used
	} else if d.course.Progress > 0 {
		score = clamp(d.course.Progress, 0, 100)
	} else {
		score = 50
	}

	score -= float64(normalizedDifficulty(d.course)-3) * 5
	return clamp(score, 0, 100)
}

// assignmentFactor scores completion volume and punctuality. An assignment
// with no due date, or one completed without a recorded timestamp, counts as
// on time.
func assignmentFactor(d courseData) (float64, bool) {
	total := len(d.assignments)
	if total == 0 {
		return 0, false
	}

	var completed, onTime int
	for _, a := range d.assignments {
		if a.Status != models.AssignmentCompleted {
			continue
		}
		completed++
		if a.DueDate == nil || a.CompletedAt == nil || !a.CompletedAt.After(*a.DueDate) {
			onTime++
		}
	}

	completionRate := float64(completed) / float64(total) * 100
	onTimeRate := float64(onTime) / float64(total) * 100
	return 0.7*completionRate + 0.3*onTimeRate, true
}

// quizFactor scores average quiz performance plus an engagement bump for
// keeping pace with the expected quiz volume for the hours studied.
func quizFactor(d courseData) (float64, bool) {
	if len(d.quizzes) == 0 {
		return 0, false
	}

	var sum float64
	for _, q := range d.quizzes {
		sum += clamp(q.Percentage, 0, 100)
	}
	avg := sum / float64(len(d.quizzes))

	expected := math.Max(1, math.Floor(d.totalHours/quizzesPerStudyBlock))
	engagement := math.Min(float64(len(d.quizzes))/expected, 1.2) * 10

	return math.Min(avg+engagement, 100), true
}

// consistencyFactor rewards frequent recent sessions and durations close to
// the 90-minute sweet spot.
func consistencyFactor(d courseData) (float64, bool) {
	if len(d.sessions) == 0 {
		return 0, false
	}

	weekAgo := d.asOf.AddDate(0, 0, -7)
	var recent int
	var minutes float64
	for _, s := range d.sessions {
		minutes += float64(s.DurationMinutes)
		if !s.Date.Before(weekAgo) && !s.Date.After(d.asOf) {
			recent++
		}
	}
	avgMinutes := minutes / float64(len(d.sessions))

	frequency := math.Min(float64(recent)/7*100, 100)
	duration := math.Max(100-math.Abs(avgMinutes-90), 0)
	return 0.6*frequency + 0.4*duration, true
}

// timeAllocationFactor compares the last week's study hours against the
// course's recommended weekly target. Peak score at a ratio of 1; gentle
// penalty for overstudying, steeper for understudying.
func timeAllocationFactor(d courseData) (float64, bool) {
	if d.recentHours <= 0 || d.recommendedHours <= 0 {
		return 0, false
	}

	ratio := d.recentHours / d.recommendedHours
	switch {
	case ratio >= 0.8 && ratio <= 1.3:
		return 100 - math.Abs(ratio-1)*50, true
	case ratio > 1.3:
		return math.Max(70-(ratio-1.3)*30, 30), true
	default:
		return ratio * 80, true
	}
}

// diversityFactor rewards mixing activity kinds and keeping a healthy count
// of discrete activities per study hour.
func diversityFactor(d courseData) (float64, bool) {
	kinds := make(map[string]bool)
	var typed int
	for _, s := range d.sessions {
		if s.Kind == "" {
			continue
		}
		typed++
		kinds[s.Kind] = true
	}
	if typed == 0 || d.totalHours <= 0 {
		return 0, false
	}

	variety := math.Min(float64(len(kinds))*20, 80)
	density := math.Min(float64(typed)/d.totalHours*50, 60)
	return math.Min(variety+density, 100), true
}

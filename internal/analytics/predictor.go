package analytics

import (
	"sort"

	"github.com/aboagye/studyflow/internal/models"
)

// Prediction thresholds.
const (
	baseConfidence    = 50.0
	maxConfidence     = 95.0
	sparseDataCeiling = 70.0

	highRiskBelow   = 60.0
	mediumRiskBelow = 75.0
)

type prediction struct {
	score         float64
	confidence    float64
	lowConfidence bool
	trend         string
	risk          string
}

// predict forecasts the course outcome from current progress adjusted by
// behavioral and performance bonuses. Bonuses that depend on absent data
// contribute nothing, so a course with no activity predicts its bare
// progress at base confidence.
func predict(d courseData) prediction {
	score := clamp(d.course.Progress, 0, 100)

	score += quizBonus(d)
	score += assignmentBonus(d)
	score += consistencyBonus(d)
	score += hoursBonus(d)
	score -= float64(normalizedDifficulty(d.course)-3) * 3

	score = clamp(score, 0, 100)

	confidence, low := confidenceFor(d)

	return prediction{
		score:         score,
		confidence:    confidence,
		lowConfidence: low,
		trend:         trendFor(d),
		risk:          riskFor(score),
	}
}

func quizBonus(d courseData) float64 {
	if len(d.quizzes) == 0 {
		return 0
	}
	var sum float64
	for _, q := range d.quizzes {
		sum += clamp(q.Percentage, 0, 100)
	}
	avg := sum / float64(len(d.quizzes))
	return (avg - 70) * 0.3
}

func assignmentBonus(d courseData) float64 {
	total := len(d.assignments)
	if total == 0 {
		return 0
	}
	var completed int
	for _, a := range d.assignments {
		if a.Status == models.AssignmentCompleted {
			completed++
		}
	}
	rate := float64(completed) / float64(total) * 100
	return (rate - 50) * 0.25
}

// consistencyBonus rewards tight spacing between study sessions. It needs at
// least two sessions to measure a gap.
func consistencyBonus(d courseData) float64 {
	if len(d.sessions) < 2 {
		return 0
	}

	dates := make([]int64, len(d.sessions))
	for i, s := range d.sessions {
		dates[i] = s.Date.Unix()
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	var gapDays float64
	for i := 1; i < len(dates); i++ {
		gapDays += float64(dates[i]-dates[i-1]) / 86400
	}
	meanGap := gapDays / float64(len(dates)-1)

	switch {
	case meanGap <= 2:
		return 20
	case meanGap <= 4:
		return 10
	case meanGap <= 7:
		return 5
	default:
		return 0
	}
}

// hoursBonus compares last week's hours to the weekly target. With no logged
// sessions there is nothing to judge and the bonus is zero rather than the
// understudy penalty.
func hoursBonus(d courseData) float64 {
	if d.recentHours <= 0 || d.recommendedHours <= 0 {
		return 0
	}
	ratio := d.recentHours / d.recommendedHours
	switch {
	case ratio >= 1:
		return 15
	case ratio >= 0.8:
		return 10
	case ratio >= 0.6:
		return 5
	default:
		return -10
	}
}

// confidenceFor grows confidence with data volume, capped at 95. Sparse quiz
// or assignment history caps it at 70 and sets the low-confidence flag.
func confidenceFor(d courseData) (float64, bool) {
	confidence := baseConfidence

	var completedAssignments int
	for _, a := range d.assignments {
		if a.Status == models.AssignmentCompleted {
			completedAssignments++
		}
	}

	if len(d.quizzes) >= 3 {
		confidence += 15
	}
	if completedAssignments >= 3 {
		confidence += 15
	}
	if len(d.sessions) > 2 {
		confidence += 15
	}
	// Progress alone is self-reported; it only lifts confidence once some
	// recorded activity backs it up.
	hasActivity := len(d.quizzes) > 0 || len(d.assignments) > 0 || len(d.sessions) > 0
	if d.course.Progress > 0 && hasActivity {
		confidence += 5
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	if len(d.quizzes) < 3 || completedAssignments < 3 {
		if confidence > sparseDataCeiling {
			confidence = sparseDataCeiling
		}
		return confidence, true
	}
	return confidence, false
}

// trendFor derives the direction from the last two quiz results, falling
// back to progress when quiz history is too short.
func trendFor(d courseData) string {
	if len(d.quizzes) >= 2 {
		last := d.quizzes[len(d.quizzes)-1].Percentage
		prev := d.quizzes[len(d.quizzes)-2].Percentage
		delta := last - prev
		switch {
		case delta > 5:
			return models.TrendUp
		case delta < -5:
			return models.TrendDown
		default:
			return models.TrendStable
		}
	}

	switch {
	case d.course.Progress > 70:
		return models.TrendUp
	case d.course.Progress < 30:
		return models.TrendDown
	default:
		return models.TrendStable
	}
}

func riskFor(score float64) string {
	switch {
	case score < highRiskBelow:
		return models.RiskHigh
	case score < mediumRiskBelow:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

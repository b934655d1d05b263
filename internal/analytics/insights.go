package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/aboagye/studyflow/internal/models"
)

// Insight rule thresholds.
const (
	workloadImbalanceHours = 3.0
	ratioLowerBound        = 0.7
	ratioUpperBound        = 1.5
	marathonSessionMinutes = 120.0
	streakDays             = 5
	staleCourseDays        = 14
)

// generateInsights runs the threshold rules over the aggregated analytics
// and returns recommendations ordered high, then medium, then info. The
// ordering is stable within each tier.
func generateInsights(data []courseData, analytics []models.CourseAnalytics, snap Snapshot) []models.Insight {
	var insights []models.Insight
	if len(data) == 0 {
		return insights
	}

	perf := newPerformanceChain(data)

	if ins, ok := workloadImbalanceRule(data); ok {
		insights = append(insights, ins)
	}
	insights = append(insights, overallEfficiencyRule(data, analytics))
	if ins, ok := assignmentCompletionRule(data); ok {
		insights = append(insights, ins)
	}
	insights = append(insights, timeAllocationRules(data)...)
	if ins, ok := sessionLengthRule(snap.Sessions); ok {
		insights = append(insights, ins)
	}
	insights = append(insights, decliningTrendRules(analytics, data, perf)...)
	if ins, ok := studyStreakRule(snap.Sessions, data[0].asOf); ok {
		insights = append(insights, ins)
	}
	insights = append(insights, staleCourseRules(data)...)

	sortInsights(insights)
	return insights
}

func sortInsights(insights []models.Insight) {
	rank := map[string]int{
		models.PriorityHigh:   0,
		models.PriorityMedium: 1,
		models.PriorityInfo:   2,
	}
	sort.SliceStable(insights, func(i, j int) bool {
		return rank[insights[i].Priority] < rank[insights[j].Priority]
	})
}

// workloadImbalanceRule fires when weekly hours are spread unevenly across
// courses.
func workloadImbalanceRule(data []courseData) (models.Insight, bool) {
	if len(data) < 2 {
		return models.Insight{}, false
	}
	minH, maxH := data[0].recentHours, data[0].recentHours
	var most, least string
	most, least = data[0].course.Name, data[0].course.Name
	for _, d := range data[1:] {
		if d.recentHours > maxH {
			maxH = d.recentHours
			most = d.course.Name
		}
		if d.recentHours < minH {
			minH = d.recentHours
			least = d.course.Name
		}
	}
	if maxH-minH <= workloadImbalanceHours {
		return models.Insight{}, false
	}
	return models.Insight{
		Type:           models.InsightWarning,
		Title:          "Unbalanced study time",
		Description:    fmt.Sprintf("%s received %.1f more hours than %s this week.", most, maxH-minH, least),
		Recommendation: fmt.Sprintf("Shift some sessions toward %s to even out your coverage.", least),
		Priority:       models.PriorityHigh,
	}, true
}

// overallEfficiencyRule always produces one insight bucketing the
// credit-weighted overall efficiency.
func overallEfficiencyRule(data []courseData, analytics []models.CourseAnalytics) models.Insight {
	var weighted, credits float64
	for i, d := range data {
		c := float64(d.course.CreditHours)
		if c <= 0 {
			c = 3
		}
		weighted += analytics[i].Efficiency * c
		credits += c
	}
	overall := weighted / credits

	switch {
	case overall > 80:
		return models.Insight{
			Type:           models.InsightSuccess,
			Title:          "Excellent study efficiency",
			Description:    fmt.Sprintf("Your overall efficiency is %.0f%%.", overall),
			Recommendation: "Keep your current routine; it is working.",
			Priority:       models.PriorityInfo,
		}
	case overall > 65:
		return models.Insight{
			Type:           models.InsightSuccess,
			Title:          "Solid study efficiency",
			Description:    fmt.Sprintf("Your overall efficiency is %.0f%%.", overall),
			Recommendation: "Small tweaks to session timing could push you above 80%.",
			Priority:       models.PriorityInfo,
		}
	case overall > 45:
		return models.Insight{
			Type:           models.InsightWarning,
			Title:          "Efficiency has room to grow",
			Description:    fmt.Sprintf("Your overall efficiency is %.0f%%.", overall),
			Recommendation: "Review which factors are dragging: completion, quiz scores or consistency.",
			Priority:       models.PriorityMedium,
		}
	default:
		return models.Insight{
			Type:           models.InsightWarning,
			Title:          "Low study efficiency",
			Description:    fmt.Sprintf("Your overall efficiency is %.0f%%.", overall),
			Recommendation: "Start with one course: schedule short daily sessions and complete pending assignments.",
			Priority:       models.PriorityHigh,
		}
	}
}

// assignmentCompletionRule flags poor completion averages and praises strong
// ones.
func assignmentCompletionRule(data []courseData) (models.Insight, bool) {
	var total, completed int
	for _, d := range data {
		total += len(d.assignments)
		for _, a := range d.assignments {
			if a.Status == models.AssignmentCompleted {
				completed++
			}
		}
	}
	if total == 0 {
		return models.Insight{}, false
	}
	rate := float64(completed) / float64(total) * 100

	switch {
	case rate < 60:
		return models.Insight{
			Type:           models.InsightWarning,
			Title:          "Assignments are piling up",
			Description:    fmt.Sprintf("Only %.0f%% of assignments are completed.", rate),
			Recommendation: "Tackle the nearest due dates first and block a slot per day for assignment work.",
			Priority:       models.PriorityHigh,
		}, true
	case rate > 85:
		return models.Insight{
			Type:           models.InsightSuccess,
			Title:          "Assignments on track",
			Description:    fmt.Sprintf("%.0f%% of assignments are completed.", rate),
			Recommendation: "Great discipline; keep submitting ahead of deadlines.",
			Priority:       models.PriorityInfo,
		}, true
	}
	return models.Insight{}, false
}

// timeAllocationRules flags each course whose weekly hours sit outside the
// healthy band around its recommended target.
func timeAllocationRules(data []courseData) []models.Insight {
	var insights []models.Insight
	for _, d := range data {
		if d.recommendedHours <= 0 || d.recentHours <= 0 {
			continue
		}
		ratio := d.recentHours / d.recommendedHours
		if ratio >= ratioLowerBound && ratio <= ratioUpperBound {
			continue
		}

		direction := "more"
		if ratio > ratioUpperBound {
			direction = "less"
		}
		insights = append(insights, models.Insight{
			Type:           models.InsightInfo,
			Title:          fmt.Sprintf("Adjust time for %s", d.course.Name),
			Description:    fmt.Sprintf("%s got %.1fh against a %.1fh weekly target.", d.course.Name, d.recentHours, d.recommendedHours),
			Recommendation: fmt.Sprintf("Consider spending %s time on %s next week.", direction, d.course.Name),
			Priority:       models.PriorityMedium,
		})
	}
	return insights
}

// sessionLengthRule warns about marathon sessions.
func sessionLengthRule(sessions []models.StudySession) (models.Insight, bool) {
	if len(sessions) == 0 {
		return models.Insight{}, false
	}
	var minutes float64
	for _, s := range sessions {
		minutes += float64(s.DurationMinutes)
	}
	avg := minutes / float64(len(sessions))
	if avg <= marathonSessionMinutes {
		return models.Insight{}, false
	}
	return models.Insight{
		Type:           models.InsightWarning,
		Title:          "Sessions are running long",
		Description:    fmt.Sprintf("Your sessions average %.0f minutes.", avg),
		Recommendation: "Split long sessions with breaks; retention drops sharply after two hours.",
		Priority:       models.PriorityMedium,
	}, true
}

// decliningTrendRules flags each course whose quiz trend is falling, citing
// the best available performance estimate for context.
func decliningTrendRules(analytics []models.CourseAnalytics, data []courseData, perf SourceChain) []models.Insight {
	var insights []models.Insight
	for i, a := range analytics {
		if a.Trend != models.TrendDown {
			continue
		}
		score, source := perf.Score(a.CourseID)
		insights = append(insights, models.Insight{
			Type:           models.InsightWarning,
			Title:          fmt.Sprintf("Declining results in %s", data[i].course.Name),
			Description:    fmt.Sprintf("Recent performance is trending down (%.0f%% by %s).", score, source),
			Recommendation: "Revisit the material from the last two weeks before moving forward.",
			Priority:       models.PriorityMedium,
		})
	}
	return insights
}

// studyStreakRule rewards studying on most distinct days of the past week.
func studyStreakRule(sessions []models.StudySession, asOf time.Time) (models.Insight, bool) {
	cutoff := asOf.AddDate(0, 0, -7)
	days := map[string]struct{}{}
	for _, s := range sessions {
		if !s.Completed || !s.Date.After(cutoff) {
			continue
		}
		days[s.Date.Format("2006-01-02")] = struct{}{}
	}
	if len(days) < streakDays {
		return models.Insight{}, false
	}
	return models.Insight{
		Type:           models.InsightSuccess,
		Title:          "Strong study streak",
		Description:    fmt.Sprintf("You studied on %d of the last 7 days.", len(days)),
		Recommendation: "Consistency is the biggest efficiency lever; keep the streak alive.",
		Priority:       models.PriorityInfo,
	}, true
}

// staleCourseRules flags ongoing courses with no sessions for two weeks.
func staleCourseRules(data []courseData) []models.Insight {
	var insights []models.Insight
	for _, d := range data {
		cutoff := d.asOf.AddDate(0, 0, -staleCourseDays)
		stale := true
		for _, s := range d.sessions {
			if s.Date.After(cutoff) {
				stale = false
				break
			}
		}
		if !stale || len(d.sessions) == 0 {
			// A course that was never studied is covered by the
			// efficiency and allocation rules instead.
			continue
		}
		insights = append(insights, models.Insight{
			Type:           models.InsightWarning,
			Title:          fmt.Sprintf("%s has gone quiet", d.course.Name),
			Description:    fmt.Sprintf("No study sessions logged for %s in the last %d days.", d.course.Name, staleCourseDays),
			Recommendation: fmt.Sprintf("Schedule at least one session for %s this week.", d.course.Name),
			Priority:       models.PriorityMedium,
		})
	}
	return insights
}

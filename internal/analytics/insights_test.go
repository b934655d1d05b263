package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aboagye/studyflow/internal/models"
)

func TestGenerateInsights_EmptyDataProducesNothing(t *testing.T) {
	assert.Empty(t, generateInsights(nil, nil, Snapshot{}))
}

func TestGenerateInsights_OrderedByPriority(t *testing.T) {
	// Two idle courses with nothing logged: low overall efficiency fires a
	// high-priority warning, and each course gets nothing else. Add a long
	// session average on one course for a medium entry and a study streak
	// for an info entry.
	asOf := testAsOf

	sessions := make([]models.StudySession, 6)
	for i := range sessions {
		sessions[i] = models.StudySession{
			CourseID:        "math",
			Date:            asOf.AddDate(0, 0, -(i + 1)),
			DurationMinutes: 150,
			Completed:       true,
		}
	}

	snap := Snapshot{
		Courses: []models.Course{
			{ID: "math", Name: "Calculus", CreditHours: 3, Difficulty: 3, Progress: 10, Status: models.CourseOngoing},
			{ID: "hist", Name: "History", CreditHours: 3, Difficulty: 3, Progress: 10, Status: models.CourseOngoing},
		},
		Sessions: sessions,
	}

	report := Compute(snap, asOf, DefaultConfig())
	require.NotEmpty(t, report.Insights)

	rank := map[string]int{models.PriorityHigh: 0, models.PriorityMedium: 1, models.PriorityInfo: 2}
	for i := 1; i < len(report.Insights); i++ {
		assert.LessOrEqual(t,
			rank[report.Insights[i-1].Priority],
			rank[report.Insights[i].Priority],
			"insight %d out of order", i)
	}
}

func TestWorkloadImbalanceRule(t *testing.T) {
	data := []courseData{
		{course: models.Course{Name: "Calculus"}, recentHours: 5, asOf: testAsOf},
		{course: models.Course{Name: "History"}, recentHours: 0.5, asOf: testAsOf},
	}

	ins, ok := workloadImbalanceRule(data)
	require.True(t, ok)
	assert.Equal(t, models.PriorityHigh, ins.Priority)
	assert.Equal(t, models.InsightWarning, ins.Type)
	assert.Contains(t, ins.Recommendation, "History")
}

func TestWorkloadImbalanceRule_BalancedStaysQuiet(t *testing.T) {
	data := []courseData{
		{course: models.Course{Name: "Calculus"}, recentHours: 4, asOf: testAsOf},
		{course: models.Course{Name: "History"}, recentHours: 2, asOf: testAsOf},
	}

	_, ok := workloadImbalanceRule(data)
	assert.False(t, ok)
}

func TestOverallEfficiencyRule_WeightsByCredits(t *testing.T) {
	data := []courseData{
		{course: models.Course{CreditHours: 5}},
		{course: models.Course{CreditHours: 1}},
	}
	analytics := []models.CourseAnalytics{
		{Efficiency: 90},
		{Efficiency: 30},
	}

	// (90*5 + 30*1) / 6 = 80 -> the 65-80 tier.
	ins := overallEfficiencyRule(data, analytics)
	assert.Equal(t, models.InsightSuccess, ins.Type)
	assert.Equal(t, models.PriorityInfo, ins.Priority)
	assert.Contains(t, ins.Title, "Solid")
}

func TestAssignmentCompletionRule(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		priority  string
		fires     bool
	}{
		{"no assignments", 0, 0, "", false},
		{"half done", 5, 10, models.PriorityHigh, true},
		{"middling rate stays quiet", 7, 10, "", false},
		{"nearly all done", 9, 10, models.PriorityInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var as []models.Assignment
			for i := 0; i < tt.total; i++ {
				status := models.AssignmentPending
				if i < tt.completed {
					status = models.AssignmentCompleted
				}
				as = append(as, models.Assignment{Status: status})
			}
			ins, ok := assignmentCompletionRule([]courseData{{assignments: as}})
			assert.Equal(t, tt.fires, ok)
			if ok {
				assert.Equal(t, tt.priority, ins.Priority)
			}
		})
	}
}

func TestSessionLengthRule(t *testing.T) {
	long := []models.StudySession{
		{DurationMinutes: 180},
		{DurationMinutes: 150},
	}
	ins, ok := sessionLengthRule(long)
	require.True(t, ok)
	assert.Equal(t, models.PriorityMedium, ins.Priority)

	fine := []models.StudySession{{DurationMinutes: 60}, {DurationMinutes: 90}}
	_, ok = sessionLengthRule(fine)
	assert.False(t, ok)
}

func TestStudyStreakRule(t *testing.T) {
	var sessions []models.StudySession
	for i := 1; i <= 5; i++ {
		sessions = append(sessions, models.StudySession{
			Date:      testAsOf.AddDate(0, 0, -i),
			Completed: true,
		})
	}

	ins, ok := studyStreakRule(sessions, testAsOf)
	require.True(t, ok)
	assert.Equal(t, models.InsightSuccess, ins.Type)
	assert.Equal(t, models.PriorityInfo, ins.Priority)
}

func TestStudyStreakRule_IgnoresIncompleteAndOldSessions(t *testing.T) {
	sessions := []models.StudySession{
		{Date: testAsOf.AddDate(0, 0, -1), Completed: false},
		{Date: testAsOf.AddDate(0, 0, -10), Completed: true},
		{Date: testAsOf.AddDate(0, 0, -2), Completed: true},
	}

	_, ok := studyStreakRule(sessions, testAsOf)
	assert.False(t, ok)
}

func TestStaleCourseRules(t *testing.T) {
	old := testAsOf.AddDate(0, 0, -20)
	data := []courseData{
		{
			course:   models.Course{Name: "Chemistry"},
			sessions: []models.StudySession{{Date: old, DurationMinutes: 60}},
			asOf:     testAsOf,
		},
		{
			course:   models.Course{Name: "Physics"},
			sessions: []models.StudySession{{Date: testAsOf.AddDate(0, 0, -3), DurationMinutes: 60}},
			asOf:     testAsOf,
		},
		{
			// never studied: handled by other rules, not this one
			course: models.Course{Name: "Art"},
			asOf:   testAsOf,
		},
	}

	insights := staleCourseRules(data)
	require.Len(t, insights, 1)
	assert.Contains(t, insights[0].Title, "Chemistry")
	assert.Equal(t, models.PriorityMedium, insights[0].Priority)
}

func TestDecliningTrendRules_CitesPerformanceSource(t *testing.T) {
	data := []courseData{{
		course: models.Course{ID: "c1", Name: "Calculus", Progress: 40},
		quizzes: []models.QuizResult{
			{CourseID: "c1", Percentage: 90, TakenAt: testAsOf.AddDate(0, 0, -5)},
			{CourseID: "c1", Percentage: 70, TakenAt: testAsOf.AddDate(0, 0, -1)},
		},
		asOf: testAsOf,
	}}
	analytics := []models.CourseAnalytics{{CourseID: "c1", Trend: models.TrendDown}}

	insights := decliningTrendRules(analytics, data, newPerformanceChain(data))
	require.Len(t, insights, 1)
	assert.Contains(t, insights[0].Description, "quiz_results")
	assert.Equal(t, models.PriorityMedium, insights[0].Priority)
}

// Package analytics implements the efficiency and prediction engine: it
// scores per-course study efficiency, predicts outcomes and produces
// prioritized recommendations from an immutable snapshot of courses,
// assignments, quiz results and sessions.
//
// Every computation is a pure function of the snapshot and the asOf instant;
// there is no shared state and no I/O. Callers embedding the engine in a
// concurrent service must hand it a consistent read-only snapshot per
// invocation. Missing data never fails a computation: factors degrade to
// documented defaults instead.
package analytics

import (
	"sort"
	"time"

	"github.com/aboagye/studyflow/internal/models"
	"github.com/aboagye/studyflow/internal/planner"
)

// Snapshot is the read-only input to a single engine invocation.
type Snapshot struct {
	Courses     []models.Course
	Assignments []models.Assignment
	QuizResults []models.QuizResult
	Sessions    []models.StudySession
}

// Report is the full analytics output for one snapshot.
type Report struct {
	Courses  []models.CourseAnalytics `json:"courses"`
	Insights []models.Insight         `json:"insights"`
}

// Config carries the engine tunables.
type Config struct {
	Weights Weights
	Planner planner.Config
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		Weights: DefaultWeights(),
		Planner: planner.DefaultConfig(),
	}
}

// courseData bundles one course with its related records, pre-sorted and
// pre-aggregated for the factor computations.
type courseData struct {
	course      models.Course
	assignments []models.Assignment
	quizzes     []models.QuizResult // sorted by TakenAt ascending
	sessions    []models.StudySession
	asOf        time.Time

	totalHours       float64 // all logged session hours
	recentHours      float64 // session hours in the 7 days before asOf
	recommendedHours float64
}

// Compute runs the full pipeline: per-course efficiency and prediction,
// then the insight rules over the aggregate.
func Compute(snap Snapshot, asOf time.Time, cfg Config) Report {
	data := collect(snap, asOf, cfg)

	report := Report{Courses: make([]models.CourseAnalytics, 0, len(data))}
	for _, d := range data {
		eff := efficiencyScore(d, cfg.Weights)
		pred := predict(d)

		report.Courses = append(report.Courses, models.CourseAnalytics{
			CourseID:         d.course.ID,
			Efficiency:       eff,
			PredictedScore:   pred.score,
			Confidence:       pred.confidence,
			LowConfidence:    pred.lowConfidence,
			RiskLevel:        pred.risk,
			Trend:            pred.trend,
			ActualHours:      d.recentHours,
			RecommendedHours: d.recommendedHours,
			ComputedAt:       asOf,
		})
	}

	report.Insights = generateInsights(data, report.Courses, snap)
	return report
}

// collect groups the snapshot's records per ongoing course, preserving the
// course order of the snapshot.
func collect(snap Snapshot, asOf time.Time, cfg Config) []courseData {
	assignments := make(map[string][]models.Assignment)
	for _, a := range snap.Assignments {
		assignments[a.CourseID] = append(assignments[a.CourseID], a)
	}
	quizzes := make(map[string][]models.QuizResult)
	for _, q := range snap.QuizResults {
		quizzes[q.CourseID] = append(quizzes[q.CourseID], q)
	}
	sessions := make(map[string][]models.StudySession)
	for _, s := range snap.Sessions {
		sessions[s.CourseID] = append(sessions[s.CourseID], s)
	}

	weekAgo := asOf.AddDate(0, 0, -7)

	var data []courseData
	for _, c := range snap.Courses {
		if c.Status != models.CourseOngoing {
			continue
		}
		d := courseData{
			course:           c,
			assignments:      assignments[c.ID],
			quizzes:          quizzes[c.ID],
			sessions:         sessions[c.ID],
			asOf:             asOf,
			recommendedHours: planner.RecommendedWeeklyHours(c, cfg.Planner),
		}
		sort.SliceStable(d.quizzes, func(i, j int) bool {
			return d.quizzes[i].TakenAt.Before(d.quizzes[j].TakenAt)
		})
		for _, s := range d.sessions {
			hours := float64(s.DurationMinutes) / 60
			d.totalHours += hours
			if !s.Date.Before(weekAgo) && !s.Date.After(asOf) {
				d.recentHours += hours
			}
		}
		data = append(data, d)
	}
	return data
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// normalizedDifficulty maps out-of-range difficulty values to the neutral 3.
func normalizedDifficulty(c models.Course) int {
	if c.Difficulty < 1 || c.Difficulty > 5 {
		return 3
	}
	return c.Difficulty
}

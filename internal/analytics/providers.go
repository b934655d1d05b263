package analytics

// PerformanceSource supplies a per-course performance estimate, 0-100. The
// boolean reports whether the source has data for the course.
type PerformanceSource interface {
	Name() string
	Score(courseID string) (float64, bool)
}

// SourceChain consults sources in declaration order and returns the first
// answer. Precedence is explicit: recorded quiz results outrank the
// progress-derived estimate, which outranks the neutral default of 50.
type SourceChain []PerformanceSource

// Score resolves a course's performance estimate and the name of the source
// that supplied it.
func (c SourceChain) Score(courseID string) (float64, string) {
	for _, src := range c {
		if v, ok := src.Score(courseID); ok {
			return v, src.Name()
		}
	}
	return 50, "default"
}

// newPerformanceChain builds the standard chain for a snapshot.
func newPerformanceChain(data []courseData) SourceChain {
	quizzes := quizAverageSource{byCourse: make(map[string]float64)}
	progress := progressSource{byCourse: make(map[string]float64)}

	for _, d := range data {
		if len(d.quizzes) > 0 {
			var sum float64
			for _, q := range d.quizzes {
				sum += clamp(q.Percentage, 0, 100)
			}
			quizzes.byCourse[d.course.ID] = sum / float64(len(d.quizzes))
		}
		if d.course.Progress > 0 {
			progress.byCourse[d.course.ID] = clamp(d.course.Progress, 0, 100)
		}
	}
	return SourceChain{quizzes, progress}
}

// quizAverageSource reports the mean recorded quiz percentage.
type quizAverageSource struct {
	byCourse map[string]float64
}

func (s quizAverageSource) Name() string { return "quiz_results" }

func (s quizAverageSource) Score(courseID string) (float64, bool) {
	v, ok := s.byCourse[courseID]
	return v, ok
}

// progressSource estimates performance from course progress when no quizzes
// have been recorded.
type progressSource struct {
	byCourse map[string]float64
}

func (s progressSource) Name() string { return "progress" }

func (s progressSource) Score(courseID string) (float64, bool) {
	v, ok := s.byCourse[courseID]
	return v, ok
}

package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/aboagye/studyflow/internal/analytics"
	"github.com/aboagye/studyflow/internal/errors"
	"github.com/aboagye/studyflow/internal/logger"
	"github.com/aboagye/studyflow/internal/models"
	"github.com/aboagye/studyflow/internal/repository"
	"github.com/aboagye/studyflow/internal/worker"
)

// analyticsCacheTTL is how long a cached per-course row is served before a
// recompute.
const analyticsCacheTTL = 15 * time.Minute

// AnalyticsService computes efficiency, predictions and insights
type AnalyticsService interface {
	Refresher
	Overview(ctx context.Context) (*analytics.Report, error)
	CourseAnalytics(ctx context.Context, courseID string) (*models.CourseAnalytics, error)
}

type analyticsService struct {
	courses     repository.CourseRepository
	assignments repository.AssignmentRepository
	quizzes     repository.QuizResultRepository
	sessions    repository.SessionRepository
	cache       repository.AnalyticsCacheRepository
	pool        *worker.Pool
	cfg         analytics.Config
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	courses repository.CourseRepository,
	assignments repository.AssignmentRepository,
	quizzes repository.QuizResultRepository,
	sessions repository.SessionRepository,
	cache repository.AnalyticsCacheRepository,
	pool *worker.Pool,
	cfg analytics.Config,
) AnalyticsService {
	return &analyticsService{
		courses:     courses,
		assignments: assignments,
		quizzes:     quizzes,
		sessions:    sessions,
		cache:       cache,
		pool:        pool,
		cfg:         cfg,
	}
}

// Overview recomputes the full report from a fresh snapshot and refreshes
// the per-course cache as a side effect.
func (s *analyticsService) Overview(ctx context.Context) (*analytics.Report, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing analytics overview")

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	report := analytics.Compute(snap, time.Now().UTC(), s.cfg)

	if err := s.cache.UpsertBatch(ctx, report.Courses); err != nil {
		// Serving the report matters more than caching it.
		log.Warn("failed to refresh analytics cache: %v", err)
	}

	log.Debug("analytics computed: %d courses, %d insights", len(report.Courses), len(report.Insights))
	return &report, nil
}

// CourseAnalytics serves the cached row when it is fresh and recomputes
// otherwise.
func (s *analyticsService) CourseAnalytics(ctx context.Context, courseID string) (*models.CourseAnalytics, error) {
	log := logger.FromContext(ctx)

	course, err := s.courses.Get(ctx, courseID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("course", courseID)
		}
		return nil, errors.NewInternalError(err)
	}
	if course.Status != models.CourseOngoing {
		return nil, errors.NewValidationError("course", "analytics are only computed for ongoing courses")
	}

	cached, err := s.cache.Get(ctx, courseID)
	if err == nil && time.Since(cached.ComputedAt) < analyticsCacheTTL {
		log.Debug("serving cached analytics: course_id=%s", courseID)
		return cached, nil
	}
	if err != nil && !stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewInternalError(err)
	}

	report, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}
	for i := range report.Courses {
		if report.Courses[i].CourseID == courseID {
			return &report.Courses[i], nil
		}
	}
	return nil, errors.NewNotFoundError("course analytics", courseID)
}

// SubmitRefresh queues a background recompute after a write. The course id
// names the trigger; the whole report is recomputed since insights span
// courses.
func (s *analyticsService) SubmitRefresh(courseID string) {
	// A full-report job is already queued when this drops, so the write is
	// still picked up.
	if !s.pool.TrySubmit(&refreshJob{svc: s, courseID: courseID}) {
		logger.Default().WithPrefix("analytics").Debug("refresh queue full, skipping refresh for course %s", courseID)
	}
}

func (s *analyticsService) snapshot(ctx context.Context) (analytics.Snapshot, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return analytics.Snapshot{}, errors.NewInternalError(err)
	}
	assignments, err := s.assignments.List(ctx, models.AssignmentFilter{})
	if err != nil {
		return analytics.Snapshot{}, errors.NewInternalError(err)
	}
	quizzes, err := s.quizzes.List(ctx)
	if err != nil {
		return analytics.Snapshot{}, errors.NewInternalError(err)
	}
	sessions, err := s.sessions.List(ctx, models.SessionFilter{})
	if err != nil {
		return analytics.Snapshot{}, errors.NewInternalError(err)
	}

	return analytics.Snapshot{
		Courses:     courses,
		Assignments: assignments,
		QuizResults: quizzes,
		Sessions:    sessions,
	}, nil
}

// refreshJob recomputes the analytics report on the worker pool.
type refreshJob struct {
	svc      *analyticsService
	courseID string
}

func (j *refreshJob) Name() string { return "analytics-refresh:" + j.courseID }

func (j *refreshJob) Run(ctx context.Context) error {
	_, err := j.svc.Overview(ctx)
	return err
}

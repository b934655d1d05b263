package repository

import (
	"context"
	"time"

	"github.com/aboagye/studyflow/internal/models"
)

// CourseRepository handles course data access
type CourseRepository interface {
	Get(ctx context.Context, id string) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	ListByStatus(ctx context.Context, status string) ([]models.Course, error)
	Insert(ctx context.Context, course models.Course) error
	Update(ctx context.Context, course models.Course) error
	Delete(ctx context.Context, id string) error
}

// AssignmentRepository handles assignment data access
type AssignmentRepository interface {
	Get(ctx context.Context, id string) (*models.Assignment, error)
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error)
	Count(ctx context.Context, filter models.AssignmentFilter) (int, error)
	Insert(ctx context.Context, assignment models.Assignment) error
	Update(ctx context.Context, assignment models.Assignment) error
	Delete(ctx context.Context, id string) error
}

// QuizResultRepository handles quiz result data access
type QuizResultRepository interface {
	Get(ctx context.Context, id string) (*models.QuizResult, error)
	List(ctx context.Context) ([]models.QuizResult, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.QuizResult, error)
	Insert(ctx context.Context, result models.QuizResult) error
	Delete(ctx context.Context, id string) error
}

// SessionRepository handles study session data access
type SessionRepository interface {
	Get(ctx context.Context, id string) (*models.StudySession, error)
	List(ctx context.Context, filter models.SessionFilter) ([]models.StudySession, error)
	Count(ctx context.Context, filter models.SessionFilter) (int, error)
	Insert(ctx context.Context, session models.StudySession) error
	InsertBatch(ctx context.Context, sessions []models.StudySession) error
	Update(ctx context.Context, session models.StudySession) error
	Delete(ctx context.Context, id string) error
}

// PreferenceRepository handles the singleton study preferences record
type PreferenceRepository interface {
	Get(ctx context.Context) (*models.Preferences, error)
	Upsert(ctx context.Context, prefs models.Preferences) error
}

// ScheduleRepository handles persisted schedule entries
type ScheduleRepository interface {
	Get(ctx context.Context, id string) (*models.ScheduleEntry, error)
	List(ctx context.Context, from, to time.Time) ([]models.ScheduleEntry, error)
	ReplaceGenerated(ctx context.Context, from time.Time, entries []models.ScheduleEntry) error
	Update(ctx context.Context, entry models.ScheduleEntry) error
}

// AnalyticsCacheRepository caches derived per-course analytics so reads do
// not pay the recompute cost
type AnalyticsCacheRepository interface {
	Get(ctx context.Context, courseID string) (*models.CourseAnalytics, error)
	List(ctx context.Context) ([]models.CourseAnalytics, error)
	UpsertBatch(ctx context.Context, rows []models.CourseAnalytics) error
	DeleteByCourse(ctx context.Context, courseID string) error
	Clear(ctx context.Context) error
}

package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/aboagye/studyflow/internal/errors"
	"github.com/aboagye/studyflow/internal/logger"
	"github.com/aboagye/studyflow/internal/models"
	"github.com/aboagye/studyflow/internal/repository"
)

// Refresher triggers asynchronous analytics recomputation after a write.
type Refresher interface {
	SubmitRefresh(courseID string)
}

// CreateCourseInput carries the fields accepted when creating a course.
type CreateCourseInput struct {
	Name        string  `json:"name" validate:"required,max=200"`
	CreditHours int     `json:"credit_hours" validate:"min=1,max=6"`
	Difficulty  int     `json:"difficulty" validate:"min=1,max=5"`
	Progress    float64 `json:"progress" validate:"min=0,max=100"`
	Color       string  `json:"color" validate:"omitempty,hexcolor"`
}

// UpdateCourseInput carries a partial course update; nil fields are left
// unchanged.
type UpdateCourseInput struct {
	Name        *string  `json:"name" validate:"omitempty,max=200"`
	CreditHours *int     `json:"credit_hours" validate:"omitempty,min=1,max=6"`
	Difficulty  *int     `json:"difficulty" validate:"omitempty,min=1,max=5"`
	Progress    *float64 `json:"progress" validate:"omitempty,min=0,max=100"`
	Status      *string  `json:"status" validate:"omitempty,oneof=ongoing completed"`
	Color       *string  `json:"color" validate:"omitempty,hexcolor"`
}

// CourseService handles course-related business logic
type CourseService interface {
	Create(ctx context.Context, input CreateCourseInput) (*models.Course, error)
	Get(ctx context.Context, id string) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	Update(ctx context.Context, id string, input UpdateCourseInput) (*models.Course, error)
	Delete(ctx context.Context, id string) error
}

type courseService struct {
	courses   repository.CourseRepository
	refresher Refresher
}

// NewCourseService creates a new CourseService
func NewCourseService(courses repository.CourseRepository, refresher Refresher) CourseService {
	return &courseService{courses: courses, refresher: refresher}
}

func (s *courseService) Create(ctx context.Context, input CreateCourseInput) (*models.Course, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating course: name=%s", input.Name)

	if err := checkStruct(input); err != nil {
		return nil, err
	}

	course := models.Course{
		ID:          uuid.NewString(),
		Name:        input.Name,
		CreditHours: input.CreditHours,
		Difficulty:  input.Difficulty,
		Progress:    input.Progress,
		Status:      models.CourseOngoing,
		Color:       input.Color,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.courses.Insert(ctx, course); err != nil {
		log.Error("failed to insert course: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("course created: id=%s, name=%s", course.ID, course.Name)
	return &course, nil
}

func (s *courseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.courses.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("course", id)
		}
		return nil, errors.NewInternalError(err)
	}
	return course, nil
}

func (s *courseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return courses, nil
}

func (s *courseService) Update(ctx context.Context, id string, input UpdateCourseInput) (*models.Course, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating course: id=%s", id)

	if err := checkStruct(input); err != nil {
		return nil, err
	}

	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Completing a course is terminal.
	if course.Status == models.CourseCompleted {
		if input.Status != nil && *input.Status == models.CourseOngoing {
			return nil, errors.NewValidationError("status", "a completed course cannot be reopened")
		}
	}

	if input.Name != nil {
		course.Name = *input.Name
	}
	if input.CreditHours != nil {
		course.CreditHours = *input.CreditHours
	}
	if input.Difficulty != nil {
		course.Difficulty = *input.Difficulty
	}
	if input.Progress != nil {
		course.Progress = *input.Progress
	}
	if input.Color != nil {
		course.Color = *input.Color
	}
	if input.Status != nil {
		course.Status = *input.Status
	}

	// Full progress completes the course.
	if course.Progress >= 100 {
		course.Progress = 100
		course.Status = models.CourseCompleted
	}
	if course.Status == models.CourseCompleted && course.CompletedAt == nil {
		now := time.Now().UTC()
		course.CompletedAt = &now
	}

	if err := s.courses.Update(ctx, *course); err != nil {
		log.Error("failed to update course: %v", err)
		return nil, errors.NewInternalError(err)
	}

	s.refresher.SubmitRefresh(course.ID)
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting course: id=%s", id)

	if err := s.courses.Delete(ctx, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("course", id)
		}
		log.Error("failed to delete course: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("course deleted: id=%s", id)
	return nil
}

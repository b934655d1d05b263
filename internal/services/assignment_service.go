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

// CreateAssignmentInput carries the fields accepted when creating an
// assignment.
type CreateAssignmentInput struct {
	CourseID string     `json:"course_id" validate:"required"`
	Title    string     `json:"title" validate:"required,max=300"`
	Priority string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate  *time.Time `json:"due_date"`
}

// AssignmentService handles assignment-related business logic
type AssignmentService interface {
	Create(ctx context.Context, input CreateAssignmentInput) (*models.Assignment, error)
	Get(ctx context.Context, id string) (*models.Assignment, error)
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, int, error)
	Complete(ctx context.Context, id string) (*models.Assignment, error)
	Delete(ctx context.Context, id string) error
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	courses     repository.CourseRepository
	refresher   Refresher
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(assignments repository.AssignmentRepository, courses repository.CourseRepository, refresher Refresher) AssignmentService {
	return &assignmentService{assignments: assignments, courses: courses, refresher: refresher}
}

func (s *assignmentService) Create(ctx context.Context, input CreateAssignmentInput) (*models.Assignment, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating assignment: course_id=%s, title=%s", input.CourseID, input.Title)

	if err := checkStruct(input); err != nil {
		return nil, err
	}

	if _, err := s.courses.Get(ctx, input.CourseID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("course", input.CourseID)
		}
		return nil, errors.NewInternalError(err)
	}

	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}

	assignment := models.Assignment{
		ID:        uuid.NewString(),
		CourseID:  input.CourseID,
		Title:     input.Title,
		Status:    models.AssignmentPending,
		Priority:  priority,
		DueDate:   input.DueDate,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.assignments.Insert(ctx, assignment); err != nil {
		log.Error("failed to insert assignment: %v", err)
		return nil, errors.NewInternalError(err)
	}

	s.refresher.SubmitRefresh(assignment.CourseID)
	log.Info("assignment created: id=%s", assignment.ID)
	return &assignment, nil
}

func (s *assignmentService) Get(ctx context.Context, id string) (*models.Assignment, error) {
	assignment, err := s.assignments.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("assignment", id)
		}
		return nil, errors.NewInternalError(err)
	}
	return assignment, nil
}

// List returns the filtered page plus the total match count, so callers can
// paginate past Limit/Offset.
func (s *assignmentService) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, int, error) {
	assignments, err := s.assignments.List(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.assignments.Count(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	return assignments, total, nil
}

// Complete marks an assignment done and stamps the completion time. Whether
// that was on time is judged later by analytics, not here.
func (s *assignmentService) Complete(ctx context.Context, id string) (*models.Assignment, error) {
	log := logger.FromContext(ctx)
	log.Debug("completing assignment: id=%s", id)

	assignment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.Status == models.AssignmentCompleted {
		return assignment, nil
	}

	now := time.Now().UTC()
	assignment.Status = models.AssignmentCompleted
	assignment.CompletedAt = &now

	if err := s.assignments.Update(ctx, *assignment); err != nil {
		log.Error("failed to complete assignment: %v", err)
		return nil, errors.NewInternalError(err)
	}

	s.refresher.SubmitRefresh(assignment.CourseID)
	log.Info("assignment completed: id=%s", id)
	return assignment, nil
}

func (s *assignmentService) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	assignment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.assignments.Delete(ctx, id); err != nil {
		log.Error("failed to delete assignment: %v", err)
		return errors.NewInternalError(err)
	}
	s.refresher.SubmitRefresh(assignment.CourseID)
	return nil
}

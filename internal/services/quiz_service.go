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

// RecordQuizInput carries the fields accepted when recording a quiz result.
type RecordQuizInput struct {
	CourseID     string     `json:"course_id" validate:"required"`
	Percentage   float64    `json:"percentage" validate:"min=0,max=100"`
	Difficulty   string     `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	AttemptsUsed int        `json:"attempts_used" validate:"omitempty,min=1"`
	TakenAt      *time.Time `json:"taken_at"`
}

// QuizService handles quiz result business logic
type QuizService interface {
	Record(ctx context.Context, input RecordQuizInput) (*models.QuizResult, error)
	List(ctx context.Context) ([]models.QuizResult, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.QuizResult, error)
	Delete(ctx context.Context, id string) error
}

type quizService struct {
	quizzes   repository.QuizResultRepository
	courses   repository.CourseRepository
	refresher Refresher
}

// NewQuizService creates a new QuizService
func NewQuizService(quizzes repository.QuizResultRepository, courses repository.CourseRepository, refresher Refresher) QuizService {
	return &quizService{quizzes: quizzes, courses: courses, refresher: refresher}
}

func (s *quizService) Record(ctx context.Context, input RecordQuizInput) (*models.QuizResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("recording quiz result: course_id=%s, percentage=%.1f", input.CourseID, input.Percentage)

	if err := checkStruct(input); err != nil {
		return nil, err
	}

	if _, err := s.courses.Get(ctx, input.CourseID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("course", input.CourseID)
		}
		return nil, errors.NewInternalError(err)
	}

	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = models.QuizMedium
	}
	attempts := input.AttemptsUsed
	if attempts == 0 {
		attempts = 1
	}
	takenAt := time.Now().UTC()
	if input.TakenAt != nil {
		takenAt = input.TakenAt.UTC()
	}

	result := models.QuizResult{
		ID:           uuid.NewString(),
		CourseID:     input.CourseID,
		Percentage:   input.Percentage,
		Difficulty:   difficulty,
		AttemptsUsed: attempts,
		TakenAt:      takenAt,
	}

	if err := s.quizzes.Insert(ctx, result); err != nil {
		log.Error("failed to insert quiz result: %v", err)
		return nil, errors.NewInternalError(err)
	}

	s.refresher.SubmitRefresh(result.CourseID)
	log.Info("quiz result recorded: id=%s, percentage=%.1f", result.ID, result.Percentage)
	return &result, nil
}

func (s *quizService) List(ctx context.Context) ([]models.QuizResult, error) {
	results, err := s.quizzes.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return results, nil
}

func (s *quizService) ListByCourse(ctx context.Context, courseID string) ([]models.QuizResult, error) {
	results, err := s.quizzes.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return results, nil
}

func (s *quizService) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	result, err := s.quizzes.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("quiz result", id)
		}
		return errors.NewInternalError(err)
	}

	if err := s.quizzes.Delete(ctx, id); err != nil {
		log.Error("failed to delete quiz result: %v", err)
		return errors.NewInternalError(err)
	}
	s.refresher.SubmitRefresh(result.CourseID)
	return nil
}

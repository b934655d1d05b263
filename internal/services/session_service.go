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

// LogSessionInput carries the fields accepted when logging a manual study
// session.
type LogSessionInput struct {
	CourseID        string     `json:"course_id" validate:"required"`
	Date            *time.Time `json:"date"`
	DurationMinutes int        `json:"duration_minutes" validate:"min=1,max=600"`
	EnergyLevel     int        `json:"energy_level" validate:"omitempty,min=1,max=10"`
	Kind            string     `json:"kind" validate:"omitempty,oneof=reading practice review quiz other"`
	Completed       bool       `json:"completed"`
}

// SessionService handles study session business logic
type SessionService interface {
	Log(ctx context.Context, input LogSessionInput) (*models.StudySession, error)
	Get(ctx context.Context, id string) (*models.StudySession, error)
	List(ctx context.Context, filter models.SessionFilter) ([]models.StudySession, error)
	ToggleCompleted(ctx context.Context, id string) (*models.StudySession, error)
	Delete(ctx context.Context, id string) error
}

type sessionService struct {
	sessions  repository.SessionRepository
	courses   repository.CourseRepository
	refresher Refresher
}

// NewSessionService creates a new SessionService
func NewSessionService(sessions repository.SessionRepository, courses repository.CourseRepository, refresher Refresher) SessionService {
	return &sessionService{sessions: sessions, courses: courses, refresher: refresher}
}

func (s *sessionService) Log(ctx context.Context, input LogSessionInput) (*models.StudySession, error) {
	log := logger.FromContext(ctx)
	log.Debug("logging session: course_id=%s, duration=%d", input.CourseID, input.DurationMinutes)

	if err := checkStruct(input); err != nil {
		return nil, err
	}

	if _, err := s.courses.Get(ctx, input.CourseID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("course", input.CourseID)
		}
		return nil, errors.NewInternalError(err)
	}

	now := time.Now().UTC()
	date := now
	if input.Date != nil {
		date = input.Date.UTC()
	}

	session := models.StudySession{
		ID:              uuid.NewString(),
		CourseID:        input.CourseID,
		Date:            date,
		DurationMinutes: input.DurationMinutes,
		EnergyLevel:     input.EnergyLevel,
		Kind:            input.Kind,
		Completed:       input.Completed,
		Generated:       false,
		CreatedAt:       now,
	}

	if err := s.sessions.Insert(ctx, session); err != nil {
		log.Error("failed to insert session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	s.refresher.SubmitRefresh(session.CourseID)
	log.Info("session logged: id=%s, course_id=%s", session.ID, session.CourseID)
	return &session, nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*models.StudySession, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("session", id)
		}
		return nil, errors.NewInternalError(err)
	}
	return session, nil
}

func (s *sessionService) List(ctx context.Context, filter models.SessionFilter) ([]models.StudySession, error) {
	sessions, err := s.sessions.List(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return sessions, nil
}

func (s *sessionService) ToggleCompleted(ctx context.Context, id string) (*models.StudySession, error) {
	log := logger.FromContext(ctx)

	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Completed = !session.Completed
	if err := s.sessions.Update(ctx, *session); err != nil {
		log.Error("failed to toggle session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	s.refresher.SubmitRefresh(session.CourseID)
	log.Debug("session toggled: id=%s, completed=%t", id, session.Completed)
	return session, nil
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.sessions.Delete(ctx, id); err != nil {
		log.Error("failed to delete session: %v", err)
		return errors.NewInternalError(err)
	}
	s.refresher.SubmitRefresh(session.CourseID)
	return nil
}

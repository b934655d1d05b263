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
	"github.com/aboagye/studyflow/internal/planner"
	"github.com/aboagye/studyflow/internal/repository"
)

// ScheduleService generates and manages the study schedule
type ScheduleService interface {
	Generate(ctx context.Context, horizonDays int, start time.Time) ([]models.ScheduleEntry, error)
	List(ctx context.Context, from, to time.Time) ([]models.ScheduleEntry, error)
	ToggleCompleted(ctx context.Context, id string) (*models.ScheduleEntry, error)
}

type scheduleService struct {
	schedule repository.ScheduleRepository
	courses  repository.CourseRepository
	prefSvc  PreferenceService
	planCfg  planner.Config
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(schedule repository.ScheduleRepository, courses repository.CourseRepository, prefSvc PreferenceService, planCfg planner.Config) ScheduleService {
	return &scheduleService{
		schedule: schedule,
		courses:  courses,
		prefSvc:  prefSvc,
		planCfg:  planCfg,
	}
}

// Generate plans the coming horizon and replaces any pending generated
// entries with the new plan. Completed entries survive regeneration.
func (s *scheduleService) Generate(ctx context.Context, horizonDays int, start time.Time) ([]models.ScheduleEntry, error) {
	log := logger.FromContext(ctx)

	if horizonDays <= 0 {
		horizonDays = planner.DefaultHorizonDays
	}
	if start.IsZero() {
		start = time.Now().UTC()
	}
	log.Debug("generating schedule: horizon=%d days, start=%s", horizonDays, start.Format("2006-01-02"))

	courses, err := s.courses.ListByStatus(ctx, models.CourseOngoing)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	prefs, err := s.prefSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := planner.Generate(ctx, courses, *prefs, horizonDays, start, s.planCfg)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].ID = uuid.NewString()
		entries[i].Generated = true
	}

	if err := s.schedule.ReplaceGenerated(ctx, startOfDay(start), entries); err != nil {
		log.Error("failed to persist schedule: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("schedule generated: %d entries over %d days", len(entries), horizonDays)
	return entries, nil
}

func (s *scheduleService) List(ctx context.Context, from, to time.Time) ([]models.ScheduleEntry, error) {
	if to.Before(from) {
		return nil, errors.NewValidationError("to", "must not be before from")
	}
	entries, err := s.schedule.List(ctx, from, to)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return entries, nil
}

func (s *scheduleService) ToggleCompleted(ctx context.Context, id string) (*models.ScheduleEntry, error) {
	log := logger.FromContext(ctx)

	entry, err := s.schedule.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("schedule entry", id)
		}
		return nil, errors.NewInternalError(err)
	}

	entry.Completed = !entry.Completed
	if err := s.schedule.Update(ctx, *entry); err != nil {
		log.Error("failed to toggle schedule entry: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Debug("schedule entry toggled: id=%s, completed=%t", id, entry.Completed)
	return entry, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

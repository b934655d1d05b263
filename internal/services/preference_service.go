package services

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/aboagye/studyflow/internal/errors"
	"github.com/aboagye/studyflow/internal/logger"
	"github.com/aboagye/studyflow/internal/models"
	"github.com/aboagye/studyflow/internal/planner"
	"github.com/aboagye/studyflow/internal/repository"
)

// PreferenceService handles study preference business logic
type PreferenceService interface {
	Get(ctx context.Context) (*models.Preferences, error)
	Update(ctx context.Context, prefs models.Preferences) (*models.Preferences, error)
}

type preferenceService struct {
	prefs repository.PreferenceRepository
}

// NewPreferenceService creates a new PreferenceService
func NewPreferenceService(prefs repository.PreferenceRepository) PreferenceService {
	return &preferenceService{prefs: prefs}
}

// Get returns the stored preferences, or the defaults when nothing has been
// stored yet.
func (s *preferenceService) Get(ctx context.Context) (*models.Preferences, error) {
	stored, err := s.prefs.Get(ctx)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			defaults := planner.NormalizePreferences(models.Preferences{})
			return &defaults, nil
		}
		return nil, errors.NewInternalError(err)
	}
	return stored, nil
}

func (s *preferenceService) Update(ctx context.Context, prefs models.Preferences) (*models.Preferences, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating preferences: max_daily_hours=%.1f", prefs.MaxDailyHours)

	normalized := planner.NormalizePreferences(prefs)
	if err := planner.ValidatePreferences(normalized); err != nil {
		return nil, err
	}

	if err := s.prefs.Upsert(ctx, normalized); err != nil {
		log.Error("failed to store preferences: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("preferences updated")
	return &normalized, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aboagye/studyflow/internal/logger"
	"github.com/aboagye/studyflow/internal/models"
	"github.com/aboagye/studyflow/internal/repository"
)

type preferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new PreferenceRepository implementation.
// Preferences are a single-row table keyed on id=1.
func NewPreferenceRepository(db *sql.DB) repository.PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Get(ctx context.Context) (*models.Preferences, error) {
	log := logger.FromContext(ctx).WithPrefix("preference_repo")
	log.Debug("getting preferences")

	var p models.Preferences
	err := r.db.QueryRowContext(ctx, `
SELECT preferred_study_time, max_daily_hours, study_session_length_minutes, break_duration_minutes,
       weekend_study, energy_morning, energy_afternoon, energy_evening
FROM preferences
WHERE id = 1
`).Scan(&p.PreferredStudyTime, &p.MaxDailyHours, &p.StudySessionLengthMinutes, &p.BreakDurationMinutes,
		&p.WeekendStudy, &p.EnergyLevels.Morning, &p.EnergyLevels.Afternoon, &p.EnergyLevels.Evening)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no preferences stored yet")
		} else {
			log.Error("failed to get preferences: %v", err)
		}
		return nil, err
	}
	return &p, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, p models.Preferences) error {
	log := logger.FromContext(ctx).WithPrefix("preference_repo")
	log.Debug("upserting preferences: max_daily_hours=%.1f", p.MaxDailyHours)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO preferences (id, preferred_study_time, max_daily_hours, study_session_length_minutes, break_duration_minutes,
                         weekend_study, energy_morning, energy_afternoon, energy_evening, updated_at)
VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (id) DO UPDATE SET
    preferred_study_time = excluded.preferred_study_time,
    max_daily_hours = excluded.max_daily_hours,
    study_session_length_minutes = excluded.study_session_length_minutes,
    break_duration_minutes = excluded.break_duration_minutes,
    weekend_study = excluded.weekend_study,
    energy_morning = excluded.energy_morning,
    energy_afternoon = excluded.energy_afternoon,
    energy_evening = excluded.energy_evening,
    updated_at = CURRENT_TIMESTAMP
`, p.PreferredStudyTime, p.MaxDailyHours, p.StudySessionLengthMinutes, p.BreakDurationMinutes,
		p.WeekendStudy, p.EnergyLevels.Morning, p.EnergyLevels.Afternoon, p.EnergyLevels.Evening)
	if err != nil {
		log.Error("failed to upsert preferences: %v", err)
	}
	return err
}

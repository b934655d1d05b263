package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aboagye/studyflow/internal/logger"
	"github.com/aboagye/studyflow/internal/models"
	"github.com/aboagye/studyflow/internal/repository"
)

type scheduleRepository struct {
	db *sql.DB
}

// NewScheduleRepository creates a new ScheduleRepository implementation
func NewScheduleRepository(db *sql.DB) repository.ScheduleRepository {
	return &scheduleRepository{db: db}
}

func scanScheduleEntry(row interface{ Scan(...any) error }) (*models.ScheduleEntry, error) {
	var e models.ScheduleEntry
	err := row.Scan(&e.ID, &e.CourseID, &e.Date, &e.StartSlot, &e.DurationMinutes, &e.EnergyLevel, &e.Completed, &e.Generated)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *scheduleRepository) Get(ctx context.Context, id string) (*models.ScheduleEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("schedule_repo")
	log.Debug("getting schedule entry: id=%s", id)

	e, err := scanScheduleEntry(r.db.QueryRowContext(ctx, `
SELECT id, course_id, date, start_slot, duration_minutes, energy_level, completed, generated
FROM schedule_entries
WHERE id = ?
`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("schedule entry not found: id=%s", id)
		} else {
			log.Error("failed to get schedule entry: %v", err)
		}
		return nil, err
	}
	return e, nil
}

func (r *scheduleRepository) List(ctx context.Context, from, to time.Time) ([]models.ScheduleEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("schedule_repo")
	log.Debug("listing schedule entries: from=%s, to=%s", from.Format("2006-01-02"), to.Format("2006-01-02"))

	rows, err := r.db.QueryContext(ctx, `
SELECT id, course_id, date, start_slot, duration_minutes, energy_level, completed, generated
FROM schedule_entries
WHERE date >= ? AND date <= ?
ORDER BY date, start_slot
`, from, to)
	if err != nil {
		log.Error("failed to query schedule entries: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.ScheduleEntry
	for rows.Next() {
		e, err := scanScheduleEntry(rows)
		if err != nil {
			log.Error("failed to scan schedule entry row: %v", err)
			return nil, err
		}
		entries = append(entries, *e)
	}
	log.Debug("found %d schedule entries", len(entries))
	return entries, rows.Err()
}

// ReplaceGenerated drops the generated, not-yet-completed entries from the
// given date onward and inserts the new generation in their place. Entries
// the user already completed stay untouched; a fresh entry that lands on a
// (date, course) pair such a survivor holds is skipped, so regenerating
// after completing a session cannot trip the uniqueness constraint.
func (r *scheduleRepository) ReplaceGenerated(ctx context.Context, from time.Time, entries []models.ScheduleEntry) error {
	log := logger.FromContext(ctx).WithPrefix("schedule_repo")
	log.Debug("replacing generated schedule from %s with %d entries", from.Format("2006-01-02"), len(entries))

	return tx(ctx, r.db, func(t *sql.Tx) error {
		if _, err := t.ExecContext(ctx, `
DELETE FROM schedule_entries
WHERE generated = 1 AND completed = 0 AND date >= ?
`, from); err != nil {
			return err
		}

		stmt, err := t.PrepareContext(ctx, `
INSERT INTO schedule_entries (id, course_id, date, start_slot, duration_minutes, energy_level, completed, generated)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(date, course_id) DO NOTHING
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, e := range entries {
			if _, err := stmt.ExecContext(ctx, e.ID, e.CourseID, e.Date, e.StartSlot, e.DurationMinutes, e.EnergyLevel, e.Completed, e.Generated); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *scheduleRepository) Update(ctx context.Context, e models.ScheduleEntry) error {
	log := logger.FromContext(ctx).WithPrefix("schedule_repo")
	log.Debug("updating schedule entry: id=%s, completed=%t", e.ID, e.Completed)

	res, err := r.db.ExecContext(ctx, `
UPDATE schedule_entries
SET course_id = ?, date = ?, start_slot = ?, duration_minutes = ?, energy_level = ?, completed = ?, generated = ?
WHERE id = ?
`, e.CourseID, e.Date, e.StartSlot, e.DurationMinutes, e.EnergyLevel, e.Completed, e.Generated, e.ID)
	if err != nil {
		log.Error("failed to update schedule entry: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/aboagye/studyflow/internal/logger"
	"github.com/aboagye/studyflow/internal/models"
	"github.com/aboagye/studyflow/internal/repository"
)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

var sessionColumns = []string{"id", "course_id", "date", "duration_minutes", "energy_level", "kind", "completed", "generated", "created_at"}

func scanSession(row interface{ Scan(...any) error }) (*models.StudySession, error) {
	var s models.StudySession
	err := row.Scan(&s.ID, &s.CourseID, &s.Date, &s.DurationMinutes, &s.EnergyLevel, &s.Kind, &s.Completed, &s.Generated, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func sessionFilterQuery(base squirrel.SelectBuilder, filter models.SessionFilter) squirrel.SelectBuilder {
	query := base.From("study_sessions")
	if filter.CourseID != "" {
		query = query.Where(squirrel.Eq{"course_id": filter.CourseID})
	}
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"date": *filter.To})
	}
	if filter.Completed != nil {
		query = query.Where(squirrel.Eq{"completed": *filter.Completed})
	}
	if filter.Generated != nil {
		query = query.Where(squirrel.Eq{"generated": *filter.Generated})
	}
	return query
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*models.StudySession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("getting session: id=%s", id)

	s, err := scanSession(r.db.QueryRowContext(ctx, `
SELECT id, course_id, date, duration_minutes, energy_level, kind, completed, generated, created_at
FROM study_sessions
WHERE id = ?
`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("session not found: id=%s", id)
		} else {
			log.Error("failed to get session: %v", err)
		}
		return nil, err
	}
	return s, nil
}

func (r *sessionRepository) List(ctx context.Context, filter models.SessionFilter) ([]models.StudySession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("listing sessions with filter: course_id=%s", filter.CourseID)

	query := sessionFilterQuery(sqlBuilder.Select(sessionColumns...), filter).
		OrderBy("date DESC", "created_at DESC")

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build session query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []models.StudySession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			log.Error("failed to scan session row: %v", err)
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	log.Debug("found %d sessions", len(sessions))
	return sessions, rows.Err()
}

func (r *sessionRepository) Count(ctx context.Context, filter models.SessionFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	sqlStr, args, err := sessionFilterQuery(sqlBuilder.Select("COUNT(*)"), filter).ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count sessions: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *sessionRepository) Insert(ctx context.Context, s models.StudySession) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting session: id=%s, course_id=%s, duration=%d", s.ID, s.CourseID, s.DurationMinutes)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO study_sessions (id, course_id, date, duration_minutes, energy_level, kind, completed, generated, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, s.ID, s.CourseID, s.Date, s.DurationMinutes, s.EnergyLevel, s.Kind, s.Completed, s.Generated, s.CreatedAt)
	if err != nil {
		log.Error("failed to insert session: %v", err)
	}
	return err
}

func (r *sessionRepository) InsertBatch(ctx context.Context, sessions []models.StudySession) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting %d sessions", len(sessions))

	return tx(ctx, r.db, func(t *sql.Tx) error {
		stmt, err := t.PrepareContext(ctx, `
INSERT INTO study_sessions (id, course_id, date, duration_minutes, energy_level, kind, completed, generated, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, s := range sessions {
			if _, err := stmt.ExecContext(ctx, s.ID, s.CourseID, s.Date, s.DurationMinutes, s.EnergyLevel, s.Kind, s.Completed, s.Generated, s.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sessionRepository) Update(ctx context.Context, s models.StudySession) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("updating session: id=%s, completed=%t", s.ID, s.Completed)

	res, err := r.db.ExecContext(ctx, `
UPDATE study_sessions
SET course_id = ?, date = ?, duration_minutes = ?, energy_level = ?, kind = ?, completed = ?, generated = ?
WHERE id = ?
`, s.CourseID, s.Date, s.DurationMinutes, s.EnergyLevel, s.Kind, s.Completed, s.Generated, s.ID)
	if err != nil {
		log.Error("failed to update session: %v", err)
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

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("deleting session: id=%s", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM study_sessions WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete session: %v", err)
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

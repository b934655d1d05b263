package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aboagye/studyflow/internal/logger"
	"github.com/aboagye/studyflow/internal/models"
	"github.com/aboagye/studyflow/internal/repository"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new CourseRepository implementation
func NewCourseRepository(db *sql.DB) repository.CourseRepository {
	return &courseRepository{db: db}
}

const courseColumns = `id, name, credit_hours, progress, difficulty, status, color, created_at, completed_at`

func scanCourse(row interface{ Scan(...any) error }) (*models.Course, error) {
	var c models.Course
	var completedAt sql.NullTime
	err := row.Scan(&c.ID, &c.Name, &c.CreditHours, &c.Progress, &c.Difficulty, &c.Status, &c.Color, &c.CreatedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		c.CompletedAt = &completedAt.Time
	}
	return &c, nil
}

func (r *courseRepository) Get(ctx context.Context, id string) (*models.Course, error) {
	log := logger.FromContext(ctx).WithPrefix("course_repo")
	log.Debug("getting course: id=%s", id)

	c, err := scanCourse(r.db.QueryRowContext(ctx, `
SELECT `+courseColumns+`
FROM courses
WHERE id = ?
`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("course not found: id=%s", id)
		} else {
			log.Error("failed to get course: %v", err)
		}
		return nil, err
	}
	return c, nil
}

func (r *courseRepository) List(ctx context.Context) ([]models.Course, error) {
	return r.list(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY created_at, id`)
}

func (r *courseRepository) ListByStatus(ctx context.Context, status string) ([]models.Course, error) {
	return r.list(ctx, `SELECT `+courseColumns+` FROM courses WHERE status = ? ORDER BY created_at, id`, status)
}

func (r *courseRepository) list(ctx context.Context, query string, args ...any) ([]models.Course, error) {
	log := logger.FromContext(ctx).WithPrefix("course_repo")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query courses: %v", err)
		return nil, err
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			log.Error("failed to scan course row: %v", err)
			return nil, err
		}
		courses = append(courses, *c)
	}
	log.Debug("found %d courses", len(courses))
	return courses, rows.Err()
}

func (r *courseRepository) Insert(ctx context.Context, c models.Course) error {
	log := logger.FromContext(ctx).WithPrefix("course_repo")
	log.Debug("inserting course: id=%s, name=%s", c.ID, c.Name)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO courses (id, name, credit_hours, progress, difficulty, status, color, created_at, completed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, c.ID, c.Name, c.CreditHours, c.Progress, c.Difficulty, c.Status, c.Color, c.CreatedAt, c.CompletedAt)
	if err != nil {
		log.Error("failed to insert course: %v", err)
	}
	return err
}

func (r *courseRepository) Update(ctx context.Context, c models.Course) error {
	log := logger.FromContext(ctx).WithPrefix("course_repo")
	log.Debug("updating course: id=%s, progress=%.1f, status=%s", c.ID, c.Progress, c.Status)

	res, err := r.db.ExecContext(ctx, `
UPDATE courses
SET name = ?, credit_hours = ?, progress = ?, difficulty = ?, status = ?, color = ?, completed_at = ?
WHERE id = ?
`, c.Name, c.CreditHours, c.Progress, c.Difficulty, c.Status, c.Color, c.CompletedAt, c.ID)
	if err != nil {
		log.Error("failed to update course: %v", err)
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

func (r *courseRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("course_repo")
	log.Debug("deleting course: id=%s", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete course: %v", err)
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

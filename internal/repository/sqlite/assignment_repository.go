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

type assignmentRepository struct {
	db *sql.DB
}

// NewAssignmentRepository creates a new AssignmentRepository implementation
func NewAssignmentRepository(db *sql.DB) repository.AssignmentRepository {
	return &assignmentRepository{db: db}
}

var assignmentColumns = []string{"id", "course_id", "title", "status", "priority", "due_date", "completed_at", "created_at"}

func scanAssignment(row interface{ Scan(...any) error }) (*models.Assignment, error) {
	var a models.Assignment
	var dueDate, completedAt sql.NullTime
	err := row.Scan(&a.ID, &a.CourseID, &a.Title, &a.Status, &a.Priority, &dueDate, &completedAt, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if dueDate.Valid {
		a.DueDate = &dueDate.Time
	}
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}
	return &a, nil
}

func (r *assignmentRepository) Get(ctx context.Context, id string) (*models.Assignment, error) {
	log := logger.FromContext(ctx).WithPrefix("assignment_repo")
	log.Debug("getting assignment: id=%s", id)

	a, err := scanAssignment(r.db.QueryRowContext(ctx, `
SELECT id, course_id, title, status, priority, due_date, completed_at, created_at
FROM assignments
WHERE id = ?
`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("assignment not found: id=%s", id)
		} else {
			log.Error("failed to get assignment: %v", err)
		}
		return nil, err
	}
	return a, nil
}

func (r *assignmentRepository) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error) {
	log := logger.FromContext(ctx).WithPrefix("assignment_repo")
	log.Debug("listing assignments with filter: course_id=%s, status=%s", filter.CourseID, filter.Status)

	query := sqlBuilder.Select(assignmentColumns...).From("assignments")

	// Dynamic WHERE clauses
	if filter.CourseID != "" {
		query = query.Where(squirrel.Eq{"course_id": filter.CourseID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}

	// Soonest due date first, undated assignments last
	query = query.OrderBy("due_date IS NULL", "due_date ASC", "created_at ASC")

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build assignment query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query assignments: %v", err)
		return nil, err
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			log.Error("failed to scan assignment row: %v", err)
			return nil, err
		}
		assignments = append(assignments, *a)
	}
	log.Debug("found %d assignments", len(assignments))
	return assignments, rows.Err()
}

func (r *assignmentRepository) Count(ctx context.Context, filter models.AssignmentFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("assignment_repo")

	query := sqlBuilder.Select("COUNT(*)").From("assignments")
	if filter.CourseID != "" {
		query = query.Where(squirrel.Eq{"course_id": filter.CourseID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count assignments: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *assignmentRepository) Insert(ctx context.Context, a models.Assignment) error {
	log := logger.FromContext(ctx).WithPrefix("assignment_repo")
	log.Debug("inserting assignment: id=%s, course_id=%s", a.ID, a.CourseID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO assignments (id, course_id, title, status, priority, due_date, completed_at, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, a.ID, a.CourseID, a.Title, a.Status, a.Priority, a.DueDate, a.CompletedAt, a.CreatedAt)
	if err != nil {
		log.Error("failed to insert assignment: %v", err)
	}
	return err
}

func (r *assignmentRepository) Update(ctx context.Context, a models.Assignment) error {
	log := logger.FromContext(ctx).WithPrefix("assignment_repo")
	log.Debug("updating assignment: id=%s, status=%s", a.ID, a.Status)

	res, err := r.db.ExecContext(ctx, `
UPDATE assignments
SET title = ?, status = ?, priority = ?, due_date = ?, completed_at = ?
WHERE id = ?
`, a.Title, a.Status, a.Priority, a.DueDate, a.CompletedAt, a.ID)
	if err != nil {
		log.Error("failed to update assignment: %v", err)
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

func (r *assignmentRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("assignment_repo")
	log.Debug("deleting assignment: id=%s", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete assignment: %v", err)
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

package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aboagye/studyflow/internal/logger"
	"github.com/aboagye/studyflow/internal/models"
	"github.com/aboagye/studyflow/internal/repository"
)

type quizResultRepository struct {
	db *sql.DB
}

// NewQuizResultRepository creates a new QuizResultRepository implementation
func NewQuizResultRepository(db *sql.DB) repository.QuizResultRepository {
	return &quizResultRepository{db: db}
}

func (r *quizResultRepository) Get(ctx context.Context, id string) (*models.QuizResult, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("getting quiz result: id=%s", id)

	var q models.QuizResult
	err := r.db.QueryRowContext(ctx, `
SELECT id, course_id, percentage, difficulty, attempts_used, taken_at
FROM quiz_results
WHERE id = ?
`, id).Scan(&q.ID, &q.CourseID, &q.Percentage, &q.Difficulty, &q.AttemptsUsed, &q.TakenAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("quiz result not found: id=%s", id)
		} else {
			log.Error("failed to get quiz result: %v", err)
		}
		return nil, err
	}
	return &q, nil
}

func (r *quizResultRepository) List(ctx context.Context) ([]models.QuizResult, error) {
	return r.list(ctx, `
SELECT id, course_id, percentage, difficulty, attempts_used, taken_at
FROM quiz_results
ORDER BY taken_at, id
`)
}

func (r *quizResultRepository) ListByCourse(ctx context.Context, courseID string) ([]models.QuizResult, error) {
	return r.list(ctx, `
SELECT id, course_id, percentage, difficulty, attempts_used, taken_at
FROM quiz_results
WHERE course_id = ?
ORDER BY taken_at, id
`, courseID)
}

func (r *quizResultRepository) list(ctx context.Context, query string, args ...any) ([]models.QuizResult, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query quiz results: %v", err)
		return nil, err
	}
	defer rows.Close()

	var results []models.QuizResult
	for rows.Next() {
		var q models.QuizResult
		if err := rows.Scan(&q.ID, &q.CourseID, &q.Percentage, &q.Difficulty, &q.AttemptsUsed, &q.TakenAt); err != nil {
			log.Error("failed to scan quiz result row: %v", err)
			return nil, err
		}
		results = append(results, q)
	}
	log.Debug("found %d quiz results", len(results))
	return results, rows.Err()
}

func (r *quizResultRepository) Insert(ctx context.Context, q models.QuizResult) error {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("inserting quiz result: id=%s, course_id=%s, percentage=%.1f", q.ID, q.CourseID, q.Percentage)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO quiz_results (id, course_id, percentage, difficulty, attempts_used, taken_at)
VALUES (?, ?, ?, ?, ?, ?)
`, q.ID, q.CourseID, q.Percentage, q.Difficulty, q.AttemptsUsed, q.TakenAt)
	if err != nil {
		log.Error("failed to insert quiz result: %v", err)
	}
	return err
}

func (r *quizResultRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("deleting quiz result: id=%s", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM quiz_results WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete quiz result: %v", err)
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

package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aboagye/studyflow/internal/logger"
	"github.com/aboagye/studyflow/internal/models"
	"github.com/aboagye/studyflow/internal/repository"
)

type analyticsCacheRepository struct {
	db *sql.DB
}

// NewAnalyticsCacheRepository creates a new AnalyticsCacheRepository implementation
func NewAnalyticsCacheRepository(db *sql.DB) repository.AnalyticsCacheRepository {
	return &analyticsCacheRepository{db: db}
}

func scanAnalytics(row interface{ Scan(...any) error }) (*models.CourseAnalytics, error) {
	var ca models.CourseAnalytics
	err := row.Scan(&ca.CourseID, &ca.Efficiency, &ca.PredictedScore, &ca.Confidence, &ca.LowConfidence,
		&ca.RiskLevel, &ca.Trend, &ca.ActualHours, &ca.RecommendedHours, &ca.ComputedAt)
	if err != nil {
		return nil, err
	}
	return &ca, nil
}

func (r *analyticsCacheRepository) Get(ctx context.Context, courseID string) (*models.CourseAnalytics, error) {
	log := logger.FromContext(ctx).WithPrefix("analytics_repo")
	log.Debug("getting cached analytics: course_id=%s", courseID)

	ca, err := scanAnalytics(r.db.QueryRowContext(ctx, `
SELECT course_id, efficiency, predicted_score, confidence, low_confidence, risk_level, trend, actual_hours, recommended_hours, computed_at
FROM analytics_cache
WHERE course_id = ?
`, courseID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no cached analytics: course_id=%s", courseID)
		} else {
			log.Error("failed to get cached analytics: %v", err)
		}
		return nil, err
	}
	return ca, nil
}

func (r *analyticsCacheRepository) List(ctx context.Context) ([]models.CourseAnalytics, error) {
	log := logger.FromContext(ctx).WithPrefix("analytics_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT course_id, efficiency, predicted_score, confidence, low_confidence, risk_level, trend, actual_hours, recommended_hours, computed_at
FROM analytics_cache
ORDER BY course_id
`)
	if err != nil {
		log.Error("failed to query analytics cache: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.CourseAnalytics
	for rows.Next() {
		ca, err := scanAnalytics(rows)
		if err != nil {
			log.Error("failed to scan analytics row: %v", err)
			return nil, err
		}
		out = append(out, *ca)
	}
	log.Debug("found %d cached analytics rows", len(out))
	return out, rows.Err()
}

func (r *analyticsCacheRepository) UpsertBatch(ctx context.Context, batch []models.CourseAnalytics) error {
	log := logger.FromContext(ctx).WithPrefix("analytics_repo")
	log.Debug("upserting %d analytics rows", len(batch))

	return tx(ctx, r.db, func(t *sql.Tx) error {
		stmt, err := t.PrepareContext(ctx, `
INSERT INTO analytics_cache (course_id, efficiency, predicted_score, confidence, low_confidence, risk_level, trend, actual_hours, recommended_hours, computed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (course_id) DO UPDATE SET
    efficiency = excluded.efficiency,
    predicted_score = excluded.predicted_score,
    confidence = excluded.confidence,
    low_confidence = excluded.low_confidence,
    risk_level = excluded.risk_level,
    trend = excluded.trend,
    actual_hours = excluded.actual_hours,
    recommended_hours = excluded.recommended_hours,
    computed_at = excluded.computed_at
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, ca := range batch {
			if _, err := stmt.ExecContext(ctx, ca.CourseID, ca.Efficiency, ca.PredictedScore, ca.Confidence, ca.LowConfidence,
				ca.RiskLevel, ca.Trend, ca.ActualHours, ca.RecommendedHours, ca.ComputedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *analyticsCacheRepository) DeleteByCourse(ctx context.Context, courseID string) error {
	log := logger.FromContext(ctx).WithPrefix("analytics_repo")
	log.Debug("invalidating cached analytics: course_id=%s", courseID)

	_, err := r.db.ExecContext(ctx, `DELETE FROM analytics_cache WHERE course_id = ?`, courseID)
	if err != nil {
		log.Error("failed to invalidate cached analytics: %v", err)
	}
	return err
}

func (r *analyticsCacheRepository) Clear(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("analytics_repo")
	log.Debug("clearing analytics cache")

	_, err := r.db.ExecContext(ctx, `DELETE FROM analytics_cache`)
	if err != nil {
		log.Error("failed to clear analytics cache: %v", err)
	}
	return err
}

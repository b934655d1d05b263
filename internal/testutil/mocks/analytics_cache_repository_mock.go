package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/aboagye/studyflow/internal/models"
)

// MockAnalyticsCacheRepository is a mock implementation of repository.AnalyticsCacheRepository
type MockAnalyticsCacheRepository struct {
	mock.Mock
}

func (m *MockAnalyticsCacheRepository) Get(ctx context.Context, courseID string) (*models.CourseAnalytics, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CourseAnalytics), args.Error(1)
}

func (m *MockAnalyticsCacheRepository) List(ctx context.Context) ([]models.CourseAnalytics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CourseAnalytics), args.Error(1)
}

func (m *MockAnalyticsCacheRepository) UpsertBatch(ctx context.Context, rows []models.CourseAnalytics) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockAnalyticsCacheRepository) DeleteByCourse(ctx context.Context, courseID string) error {
	args := m.Called(ctx, courseID)
	return args.Error(0)
}

func (m *MockAnalyticsCacheRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

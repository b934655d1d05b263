package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/aboagye/studyflow/internal/models"
)

// MockScheduleRepository is a mock implementation of repository.ScheduleRepository
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) Get(ctx context.Context, id string) (*models.ScheduleEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduleEntry), args.Error(1)
}

func (m *MockScheduleRepository) List(ctx context.Context, from, to time.Time) ([]models.ScheduleEntry, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ScheduleEntry), args.Error(1)
}

func (m *MockScheduleRepository) ReplaceGenerated(ctx context.Context, from time.Time, entries []models.ScheduleEntry) error {
	args := m.Called(ctx, from, entries)
	return args.Error(0)
}

func (m *MockScheduleRepository) Update(ctx context.Context, entry models.ScheduleEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

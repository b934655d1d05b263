package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/aboagye/studyflow/internal/models"
)

// MockQuizResultRepository is a mock implementation of repository.QuizResultRepository
type MockQuizResultRepository struct {
	mock.Mock
}

func (m *MockQuizResultRepository) Get(ctx context.Context, id string) (*models.QuizResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizResult), args.Error(1)
}

func (m *MockQuizResultRepository) List(ctx context.Context) ([]models.QuizResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuizResult), args.Error(1)
}

func (m *MockQuizResultRepository) ListByCourse(ctx context.Context, courseID string) ([]models.QuizResult, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuizResult), args.Error(1)
}

func (m *MockQuizResultRepository) Insert(ctx context.Context, result models.QuizResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockQuizResultRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

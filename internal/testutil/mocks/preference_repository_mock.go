package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/aboagye/studyflow/internal/models"
)

// MockPreferenceRepository is a mock implementation of repository.PreferenceRepository
type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) Get(ctx context.Context) (*models.Preferences, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Preferences), args.Error(1)
}

func (m *MockPreferenceRepository) Upsert(ctx context.Context, prefs models.Preferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}

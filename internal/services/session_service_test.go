package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aboagye/studyflow/internal/errors"
	"github.com/aboagye/studyflow/internal/models"
	"github.com/aboagye/studyflow/internal/services"
	"github.com/aboagye/studyflow/internal/testutil/mocks"
)

func TestLogSessionIsManual(t *testing.T) {
	sessions := new(mocks.MockSessionRepository)
	courses := new(mocks.MockCourseRepository)
	refresher := &noopRefresher{}
	svc := services.NewSessionService(sessions, courses, refresher)

	courses.On("Get", mock.Anything, "c1").Return(&models.Course{ID: "c1"}, nil)
	sessions.On("Insert", mock.Anything, mock.MatchedBy(func(sess models.StudySession) bool {
		return !sess.Generated && sess.CourseID == "c1"
	})).Return(nil)

	date := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	logged, err := svc.Log(context.Background(), services.LogSessionInput{
		CourseID:        "c1",
		Date:            &date,
		DurationMinutes: 45,
		Kind:            models.SessionPractice,
		Completed:       true,
	})
	require.NoError(t, err)
	assert.False(t, logged.Generated)
	assert.Equal(t, date, logged.Date)
	assert.Equal(t, []string{"c1"}, refresher.calls)
}

func TestLogSessionDurationBounds(t *testing.T) {
	svc := services.NewSessionService(new(mocks.MockSessionRepository), new(mocks.MockCourseRepository), &noopRefresher{})

	for _, minutes := range []int{0, -5, 601} {
		_, err := svc.Log(context.Background(), services.LogSessionInput{
			CourseID:        "c1",
			DurationMinutes: minutes,
		})
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	}
}

func TestToggleSessionNotifiesRefresher(t *testing.T) {
	sessions := new(mocks.MockSessionRepository)
	refresher := &noopRefresher{}
	svc := services.NewSessionService(sessions, new(mocks.MockCourseRepository), refresher)

	sessions.On("Get", mock.Anything, "s1").Return(&models.StudySession{
		ID:       "s1",
		CourseID: "c1",
	}, nil)
	sessions.On("Update", mock.Anything, mock.MatchedBy(func(sess models.StudySession) bool {
		return sess.Completed
	})).Return(nil)

	toggled, err := svc.ToggleCompleted(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	assert.Equal(t, []string{"c1"}, refresher.calls)
}

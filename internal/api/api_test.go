package api_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/aboagye/studyflow/internal/analytics"
	"github.com/aboagye/studyflow/internal/api"
	"github.com/aboagye/studyflow/internal/planner"
	"github.com/aboagye/studyflow/internal/repository/sqlite"
	"github.com/aboagye/studyflow/internal/services"
	"github.com/aboagye/studyflow/internal/testutil"
	"github.com/aboagye/studyflow/internal/worker"
)

type APITestSuite struct {
	suite.Suite
	db      *sql.DB
	handler http.Handler
	pool    *worker.Pool
	cancel  context.CancelFunc
}

func (s *APITestSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.pool = worker.NewPool(1, 16)
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.pool.Start(ctx)

	courseRepo := sqlite.NewCourseRepository(s.db)
	assignmentRepo := sqlite.NewAssignmentRepository(s.db)
	quizRepo := sqlite.NewQuizResultRepository(s.db)
	sessionRepo := sqlite.NewSessionRepository(s.db)
	prefRepo := sqlite.NewPreferenceRepository(s.db)
	scheduleRepo := sqlite.NewScheduleRepository(s.db)
	cacheRepo := sqlite.NewAnalyticsCacheRepository(s.db)

	analyticsService := services.NewAnalyticsService(
		courseRepo, assignmentRepo, quizRepo, sessionRepo, cacheRepo,
		s.pool, analytics.DefaultConfig(),
	)
	preferenceService := services.NewPreferenceService(prefRepo)

	srv := &api.Server{
		CourseService:     services.NewCourseService(courseRepo, analyticsService),
		AssignmentService: services.NewAssignmentService(assignmentRepo, courseRepo, analyticsService),
		QuizService:       services.NewQuizService(quizRepo, courseRepo, analyticsService),
		SessionService:    services.NewSessionService(sessionRepo, courseRepo, analyticsService),
		PreferenceService: preferenceService,
		ScheduleService:   services.NewScheduleService(scheduleRepo, courseRepo, preferenceService, planner.DefaultConfig()),
		AnalyticsService:  analyticsService,
		RefreshPool:       s.pool,
	}
	s.handler = srv.Routes()
}

func (s *APITestSuite) TearDownTest() {
	s.cancel()
	s.pool.Stop()
	testutil.MustClose(s.T(), s.db)
}

func (s *APITestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *APITestSuite) decode(rec *httptest.ResponseRecorder, v any) {
	require.NoError(s.T(), json.NewDecoder(rec.Body).Decode(v))
}

func (s *APITestSuite) TestHealthz() {
	rec := s.do(http.MethodGet, "/healthz", nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	var body map[string]string
	s.decode(rec, &body)
	assert.Equal(s.T(), "ok", body["status"])
}

func (s *APITestSuite) TestCourseLifecycle() {
	rec := s.do(http.MethodPost, "/api/courses", map[string]any{
		"name":         "Organic Chemistry",
		"credit_hours": 4,
		"difficulty":   4,
	})
	require.Equal(s.T(), http.StatusCreated, rec.Code)

	var created struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Status   string  `json:"status"`
		Progress float64 `json:"progress"`
	}
	s.decode(rec, &created)
	require.NotEmpty(s.T(), created.ID)
	assert.Equal(s.T(), "ongoing", created.Status)

	rec = s.do(http.MethodGet, "/api/courses", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	var listing struct {
		Courses []json.RawMessage `json:"courses"`
	}
	s.decode(rec, &listing)
	assert.Len(s.T(), listing.Courses, 1)

	// Driving progress to 100 completes the course.
	rec = s.do(http.MethodPut, "/api/courses/"+created.ID, map[string]any{
		"progress": 100,
	})
	require.Equal(s.T(), http.StatusOK, rec.Code)
	var updated struct {
		Status   string  `json:"status"`
		Progress float64 `json:"progress"`
	}
	s.decode(rec, &updated)
	assert.Equal(s.T(), "completed", updated.Status)
	assert.Equal(s.T(), 100.0, updated.Progress)

	rec = s.do(http.MethodDelete, "/api/courses/"+created.ID, nil)
	assert.Equal(s.T(), http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/courses/"+created.ID, nil)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
	var errBody struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	s.decode(rec, &errBody)
	assert.Equal(s.T(), "NOT_FOUND", errBody.Error.Code)
}

func (s *APITestSuite) TestCreateCourseValidation() {
	rec := s.do(http.MethodPost, "/api/courses", map[string]any{
		"name":         "",
		"credit_hours": 4,
		"difficulty":   3,
	})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)

	var errBody struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.decode(rec, &errBody)
	assert.Equal(s.T(), "VALIDATION_ERROR", errBody.Error.Code)
}

func (s *APITestSuite) TestUnknownFieldRejected() {
	rec := s.do(http.MethodPost, "/api/courses", map[string]any{
		"name":         "Linear Algebra",
		"credit_hours": 3,
		"difficulty":   3,
		"nickname":     "linalg",
	})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) createCourse(name string) string {
	rec := s.do(http.MethodPost, "/api/courses", map[string]any{
		"name":         name,
		"credit_hours": 3,
		"difficulty":   3,
	})
	require.Equal(s.T(), http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	s.decode(rec, &created)
	return created.ID
}

func (s *APITestSuite) TestAssignmentCompleteFlow() {
	courseID := s.createCourse("Statistics")

	rec := s.do(http.MethodPost, "/api/assignments", map[string]any{
		"course_id": courseID,
		"title":     "Problem set 3",
	})
	require.Equal(s.T(), http.StatusCreated, rec.Code)
	var created struct {
		ID       string `json:"id"`
		Status   string `json:"status"`
		Priority string `json:"priority"`
	}
	s.decode(rec, &created)
	assert.Equal(s.T(), "pending", created.Status)
	assert.Equal(s.T(), "medium", created.Priority)

	rec = s.do(http.MethodPost, fmt.Sprintf("/api/assignments/%s/complete", created.ID), nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	var completed struct {
		Status      string  `json:"status"`
		CompletedAt *string `json:"completed_at"`
	}
	s.decode(rec, &completed)
	assert.Equal(s.T(), "completed", completed.Status)
	assert.NotNil(s.T(), completed.CompletedAt)
}

func (s *APITestSuite) TestListAssignmentsPaginated() {
	courseID := s.createCourse("World Literature")
	for _, title := range []string{"Essay draft", "Peer review", "Final essay"} {
		rec := s.do(http.MethodPost, "/api/assignments", map[string]any{
			"course_id": courseID,
			"title":     title,
		})
		require.Equal(s.T(), http.StatusCreated, rec.Code)
	}

	rec := s.do(http.MethodGet, "/api/assignments?course_id="+courseID+"&limit=2", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	var listing struct {
		Assignments []json.RawMessage `json:"assignments"`
		Total       int               `json:"total"`
	}
	s.decode(rec, &listing)
	assert.Len(s.T(), listing.Assignments, 2)
	assert.Equal(s.T(), 3, listing.Total)
}

func (s *APITestSuite) TestScheduleGenerateAndList() {
	s.createCourse("Microeconomics")

	rec := s.do(http.MethodPost, "/api/schedule/generate", map[string]any{
		"horizon_days": 3,
		"start":        "2026-03-02",
	})
	require.Equal(s.T(), http.StatusCreated, rec.Code)
	var generated struct {
		Entries []struct {
			ID        string `json:"id"`
			CourseID  string `json:"course_id"`
			Generated bool   `json:"generated"`
		} `json:"entries"`
	}
	s.decode(rec, &generated)
	require.NotEmpty(s.T(), generated.Entries)
	for _, e := range generated.Entries {
		assert.True(s.T(), e.Generated)
		assert.NotEmpty(s.T(), e.ID)
	}

	rec = s.do(http.MethodGet, "/api/schedule?from=2026-03-02&to=2026-03-05", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	var listed struct {
		Entries []json.RawMessage `json:"entries"`
	}
	s.decode(rec, &listed)
	assert.Len(s.T(), listed.Entries, len(generated.Entries))
}

func (s *APITestSuite) TestScheduleRegenerateAfterCompletingEntry() {
	s.createCourse("Thermodynamics")

	rec := s.do(http.MethodPost, "/api/schedule/generate", map[string]any{
		"horizon_days": 3,
		"start":        "2026-03-02",
	})
	require.Equal(s.T(), http.StatusCreated, rec.Code)
	var generated struct {
		Entries []struct {
			ID string `json:"id"`
		} `json:"entries"`
	}
	s.decode(rec, &generated)
	require.NotEmpty(s.T(), generated.Entries)

	rec = s.do(http.MethodPost, "/api/schedule/"+generated.Entries[0].ID+"/toggle", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	// Regenerating over a window holding a completed entry must not fail.
	rec = s.do(http.MethodPost, "/api/schedule/generate", map[string]any{
		"horizon_days": 3,
		"start":        "2026-03-02",
	})
	require.Equal(s.T(), http.StatusCreated, rec.Code)

	rec = s.do(http.MethodGet, "/api/schedule?from=2026-03-02&to=2026-03-05", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	var listed struct {
		Entries []struct {
			ID        string `json:"id"`
			Completed bool   `json:"completed"`
		} `json:"entries"`
	}
	s.decode(rec, &listed)
	require.Len(s.T(), listed.Entries, len(generated.Entries))
	completed := 0
	for _, e := range listed.Entries {
		if e.Completed {
			completed++
			assert.Equal(s.T(), generated.Entries[0].ID, e.ID)
		}
	}
	assert.Equal(s.T(), 1, completed)
}

func (s *APITestSuite) TestScheduleGenerateWithoutCourses() {
	rec := s.do(http.MethodPost, "/api/schedule/generate", nil)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestAnalyticsOverview() {
	s.createCourse("Art History")

	rec := s.do(http.MethodGet, "/api/analytics", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	var report struct {
		Courses []struct {
			CourseID   string  `json:"course_id"`
			Efficiency float64 `json:"efficiency"`
			RiskLevel  string  `json:"risk_level"`
		} `json:"courses"`
		Insights []json.RawMessage `json:"insights"`
	}
	s.decode(rec, &report)
	require.Len(s.T(), report.Courses, 1)
	assert.GreaterOrEqual(s.T(), report.Courses[0].Efficiency, 0.0)
	assert.NotEmpty(s.T(), report.Courses[0].RiskLevel)
}

func (s *APITestSuite) TestPreferencesRoundTrip() {
	rec := s.do(http.MethodGet, "/api/preferences", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	var defaults struct {
		MaxDailyHours      float64 `json:"max_daily_hours"`
		PreferredStudyTime string  `json:"preferred_study_time"`
	}
	s.decode(rec, &defaults)
	assert.Equal(s.T(), 4.0, defaults.MaxDailyHours)
	assert.Equal(s.T(), "morning", defaults.PreferredStudyTime)

	rec = s.do(http.MethodPut, "/api/preferences", map[string]any{
		"max_daily_hours":              5,
		"study_session_length_minutes": 45,
		"break_duration_minutes":       10,
		"preferred_study_time":         "evening",
		"weekend_study":                true,
		"energy_levels":                map[string]int{"morning": 4, "afternoon": 6, "evening": 9},
	})
	require.Equal(s.T(), http.StatusOK, rec.Code)
	var updated struct {
		StudySessionLengthMinutes int    `json:"study_session_length_minutes"`
		PreferredStudyTime        string `json:"preferred_study_time"`
	}
	s.decode(rec, &updated)
	assert.Equal(s.T(), 45, updated.StudySessionLengthMinutes)
	assert.Equal(s.T(), "evening", updated.PreferredStudyTime)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

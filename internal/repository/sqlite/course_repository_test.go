package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/aboagye/studyflow/internal/models"
	"github.com/aboagye/studyflow/internal/repository"
	"github.com/aboagye/studyflow/internal/repository/sqlite"
	"github.com/aboagye/studyflow/internal/testutil"
)

type CourseRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.CourseRepository
}

func (s *CourseRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCourseRepository(s.db)
}

func (s *CourseRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CourseRepositorySuite) newCourse(id, name, status string) models.Course {
	return models.Course{
		ID:          id,
		Name:        name,
		CreditHours: 3,
		Progress:    25,
		Difficulty:  3,
		Status:      status,
		Color:       "#4f46e5",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

func (s *CourseRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	course := s.newCourse("c1", "Calculus", models.CourseOngoing)

	s.Require().NoError(s.repo.Insert(ctx, course))

	got, err := s.repo.Get(ctx, "c1")
	s.Require().NoError(err)
	s.Assert().Equal("Calculus", got.Name)
	s.Assert().Equal(3, got.CreditHours)
	s.Assert().InDelta(25, got.Progress, 1e-9)
	s.Assert().Nil(got.CompletedAt)
}

func (s *CourseRepositorySuite) TestGetMissingReturnsNoRows() {
	_, err := s.repo.Get(context.Background(), "nope")
	s.Assert().ErrorIs(err, sql.ErrNoRows)
}

func (s *CourseRepositorySuite) TestListByStatus() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, s.newCourse("c1", "Calculus", models.CourseOngoing)))
	s.Require().NoError(s.repo.Insert(ctx, s.newCourse("c2", "History", models.CourseCompleted)))
	s.Require().NoError(s.repo.Insert(ctx, s.newCourse("c3", "Physics", models.CourseOngoing)))

	ongoing, err := s.repo.ListByStatus(ctx, models.CourseOngoing)
	s.Require().NoError(err)
	s.Require().Len(ongoing, 2)
	s.Assert().Equal("c1", ongoing[0].ID)
	s.Assert().Equal("c3", ongoing[1].ID)

	all, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Assert().Len(all, 3)
}

func (s *CourseRepositorySuite) TestUpdate() {
	ctx := context.Background()
	course := s.newCourse("c1", "Calculus", models.CourseOngoing)
	s.Require().NoError(s.repo.Insert(ctx, course))

	completedAt := time.Now().UTC().Truncate(time.Second)
	course.Progress = 100
	course.Status = models.CourseCompleted
	course.CompletedAt = &completedAt
	s.Require().NoError(s.repo.Update(ctx, course))

	got, err := s.repo.Get(ctx, "c1")
	s.Require().NoError(err)
	s.Assert().Equal(models.CourseCompleted, got.Status)
	s.Require().NotNil(got.CompletedAt)
	s.Assert().True(got.CompletedAt.Equal(completedAt))
}

func (s *CourseRepositorySuite) TestUpdateMissingReturnsNoRows() {
	err := s.repo.Update(context.Background(), s.newCourse("ghost", "Ghost", models.CourseOngoing))
	s.Assert().ErrorIs(err, sql.ErrNoRows)
}

func (s *CourseRepositorySuite) TestDeleteCascades() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, s.newCourse("c1", "Calculus", models.CourseOngoing)))

	_, err := s.db.ExecContext(ctx, `
INSERT INTO assignments (id, course_id, title, status, priority, created_at)
VALUES ('a1', 'c1', 'Problem set', 'pending', 'medium', CURRENT_TIMESTAMP)
`)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(ctx, "c1"))

	var count int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assignments`).Scan(&count))
	s.Assert().Zero(count)
}

func TestCourseRepositorySuite(t *testing.T) {
	suite.Run(t, new(CourseRepositorySuite))
}

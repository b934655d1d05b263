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

type ScheduleRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ScheduleRepository
}

func (s *ScheduleRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewScheduleRepository(s.db)

	_, err := s.db.Exec(`
INSERT INTO courses (id, name, credit_hours, progress, difficulty, status)
VALUES ('c1', 'Calculus', 3, 40, 3, 'ongoing'), ('c2', 'History', 3, 10, 2, 'ongoing')
`)
	s.Require().NoError(err)
}

func (s *ScheduleRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func entry(id, courseID string, date time.Time, completed bool) models.ScheduleEntry {
	return models.ScheduleEntry{
		ID:              id,
		CourseID:        courseID,
		Date:            date,
		StartSlot:       9,
		DurationMinutes: 60,
		EnergyLevel:     8,
		Completed:       completed,
		Generated:       true,
	}
}

func (s *ScheduleRepositorySuite) TestReplaceGeneratedAndList() {
	ctx := context.Background()
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	first := []models.ScheduleEntry{
		entry("e1", "c1", monday, false),
		entry("e2", "c2", monday.AddDate(0, 0, 1), false),
	}
	s.Require().NoError(s.repo.ReplaceGenerated(ctx, monday, first))

	// Regenerate: old pending entries are swapped out wholesale.
	second := []models.ScheduleEntry{
		entry("e3", "c2", monday, false),
	}
	s.Require().NoError(s.repo.ReplaceGenerated(ctx, monday, second))

	entries, err := s.repo.List(ctx, monday, monday.AddDate(0, 0, 7))
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Assert().Equal("e3", entries[0].ID)
}

func (s *ScheduleRepositorySuite) TestReplaceGeneratedKeepsCompletedEntries() {
	ctx := context.Background()
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	s.Require().NoError(s.repo.ReplaceGenerated(ctx, monday, []models.ScheduleEntry{
		entry("done", "c1", monday, true),
		entry("pending", "c2", monday, false),
	}))

	s.Require().NoError(s.repo.ReplaceGenerated(ctx, monday, []models.ScheduleEntry{
		entry("fresh", "c2", monday.AddDate(0, 0, 1), false),
	}))

	entries, err := s.repo.List(ctx, monday, monday.AddDate(0, 0, 7))
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Assert().Equal("done", entries[0].ID)
	s.Assert().Equal("fresh", entries[1].ID)
}

func (s *ScheduleRepositorySuite) TestReplaceGeneratedAfterCompletingEntry() {
	ctx := context.Background()
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	s.Require().NoError(s.repo.ReplaceGenerated(ctx, monday, []models.ScheduleEntry{
		entry("e1", "c1", monday, false),
		entry("e2", "c2", monday.AddDate(0, 0, 1), false),
	}))

	done := entry("e1", "c1", monday, true)
	s.Require().NoError(s.repo.Update(ctx, done))

	// Regenerating re-plans the same (date, course) pair the completed entry
	// holds; the survivor wins and the rest of the plan lands.
	s.Require().NoError(s.repo.ReplaceGenerated(ctx, monday, []models.ScheduleEntry{
		entry("e3", "c1", monday, false),
		entry("e4", "c2", monday, false),
	}))

	entries, err := s.repo.List(ctx, monday, monday.AddDate(0, 0, 7))
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	byID := make(map[string]models.ScheduleEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	s.Require().Contains(byID, "e1")
	s.Assert().True(byID["e1"].Completed)
	s.Require().Contains(byID, "e4")
	s.Assert().NotContains(byID, "e3")
}

func (s *ScheduleRepositorySuite) TestDuplicateDayCoursePairSkipped() {
	ctx := context.Background()
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	err := s.repo.ReplaceGenerated(ctx, monday, []models.ScheduleEntry{
		entry("e1", "c1", monday, false),
		entry("e2", "c1", monday, false),
	})
	s.Require().NoError(err)

	// One session per course per day: the first insert wins.
	entries, err := s.repo.List(ctx, monday, monday.AddDate(0, 0, 7))
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Assert().Equal("e1", entries[0].ID)
}

func (s *ScheduleRepositorySuite) TestUpdateToggleCompleted() {
	ctx := context.Background()
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	e := entry("e1", "c1", monday, false)
	s.Require().NoError(s.repo.ReplaceGenerated(ctx, monday, []models.ScheduleEntry{e}))

	e.Completed = true
	s.Require().NoError(s.repo.Update(ctx, e))

	got, err := s.repo.Get(ctx, "e1")
	s.Require().NoError(err)
	s.Assert().True(got.Completed)
}

func (s *ScheduleRepositorySuite) TestGetMissingReturnsNoRows() {
	_, err := s.repo.Get(context.Background(), "ghost")
	s.Assert().ErrorIs(err, sql.ErrNoRows)
}

func TestScheduleRepositorySuite(t *testing.T) {
	suite.Run(t, new(ScheduleRepositorySuite))
}

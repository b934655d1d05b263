package planner

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/aboagye/studyflow/internal/errors"
	"github.com/aboagye/studyflow/internal/models"
)

// DefaultHorizonDays is the scheduling horizon used when none is given.
const DefaultHorizonDays = 7

type window struct {
	start  int
	energy int
}

// Generate allocates study sessions for the given courses over the horizon
// starting at start. Courses are ranked by urgency, days are filled window by
// window in descending energy order, and a course is scheduled at most once
// per day. Break overhead is deducted from the day's remaining study
// capacity without occupying a slot.
//
// Entries are returned without IDs; assigning identity is the caller's
// concern, which keeps this a deterministic function of its inputs. The
// context is only consulted between day iterations.
func Generate(ctx context.Context, courses []models.Course, prefs models.Preferences, horizonDays int, start time.Time, cfg Config) ([]models.ScheduleEntry, error) {
	if err := ValidatePreferences(prefs); err != nil {
		return nil, err
	}
	ranked := RankCourses(courses, cfg)
	if len(ranked) == 0 {
		return nil, errors.NewValidationError("courses", "at least one ongoing course is required")
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	windows := dayWindows(prefs, cfg)
	sessionHoursMax := float64(prefs.StudySessionLengthMinutes) / 60
	breakHours := float64(prefs.BreakDurationMinutes) / 60

	var entries []models.ScheduleEntry
	for day := 0; day < horizonDays; day++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		date := startOfDay(start.AddDate(0, 0, day))
		if isWeekend(date) && !prefs.WeekendStudy {
			continue
		}

		remaining := prefs.MaxDailyHours
		scheduled := make(map[string]bool, len(ranked))
		for _, w := range windows {
			if remaining <= 0 {
				break
			}
			course, ok := nextUnscheduled(ranked, scheduled)
			if !ok {
				break
			}

			sessionHours := math.Min(remaining, sessionHoursMax)
			duration := int(math.Round(sessionHours * 60))
			if duration < 1 {
				break
			}

			entries = append(entries, models.ScheduleEntry{
				CourseID:        course.ID,
				Date:            date,
				StartSlot:       w.start,
				DurationMinutes: duration,
				EnergyLevel:     w.energy,
				Generated:       true,
			})
			scheduled[course.ID] = true

			remaining -= sessionHours
			if remaining > 0 && breakHours > 0 {
				remaining -= breakHours
			}
		}
	}

	if len(entries) == 0 {
		return nil, errors.NewGenerationError("no study time could be allocated; increase max daily hours or energy levels, or enable weekend study")
	}
	return entries, nil
}

// dayWindows builds the usable energy windows for a day, highest energy
// first. Windows with zero energy are disabled. The sort is stable so equal
// energies keep morning/afternoon/evening order.
func dayWindows(prefs models.Preferences, cfg Config) []window {
	all := []window{
		{start: cfg.MorningStart, energy: prefs.EnergyLevels.Morning},
		{start: cfg.AfternoonStart, energy: prefs.EnergyLevels.Afternoon},
		{start: cfg.EveningStart, energy: prefs.EnergyLevels.Evening},
	}
	windows := all[:0]
	for _, w := range all {
		if w.energy > 0 {
			windows = append(windows, w)
		}
	}
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].energy > windows[j].energy
	})
	return windows
}

func nextUnscheduled(ranked []models.Course, scheduled map[string]bool) (models.Course, bool) {
	for _, c := range ranked {
		if !scheduled[c.ID] {
			return c, true
		}
	}
	return models.Course{}, false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

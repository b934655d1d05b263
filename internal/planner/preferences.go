package planner

import (
	"github.com/go-playground/validator/v10"

	"github.com/aboagye/studyflow/internal/errors"
	"github.com/aboagye/studyflow/internal/models"
)

var validate = validator.New()

// Preference defaults applied by NormalizePreferences.
const (
	DefaultMaxDailyHours    = 4.0
	DefaultSessionMinutes   = 60
	DefaultBreakMinutes     = 15
	DefaultMorningEnergy    = 8
	DefaultAfternoonEnergy  = 6
	DefaultEveningEnergy    = 4
	DefaultPreferredTime    = "morning"
	MaxDailyHoursLimit      = 12
	MinSessionMinutes       = 15
	MaxSessionMinutes       = 120
	MinBreakMinutes         = 5
	MaxBreakMinutes         = 30
)

// NormalizePreferences fills defaults for unset fields, then clamps bounded
// fields into their documented ranges. Defaulting is per field, so a partial
// document keeps its explicit values and picks up defaults for the rest.
// Zero max daily hours and zero break duration stay zero on a non-empty
// document; they mean "no capacity" and "no breaks" respectively. It never
// fails; structurally invalid input is the job of ValidatePreferences.
func NormalizePreferences(p models.Preferences) models.Preferences {
	firstUse := p.MaxDailyHours == 0 && p.StudySessionLengthMinutes == 0 &&
		p.BreakDurationMinutes == 0 && p.EnergyLevels == (models.EnergyLevels{})

	if p.PreferredStudyTime == "" {
		p.PreferredStudyTime = DefaultPreferredTime
	}
	if firstUse {
		p.MaxDailyHours = DefaultMaxDailyHours
		p.BreakDurationMinutes = DefaultBreakMinutes
	}
	if p.StudySessionLengthMinutes == 0 {
		p.StudySessionLengthMinutes = DefaultSessionMinutes
	}
	if p.EnergyLevels == (models.EnergyLevels{}) {
		p.EnergyLevels = models.EnergyLevels{
			Morning:   DefaultMorningEnergy,
			Afternoon: DefaultAfternoonEnergy,
			Evening:   DefaultEveningEnergy,
		}
	}

	p.MaxDailyHours = clampF(p.MaxDailyHours, 0, MaxDailyHoursLimit)
	p.StudySessionLengthMinutes = clampI(p.StudySessionLengthMinutes, MinSessionMinutes, MaxSessionMinutes)
	if p.BreakDurationMinutes != 0 {
		p.BreakDurationMinutes = clampI(p.BreakDurationMinutes, MinBreakMinutes, MaxBreakMinutes)
	}
	p.EnergyLevels.Morning = clampI(p.EnergyLevels.Morning, 0, 10)
	p.EnergyLevels.Afternoon = clampI(p.EnergyLevels.Afternoon, 0, 10)
	p.EnergyLevels.Evening = clampI(p.EnergyLevels.Evening, 0, 10)
	return p
}

// ValidatePreferences rejects out-of-range preference values. Zero is
// accepted for max daily hours, break duration and energy levels: a zero
// energy window is disabled, and a zero-capacity day surfaces later as a
// generation error rather than a validation one.
func ValidatePreferences(p models.Preferences) error {
	if err := validate.Struct(p); err != nil {
		if fields, ok := err.(validator.ValidationErrors); ok && len(fields) > 0 {
			f := fields[0]
			return errors.NewValidationError(f.Field(), "failed "+f.Tag()+" constraint")
		}
		return errors.NewValidationError("preferences", err.Error())
	}
	if b := p.BreakDurationMinutes; b != 0 && (b < MinBreakMinutes || b > MaxBreakMinutes) {
		return errors.NewValidationError("break_duration_minutes", "must be 0 or between 5 and 30")
	}
	return nil
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package models

import "time"

// Course status values.
const (
	CourseOngoing   = "ongoing"
	CourseCompleted = "completed"
)

type Course struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	CreditHours int        `json:"credit_hours"`
	Progress    float64    `json:"progress"`
	Difficulty  int        `json:"difficulty"`
	Status      string     `json:"status"`
	Color       string     `json:"color"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Assignment status values.
const (
	AssignmentPending   = "pending"
	AssignmentCompleted = "completed"
)

type Assignment struct {
	ID          string     `json:"id"`
	CourseID    string     `json:"course_id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Quiz difficulty labels.
const (
	QuizEasy   = "Easy"
	QuizMedium = "Medium"
	QuizHard   = "Hard"
)

type QuizResult struct {
	ID           string    `json:"id"`
	CourseID     string    `json:"course_id"`
	Percentage   float64   `json:"percentage"`
	Difficulty   string    `json:"difficulty"`
	AttemptsUsed int       `json:"attempts_used"`
	TakenAt      time.Time `json:"taken_at"`
}

// Session activity kinds.
const (
	SessionReading  = "reading"
	SessionPractice = "practice"
	SessionReview   = "review"
	SessionQuiz     = "quiz"
	SessionOther    = "other"
)

type StudySession struct {
	ID              string    `json:"id"`
	CourseID        string    `json:"course_id"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	EnergyLevel     int       `json:"energy_level"`
	Kind            string    `json:"kind"`
	Completed       bool      `json:"completed"`
	Generated       bool      `json:"generated"`
	CreatedAt       time.Time `json:"created_at"`
}

// EnergyLevels holds the user-reported energy for each period of day.
// Zero disables the window.
type EnergyLevels struct {
	Morning   int `json:"morning" validate:"min=0,max=10"`
	Afternoon int `json:"afternoon" validate:"min=0,max=10"`
	Evening   int `json:"evening" validate:"min=0,max=10"`
}

type Preferences struct {
	PreferredStudyTime        string       `json:"preferred_study_time" validate:"omitempty,oneof=morning afternoon evening"`
	MaxDailyHours             float64      `json:"max_daily_hours" validate:"min=0,max=12"`
	StudySessionLengthMinutes int          `json:"study_session_length_minutes" validate:"min=15,max=120"`
	BreakDurationMinutes      int          `json:"break_duration_minutes"`
	WeekendStudy              bool         `json:"weekend_study"`
	EnergyLevels              EnergyLevels `json:"energy_levels"`
}

// ScheduleEntry is a single allocated study slot. StartSlot is the hour of
// day the slot begins at (9, 13 or 17 by default).
type ScheduleEntry struct {
	ID              string    `json:"id"`
	CourseID        string    `json:"course_id"`
	Date            time.Time `json:"date"`
	StartSlot       int       `json:"start_slot"`
	DurationMinutes int       `json:"duration_minutes"`
	EnergyLevel     int       `json:"energy_level"`
	Completed       bool      `json:"completed"`
	Generated       bool      `json:"generated"`
}

// Risk levels and trends used by course analytics.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"

	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// CourseAnalytics is derived per course and recomputed on demand; it is never
// the system of record.
type CourseAnalytics struct {
	CourseID         string    `json:"course_id"`
	Efficiency       float64   `json:"efficiency"`
	PredictedScore   float64   `json:"predicted_score"`
	Confidence       float64   `json:"confidence"`
	LowConfidence    bool      `json:"low_confidence"`
	RiskLevel        string    `json:"risk_level"`
	Trend            string    `json:"trend"`
	ActualHours      float64   `json:"actual_hours"`
	RecommendedHours float64   `json:"recommended_hours"`
	ComputedAt       time.Time `json:"computed_at"`
}

// Insight priorities and types.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityInfo   = "info"

	InsightWarning = "warning"
	InsightSuccess = "success"
	InsightInfo    = "info"
)

type Insight struct {
	Type           string `json:"type"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
	Priority       string `json:"priority"`
}

// SessionFilter narrows session listings.
type SessionFilter struct {
	CourseID  string
	From      *time.Time
	To        *time.Time
	Completed *bool
	Generated *bool
	Limit     int
	Offset    int
}

// AssignmentFilter narrows assignment listings.
type AssignmentFilter struct {
	CourseID string
	Status   string
	Limit    int
	Offset   int
}

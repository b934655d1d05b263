package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/aboagye/studyflow/internal/errors"
	"github.com/aboagye/studyflow/internal/services"
	"github.com/aboagye/studyflow/internal/worker"
)

type Server struct {
	CourseService     services.CourseService
	AssignmentService services.AssignmentService
	QuizService       services.QuizService
	SessionService    services.SessionService
	PreferenceService services.PreferenceService
	ScheduleService   services.ScheduleService
	AnalyticsService  services.AnalyticsService
	RefreshPool       *worker.Pool

	// HorizonDays is the default planning horizon for generate requests
	// that do not name one.
	HorizonDays int
}

// respondJSON writes a JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.NewBadRequestError("invalid JSON body: " + err.Error())
	}
	return nil
}

// parseIntParam parses an integer query parameter, falling back to def when
// absent or malformed.
func parseIntParam(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// parseTimeParam parses a YYYY-MM-DD query parameter.
func parseTimeParam(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, errors.NewBadRequestError("invalid " + name + ": expected YYYY-MM-DD")
	}
	return &t, nil
}

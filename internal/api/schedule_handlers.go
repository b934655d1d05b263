package api

import (
	"net/http"
	"time"

	"github.com/aboagye/studyflow/internal/planner"
	"github.com/go-chi/chi/v5"
)

type generateScheduleRequest struct {
	HorizonDays int    `json:"horizon_days"`
	Start       string `json:"start"`
}

func (s *Server) handleListSchedule(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := parseTimeParam("from", q.Get("from"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	to, err := parseTimeParam("to", q.Get("to"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	// Default to the upcoming horizon when no window is given.
	now := time.Now().UTC()
	if from == nil {
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		from = &start
	}
	if to == nil {
		horizon := s.HorizonDays
		if horizon <= 0 {
			horizon = planner.DefaultHorizonDays
		}
		end := from.AddDate(0, 0, horizon)
		to = &end
	}

	entries, err := s.ScheduleService.List(r.Context(), *from, *to)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleGenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req generateScheduleRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, err)
			return
		}
	}

	if req.HorizonDays <= 0 {
		req.HorizonDays = s.HorizonDays
	}

	var start time.Time
	if req.Start != "" {
		parsed, err := parseTimeParam("start", req.Start)
		if err != nil {
			handleError(w, r, err)
			return
		}
		start = *parsed
	}

	entries, err := s.ScheduleService.Generate(r.Context(), req.HorizonDays, start)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"entries": entries})
}

func (s *Server) handleToggleScheduleEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.ScheduleService.ToggleCompleted(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

package api

import (
	"net/http"
	"strconv"

	"github.com/aboagye/studyflow/internal/models"
	"github.com/aboagye/studyflow/internal/services"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
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

	filter := models.SessionFilter{
		CourseID: q.Get("course_id"),
		From:     from,
		To:       to,
		Limit:    parseIntParam(q.Get("limit"), 0),
		Offset:   parseIntParam(q.Get("offset"), 0),
	}
	if raw := q.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err == nil {
			filter.Completed = &completed
		}
	}

	sessions, err := s.SessionService.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

func (s *Server) handleLogSession(w http.ResponseWriter, r *http.Request) {
	var input services.LogSessionInput
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.SessionService.Log(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleToggleSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.SessionService.ToggleCompleted(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.SessionService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

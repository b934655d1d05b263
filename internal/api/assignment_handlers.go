package api

import (
	"net/http"

	"github.com/aboagye/studyflow/internal/models"
	"github.com/aboagye/studyflow/internal/services"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.AssignmentFilter{
		CourseID: q.Get("course_id"),
		Status:   q.Get("status"),
		Limit:    parseIntParam(q.Get("limit"), 0),
		Offset:   parseIntParam(q.Get("offset"), 0),
	}

	assignments, total, err := s.AssignmentService.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"assignments": assignments, "total": total})
}

func (s *Server) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	var input services.CreateAssignmentInput
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	assignment, err := s.AssignmentService.Create(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, assignment)
}

func (s *Server) handleCompleteAssignment(w http.ResponseWriter, r *http.Request) {
	assignment, err := s.AssignmentService.Complete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, assignment)
}

func (s *Server) handleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	if err := s.AssignmentService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

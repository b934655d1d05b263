package api

import (
	"net/http"

	"github.com/aboagye/studyflow/internal/services"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListQuizResults(w http.ResponseWriter, r *http.Request) {
	courseID := r.URL.Query().Get("course_id")

	var err error
	var results any
	if courseID != "" {
		results, err = s.QuizService.ListByCourse(r.Context(), courseID)
	} else {
		results, err = s.QuizService.List(r.Context())
	}
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"quiz_results": results})
}

func (s *Server) handleRecordQuizResult(w http.ResponseWriter, r *http.Request) {
	var input services.RecordQuizInput
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.QuizService.Record(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

func (s *Server) handleDeleteQuizResult(w http.ResponseWriter, r *http.Request) {
	if err := s.QuizService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleAnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	report, err := s.AnalyticsService.Overview(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleCourseAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := s.AnalyticsService.CourseAnalytics(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, analytics)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/courses", func(r chi.Router) {
			r.Get("/", s.handleListCourses)
			r.Post("/", s.handleCreateCourse)
			r.Get("/{id}", s.handleGetCourse)
			r.Put("/{id}", s.handleUpdateCourse)
			r.Delete("/{id}", s.handleDeleteCourse)
		})

		r.Route("/assignments", func(r chi.Router) {
			r.Get("/", s.handleListAssignments)
			r.Post("/", s.handleCreateAssignment)
			r.Post("/{id}/complete", s.handleCompleteAssignment)
			r.Delete("/{id}", s.handleDeleteAssignment)
		})

		r.Route("/quiz-results", func(r chi.Router) {
			r.Get("/", s.handleListQuizResults)
			r.Post("/", s.handleRecordQuizResult)
			r.Delete("/{id}", s.handleDeleteQuizResult)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.handleListSessions)
			r.Post("/", s.handleLogSession)
			r.Post("/{id}/toggle", s.handleToggleSession)
			r.Delete("/{id}", s.handleDeleteSession)
		})

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/", s.handleGetPreferences)
			r.Put("/", s.handleUpdatePreferences)
		})

		r.Route("/schedule", func(r chi.Router) {
			r.Get("/", s.handleListSchedule)
			r.Post("/generate", s.handleGenerateSchedule)
			r.Post("/{id}/toggle", s.handleToggleScheduleEntry)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/", s.handleAnalyticsOverview)
			r.Get("/courses/{id}", s.handleCourseAnalytics)
		})
	})

	return r
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aboagye/studyflow/internal/analytics"
	"github.com/aboagye/studyflow/internal/api"
	"github.com/aboagye/studyflow/internal/config"
	"github.com/aboagye/studyflow/internal/db"
	"github.com/aboagye/studyflow/internal/logger"
	"github.com/aboagye/studyflow/internal/planner"
	"github.com/aboagye/studyflow/internal/repository/sqlite"
	"github.com/aboagye/studyflow/internal/services"
	"github.com/aboagye/studyflow/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("StudyFlow Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("horizon_days=%d", cfg.HorizonDays)
	log.Debug("refresh_worker_count=%d", cfg.RefreshWorkerCount)
	log.Debug("refresh_queue_size=%d", cfg.RefreshQueueSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	refreshPool := worker.NewPool(cfg.RefreshWorkerCount, cfg.RefreshQueueSize)

	courseRepo := sqlite.NewCourseRepository(database.DB)
	assignmentRepo := sqlite.NewAssignmentRepository(database.DB)
	quizRepo := sqlite.NewQuizResultRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)
	prefRepo := sqlite.NewPreferenceRepository(database.DB)
	scheduleRepo := sqlite.NewScheduleRepository(database.DB)
	cacheRepo := sqlite.NewAnalyticsCacheRepository(database.DB)

	// The analytics service doubles as the refresher the write-path
	// services notify after mutations.
	analyticsService := services.NewAnalyticsService(
		courseRepo, assignmentRepo, quizRepo, sessionRepo, cacheRepo,
		refreshPool, analytics.DefaultConfig(),
	)
	courseService := services.NewCourseService(courseRepo, analyticsService)
	assignmentService := services.NewAssignmentService(assignmentRepo, courseRepo, analyticsService)
	quizService := services.NewQuizService(quizRepo, courseRepo, analyticsService)
	sessionService := services.NewSessionService(sessionRepo, courseRepo, analyticsService)
	preferenceService := services.NewPreferenceService(prefRepo)
	scheduleService := services.NewScheduleService(scheduleRepo, courseRepo, preferenceService, planner.DefaultConfig())

	srv := &api.Server{
		CourseService:     courseService,
		AssignmentService: assignmentService,
		QuizService:       quizService,
		SessionService:    sessionService,
		PreferenceService: preferenceService,
		ScheduleService:   scheduleService,
		AnalyticsService:  analyticsService,
		RefreshPool:       refreshPool,
		HorizonDays:       cfg.HorizonDays,
	}

	ctx, cancel := context.WithCancel(context.Background())
	refreshPool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping refresh pool")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	refreshPool.Stop()

	log.Info("===========================================")
	log.Info("StudyFlow Server Stopped")
	log.Info("===========================================")
}

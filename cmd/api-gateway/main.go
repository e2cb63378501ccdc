package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-enrollment-api/internal/handler"
	"github.com/noah-isme/sma-enrollment-api/internal/models"
	"github.com/noah-isme/sma-enrollment-api/internal/repository"
	"github.com/noah-isme/sma-enrollment-api/internal/router"
	"github.com/noah-isme/sma-enrollment-api/internal/service"
	"github.com/noah-isme/sma-enrollment-api/pkg/config"
	"github.com/noah-isme/sma-enrollment-api/pkg/export"
	"github.com/noah-isme/sma-enrollment-api/pkg/logger"
)

// @title SMA Enrollment API
// @version 0.1.0
// @description In-memory student, course and enrollment directory
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	store := repository.NewStore()
	studentRepo := repository.NewStudentRepository(store)
	courseRepo := repository.NewCourseRepository(store)
	links := repository.NewEnrollmentRepository(store)

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
		metrics.TrackDirectory(func() models.EnrollmentStats {
			stats, err := links.Stats(context.Background())
			if err != nil {
				logr.Warn("directory stats unavailable", zap.Error(err))
			}
			return stats
		})
	}

	validate := validator.New()
	students := service.NewStudentDirectory(studentRepo, links, metrics, cfg.Students.MinAge, validate, logr)
	courses := service.NewCourseDirectory(courseRepo, links, metrics, cfg.Courses.StrictLookup, validate, logr)

	courseHandler := handler.NewCourseHandler(courses, students, nil)
	if cfg.Exports.Enabled {
		exports := service.NewExportService(courseRepo, links, logr, export.NewCSVExporter(), export.NewPDFExporter())
		courseHandler = handler.NewCourseHandler(courses, students, exports)
	}

	r := router.New(router.Dependencies{
		Config:   cfg,
		Logger:   logr,
		Metrics:  metrics,
		Stats:    links.Stats,
		Students: handler.NewStudentHandler(students, courses),
		Courses:  courseHandler,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "strict_lookup", cfg.Courses.StrictLookup)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

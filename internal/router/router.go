package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-enrollment-api/api/swagger"
	"github.com/noah-isme/sma-enrollment-api/internal/handler"
	internalmiddleware "github.com/noah-isme/sma-enrollment-api/internal/middleware"
	"github.com/noah-isme/sma-enrollment-api/internal/service"
	"github.com/noah-isme/sma-enrollment-api/pkg/config"
	"github.com/noah-isme/sma-enrollment-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-enrollment-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-enrollment-api/pkg/middleware/requestid"
)

// Dependencies groups what the HTTP layer needs.
type Dependencies struct {
	Config   *config.Config
	Logger   *zap.Logger
	Metrics  *service.MetricsService
	Stats    handler.StatsFunc
	Students *handler.StudentHandler
	Courses  *handler.CourseHandler
}

// New builds the gin engine with middleware and routes registered.
func New(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	logr := deps.Logger
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(deps.Metrics, cfg.APIPrefix))

	metricsHandler := handler.NewMetricsHandler(deps.Metrics, deps.Stats)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if cfg.Metrics.Enabled && deps.Metrics != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/stats", metricsHandler.Stats)

	students := api.Group("/students")
	students.GET("", deps.Students.List)
	students.POST("", deps.Students.Create)
	students.GET("/:name", deps.Students.Get)
	students.DELETE("/:name", deps.Students.Delete)
	students.GET("/:name/courses", deps.Students.Courses)
	students.POST("/:name/courses/:course", deps.Students.Enroll)
	students.DELETE("/:name/courses/:course", deps.Students.Unenroll)

	courses := api.Group("/courses")
	courses.GET("", deps.Courses.List)
	courses.POST("", deps.Courses.Create)
	courses.GET("/:name", deps.Courses.Get)
	courses.PUT("/:name", deps.Courses.Update)
	courses.DELETE("/:name", deps.Courses.Delete)
	courses.GET("/:name/students", deps.Courses.Students)
	courses.POST("/:name/students/:student", deps.Courses.Enroll)
	courses.DELETE("/:name/students/:student", deps.Courses.Unenroll)
	if cfg.Exports.Enabled {
		courses.GET("/:name/roster", deps.Courses.Roster)
	}

	return r
}

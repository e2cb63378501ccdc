package logger

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/noah-isme/sma-enrollment-api/pkg/config"
	"github.com/noah-isme/sma-enrollment-api/pkg/middleware/requestid"
)

// ServiceName tags every log line.
const ServiceName = "sma-enrollment-api"

// New builds the process logger. Every entry carries the service name and
// the course lookup mode so lenient no-ops can be told apart in the logs.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Env == config.EnvProduction {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Log.Format {
	case "console":
		zapCfg.Encoding = "console"
	default:
		zapCfg.Encoding = "json"
	}

	if cfg.Log.Level != "" {
		if err := zapCfg.Level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
	}

	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.InitialFields = map[string]interface{}{
		"service":       ServiceName,
		"env":           cfg.Env,
		"strict_lookup": cfg.Courses.StrictLookup,
	}

	return zapCfg.Build()
}

// GinMiddleware writes one access log entry per request. Server errors log at
// error level and client errors at warn level.
func GinMiddleware(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if route := c.FullPath(); route != "" {
			fields = append(fields, zap.String("route", route))
		}
		fields = append(fields, entityFields(c)...)
		if reqID := requestid.Value(c); reqID != "" {
			fields = append(fields, zap.String("request_id", reqID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			l.Error("http_request", fields...)
		case status >= http.StatusBadRequest:
			l.Warn("http_request", fields...)
		default:
			l.Info("http_request", fields...)
		}
	}
}

// entityFields names the student and course a request addressed. Routes use
// :name for the directory they live under and :student/:course for the other side.
func entityFields(c *gin.Context) []zap.Field {
	var fields []zap.Field
	add := func(key, value string) {
		if value != "" {
			fields = append(fields, zap.String(key, value))
		}
	}
	switch directoryOf(c.FullPath()) {
	case "students":
		add("student", c.Param("name"))
		add("course", c.Param("course"))
	case "courses":
		add("course", c.Param("name"))
		add("student", c.Param("student"))
	}
	return fields
}

// directoryOf returns the first students or courses segment of a route template.
func directoryOf(route string) string {
	for _, segment := range strings.Split(route, "/") {
		if segment == "students" || segment == "courses" {
			return segment
		}
	}
	return ""
}

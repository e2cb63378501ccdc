package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/sma-enrollment-api/pkg/config"
	"github.com/noah-isme/sma-enrollment-api/pkg/middleware/requestid"
)

func newObservedEngine() (*gin.Engine, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)

	r := gin.New()
	r.Use(requestid.Middleware())
	r.Use(GinMiddleware(zap.New(core)))
	r.POST("/api/v1/students/:name/courses/:course", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.POST("/api/v1/courses/:name/students/:student", func(c *gin.Context) { c.Status(http.StatusConflict) })
	r.GET("/api/v1/courses/:name", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	return r, logs
}

func TestGinMiddlewareNamesEntities(t *testing.T) {
	r, logs := newObservedEngine()

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/students/Alice/courses/Biology", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/courses/Biology/students/Bob", nil))

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "Alice", first["student"])
	assert.Equal(t, "Biology", first["course"])
	assert.Equal(t, "/api/v1/students/:name/courses/:course", first["route"])
	assert.NotEmpty(t, first["request_id"])

	second := entries[1].ContextMap()
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "Bob", second["student"])
	assert.Equal(t, "Biology", second["course"])
}

func TestGinMiddlewareLevels(t *testing.T) {
	r, logs := newObservedEngine()

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/courses/Biology", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	_, hasRoute := entries[1].ContextMap()["route"]
	assert.False(t, hasRoute)
}

func TestDirectoryOf(t *testing.T) {
	assert.Equal(t, "courses", directoryOf("/api/v1/courses/:name/students/:student"))
	assert.Equal(t, "students", directoryOf("/api/v1/students/:name/courses/:course"))
	assert.Equal(t, "", directoryOf("/metrics"))
}

func TestNewHonoursConfig(t *testing.T) {
	cfg := &config.Config{
		Env:     config.EnvDevelopment,
		Log:     config.LogConfig{Level: "not-a-level", Format: "console"},
		Courses: config.CoursesConfig{StrictLookup: true},
	}
	l, err := New(cfg)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))

	cfg.Log.Level = "debug"
	l, err = New(cfg)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	"github.com/noah-isme/sma-enrollment-api/internal/repository"
)

func newMetricsEngine(stats StatsFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMetricsHandler(nil, stats)
	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/stats", h.Stats)
	r.GET("/metrics", h.Prometheus)
	return r
}

func TestMetricsHandlerStats(t *testing.T) {
	store := repository.NewStore()
	ctx := context.Background()
	require.NoError(t, repository.NewStudentRepository(store).Create(ctx, models.NewStudent("Alice", 20)))
	require.NoError(t, repository.NewCourseRepository(store).Create(ctx, models.NewCourse("Go", 1, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC))))
	links := repository.NewEnrollmentRepository(store)
	require.NoError(t, links.Link(ctx, "Alice", "Go"))

	r := newMetricsEngine(links.Stats)

	w := do(t, r, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.EnrollmentStats
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &stats))
	assert.Equal(t, models.EnrollmentStats{Students: 1, Courses: 1, Enrollments: 1}, stats)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/ready", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/health", nil).Code)
}

func TestMetricsHandlerStoreUnavailable(t *testing.T) {
	r := newMetricsEngine(func(context.Context) (models.EnrollmentStats, error) {
		return models.EnrollmentStats{}, errors.New("closed")
	})

	assert.Equal(t, http.StatusServiceUnavailable, do(t, r, http.MethodGet, "/ready", nil).Code)
	w := do(t, r, http.MethodGet, "/stats", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", decode(t, w).Error.Code)
}

func TestMetricsHandlerWithoutServices(t *testing.T) {
	r := newMetricsEngine(nil)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/ready", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/stats", nil).Code)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

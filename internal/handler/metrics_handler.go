package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	"github.com/noah-isme/sma-enrollment-api/internal/service"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
	"github.com/noah-isme/sma-enrollment-api/pkg/response"
)

// StatsFunc reports current directory sizes.
type StatsFunc func(ctx context.Context) (models.EnrollmentStats, error)

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	stats   StatsFunc
}

// NewMetricsHandler constructs a metrics handler. stats may be nil.
func NewMetricsHandler(metrics *service.MetricsService, stats StatsFunc) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, stats: stats}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health answers liveness probes.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready answers readiness probes once the directory store can be read.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.stats != nil {
		if _, err := h.stats(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Stats godoc
// @Summary Directory sizes
// @Tags System
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats [get]
func (h *MetricsHandler) Stats(c *gin.Context) {
	if h.stats == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "stats unavailable"))
		return
	}
	stats, err := h.stats(c.Request.Context())
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read directory stats"))
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

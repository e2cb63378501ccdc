package service

import (
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP surface and the directories.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	operations      *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"directory", "method", "route", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"directory", "method", "route", "status"})

	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_operations_total",
		Help: "Directory operations by outcome",
	}, []string{"directory", "operation", "outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, operations, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		operations:      operations,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// TrackDirectory publishes directory sizes as gauges read on every scrape.
func (m *MetricsService) TrackDirectory(stats func() models.EnrollmentStats) {
	if m == nil || stats == nil {
		return
	}
	gauge := func(name, help string, pick func(models.EnrollmentStats) int) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, func() float64 {
			return float64(pick(stats()))
		})
	}
	m.registry.MustRegister(
		gauge("students_registered", "Students currently registered", func(s models.EnrollmentStats) int { return s.Students }),
		gauge("courses_registered", "Courses currently registered", func(s models.EnrollmentStats) int { return s.Courses }),
		gauge("enrollments_active", "Active student/course enrollments", func(s models.EnrollmentStats) int { return s.Enrollments }),
	)
}

// ObserveHTTPRequest records request metrics for a route template of the given directory.
func (m *MetricsService) ObserveHTTPRequest(directory, method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(directory, method, route, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(directory, method, route, labelStatus).Inc()
}

// ObserveOperation counts a directory operation; the outcome is "ok" or the lower-cased error code.
func (m *MetricsService) ObserveOperation(directory, operation string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = strings.ToLower(appErrors.FromError(err).Code)
	}
	m.operations.WithLabelValues(directory, operation, outcome).Inc()
}

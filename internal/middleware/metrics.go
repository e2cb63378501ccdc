package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-enrollment-api/internal/service"
)

const unmatchedRoute = "unmatched"

// Metrics records every request against the directory it addressed and its
// route template. Paths that match no route share one label so unknown names
// cannot grow the series count.
func Metrics(metricsSvc *service.MetricsService, apiPrefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(directoryOf(route, apiPrefix), c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// directoryOf maps a route template to "students", "courses" or "system".
func directoryOf(route, apiPrefix string) string {
	rest := strings.TrimPrefix(route, strings.TrimRight(apiPrefix, "/"))
	if rest == route && apiPrefix != "" && apiPrefix != "/" {
		return "system"
	}
	segment := strings.SplitN(strings.TrimPrefix(rest, "/"), "/", 2)[0]
	switch segment {
	case "students", "courses":
		return segment
	}
	return "system"
}

package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/edulearn-backend/internal/observability"
)

// Long-lived streams and probes would swamp the latency histogram.
var unmeteredRoutes = map[string]bool{
	"/api/sse/stream": true,
	"/healthcheck":    true,
	"/readycheck":     true,
	"/metrics":        true,
}

// Metrics instruments HTTP request counts/latency when metrics are enabled.
// Unmatched paths share one "unmatched" route label.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if unmeteredRoutes[route] {
			c.Next()
			return
		}
		start := time.Now()
		m.ApiInflightInc()
		defer m.ApiInflightDec()

		c.Next()

		if route == "" {
			route = "unmatched"
		}
		m.ObserveAPI(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pem-portal-api/internal/service"
)

// unmatchedRoute labels requests that hit no route so arbitrary URLs do not
// create new label values.
const unmatchedRoute = "unmatched"

// Metrics returns middleware that captures request metrics using the provided service.
// Requests are labelled by route template, never by raw path, so session IDs
// stay out of the label set.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

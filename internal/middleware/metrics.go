package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// IntakeEntriesTotal counts note/todo entries produced by the intake pipeline.
	IntakeEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_entries_total",
			Help: "Total number of entries produced by intake classification",
		},
		[]string{"kind"}, // note | todo
	)

	// ClassifierFallbacksTotal counts external classifier calls that degraded to rules.
	ClassifierFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classifier_fallbacks_total",
			Help: "Total number of external classifier calls that fell back to rules",
		},
		[]string{"operation"}, // extract_todos | categorize | split | suggest_labels
	)
)

// Metrics returns a middleware recording request counts and latencies.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

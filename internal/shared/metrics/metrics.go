package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upload_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upload_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	filesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "upload_files_created_total",
		Help: "File records persisted in the catalog",
	})

	presignIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "upload_presign_issued_total",
		Help: "Presigned upload URLs issued",
	})

	presignFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "upload_presign_failed_total",
		Help: "Presigned upload URL requests that failed",
	})

	objectFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upload_object_fetch_total",
			Help: "Object retrievals by outcome",
		},
		[]string{"outcome"},
	)
)

// IncFilesCreated increments the created-records counter.
func IncFilesCreated() {
	filesCreatedTotal.Inc()
}

// IncPresignIssued increments the issued counter.
func IncPresignIssued() {
	presignIssuedTotal.Inc()
}

// IncPresignFailed increments the failed counter.
func IncPresignFailed() {
	presignFailedTotal.Inc()
}

// IncObjectFetch records one retrieval outcome (ok, not_found, error).
func IncObjectFetch(outcome string) {
	objectFetchTotal.WithLabelValues(outcome).Inc()
}

// Middleware records request counts and durations keyed by the matched route
// template, so path parameters do not blow up label cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

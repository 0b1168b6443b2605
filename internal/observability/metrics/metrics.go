package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics holds the request-level prometheus instruments.
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP instruments on the default registry.
func NewHTTPMetrics() *HTTPMetrics {
	m := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "legara_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "legara_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	prometheus.MustRegister(m.requestsTotal, m.requestDuration)
	return m
}

// AllocationMetrics counts case-number allocation outcomes.
type AllocationMetrics struct {
	Allocated  prometheus.Counter
	Retried    prometheus.Counter
	Fallbacks  prometheus.Counter
	SeededKeys prometheus.Counter
}

func NewAllocationMetrics() *AllocationMetrics {
	m := &AllocationMetrics{
		Allocated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "legara_case_numbers_allocated_total",
			Help: "Sequential case numbers issued.",
		}),
		Retried: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "legara_case_number_retries_total",
			Help: "Allocation attempts repeated after a uniqueness collision.",
		}),
		Fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "legara_case_number_fallbacks_total",
			Help: "Timestamp-based fallback identifiers issued.",
		}),
		SeededKeys: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "legara_case_counters_seeded_total",
			Help: "Counter partitions seeded from existing case data.",
		}),
	}

	prometheus.MustRegister(m.Allocated, m.Retried, m.Fallbacks, m.SeededKeys)
	return m
}

// GinMiddleware records per-request metrics.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method

		m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	XPGranted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candypang_xp_granted_total",
			Help: "Total XP credited to students, by source",
		},
		[]string{"source"},
	)

	LevelUps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "candypang_level_ups_total",
			Help: "Total level-up events emitted",
		},
	)

	CouponRedemptions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "candypang_coupon_redemptions_total",
			Help: "Total coupons redeemed",
		},
	)

	PendingRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "candypang_pending_requests",
			Help: "Unresolved quest/praise/message items across all students",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(XPGranted)
	prometheus.MustRegister(LevelUps)
	prometheus.MustRegister(CouponRedemptions)
	prometheus.MustRegister(PendingRequests)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

package metrics

import (
	"net/http" // HTTP handler type
	"strconv"  // Status code labels
	"time"     // Timestamps and durations

	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus"          // Prometheus collectors
	"github.com/prometheus/client_golang/prometheus/promhttp" // Prometheus HTTP exposition
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "storefront",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	purchases = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "shop",
			Name:      "purchases_total",
			Help:      "Purchase attempts by outcome.",
		},
		[]string{"result"},
	)

	purchaseDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: "shop",
			Name:      "purchase_duration_seconds",
			Help:      "Duration of purchase transactions.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
	)

	salesAmount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "shop",
			Name:      "sales_amount_total",
			Help:      "Sum of prices of committed purchases.",
		},
	)

	walletAdjustments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "wallet",
			Name:      "adjustments_total",
			Help:      "Administrator wallet adjustments by direction and outcome.",
		},
		[]string{"direction", "result"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		purchases,
		purchaseDuration,
		salesAmount,
		walletAdjustments,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency per matched gin route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordPurchase records the outcome of a purchase attempt.
func RecordPurchase(result string, price float64, duration time.Duration) {
	purchases.WithLabelValues(result).Inc()
	purchaseDuration.Observe(duration.Seconds())
	if result == ResultSuccess {
		salesAmount.Add(price)
	}
}

// RecordWalletAdjustment records an administrator wallet adjustment.
func RecordWalletAdjustment(direction, result string) {
	walletAdjustments.WithLabelValues(direction, result).Inc()
}

// Outcome labels.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
)

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "ventas"

var (
	// Registry holds the application Prometheus collectors
	Registry = prometheus.NewRegistry()

	salesCommitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sales",
			Name:      "committed_total",
			Help:      "Total number of confirmed sales.",
		},
		[]string{"event_id"},
	)

	salesRevenue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sales",
			Name:      "revenue_total",
			Help:      "Sum of confirmed sale totals.",
		},
		[]string{"event_id"},
	)

	commitFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sales",
			Name:      "commit_failures_total",
			Help:      "Total number of rejected or failed sale commits.",
		},
		[]string{"reason"},
	)

	commitDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sales",
			Name:      "commit_duration_seconds",
			Help:      "Duration of the sale commit transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
	)

	ticketsPrinted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "printer",
			Name:      "tickets_total",
			Help:      "Total number of ticket print attempts by outcome.",
		},
		[]string{"outcome"},
	)

	printJobs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "printer",
			Name:      "jobs_total",
			Help:      "Total number of print jobs by final status.",
		},
		[]string{"status", "reprint"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)
)

func init() {
	Registry.MustRegister(
		salesCommitted,
		salesRevenue,
		commitFailures,
		commitDuration,
		ticketsPrinted,
		printJobs,
		httpRequests,
		httpDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered metrics
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordSaleCommitted counts a confirmed sale and its revenue
func RecordSaleCommitted(eventID int64, total decimal.Decimal, duration time.Duration) {
	id := strconv.FormatInt(eventID, 10)
	salesCommitted.WithLabelValues(id).Inc()
	salesRevenue.WithLabelValues(id).Add(total.InexactFloat64())
	commitDuration.Observe(duration.Seconds())
}

// RecordCommitFailure counts a commit that did not persist
func RecordCommitFailure(reason string) {
	commitFailures.WithLabelValues(reason).Inc()
}

// RecordTicket counts one ticket print attempt
func RecordTicket(ok bool) {
	outcome := "printed"
	if !ok {
		outcome = "failed"
	}
	ticketsPrinted.WithLabelValues(outcome).Inc()
}

// RecordPrintJobClosed counts a job reaching a final status
func RecordPrintJobClosed(status string, reprint bool) {
	printJobs.WithLabelValues(status, strconv.FormatBool(reprint)).Inc()
}

// GinMiddleware records request count and latency per route
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

package monitoring

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method", "status_code"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status_code"},
	)
)

var (
	CartOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Total number of cart mutations by operation",
		},
		[]string{"operation"},
	)

	CartLinesPerCheckout = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cart_lines_per_checkout",
			Help:    "Number of cart lines carried into a completed checkout",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		},
	)

	CheckoutAttemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_attempts_total",
			Help: "Total number of checkout attempts",
		},
	)

	CheckoutSuccessTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_success_total",
			Help: "Total number of checkout attempts that reached redirect",
		},
	)

	CheckoutFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_failure_total",
			Help: "Total number of failed checkout attempts",
		},
		[]string{"reason"},
	)

	CheckoutSessionsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_sessions_created_total",
			Help: "Total number of sessions created on the commerce platform",
		},
	)

	CheckoutSessionsAppendedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_sessions_appended_total",
			Help: "Total number of line appends to existing platform sessions",
		},
	)

	CampaignCountdownSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "campaign_countdown_seconds",
			Help: "Seconds remaining until the active campaign cutoff",
		},
	)

	AnalyticsEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_events_total",
			Help: "Total number of analytics events emitted",
		},
		[]string{"event"},
	)

	AnalyticsDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_dropped_total",
			Help: "Total number of analytics events dropped",
		},
		[]string{"reason"},
	)
)

var (
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"query_type", "table"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

var (
	RedisCommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_command_duration_seconds",
			Help:    "Duration of Redis commands in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"command"},
	)

	RedisLockAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_lock_attempts_total",
			Help: "Total number of lock attempts",
		},
		[]string{"lock_type"},
	)

	RedisLockSuccessTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_lock_success_total",
			Help: "Total number of successful lock acquisitions",
		},
		[]string{"lock_type"},
	)

	RedisLockFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_lock_failure_total",
			Help: "Total number of failed lock acquisitions",
		},
		[]string{"lock_type", "reason"},
	)
)

func TimeDBQuery(queryType, table string) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start).Seconds()
		DBQueryDuration.WithLabelValues(queryType, table).Observe(duration)
	}
}

func RecordCartOperation(operation string) {
	CartOperationsTotal.WithLabelValues(operation).Inc()
}

func RecordCheckoutAttempt() {
	CheckoutAttemptsTotal.Inc()
}

func RecordCheckoutSuccess(appended bool, lineCount int) {
	CheckoutSuccessTotal.Inc()
	CartLinesPerCheckout.Observe(float64(lineCount))
	if appended {
		CheckoutSessionsAppendedTotal.Inc()
	} else {
		CheckoutSessionsCreatedTotal.Inc()
	}
}

func RecordCheckoutFailure(reason string) {
	CheckoutFailureTotal.WithLabelValues(reason).Inc()
}

func RecordAnalyticsEvent(event string) {
	AnalyticsEventsTotal.WithLabelValues(event).Inc()
}

func RecordAnalyticsDropped(reason string) {
	AnalyticsDroppedTotal.WithLabelValues(reason).Inc()
}

func RecordLockAttempt(lockKey string) {
	RedisLockAttemptsTotal.WithLabelValues(getLockType(lockKey)).Inc()
}

func RecordLockSuccess(lockKey string) {
	RedisLockSuccessTotal.WithLabelValues(getLockType(lockKey)).Inc()
}

func RecordLockFailure(lockKey, reason string) {
	RedisLockFailureTotal.WithLabelValues(getLockType(lockKey), reason).Inc()
}

func getLockType(lockKey string) string {
	switch {
	case strings.HasPrefix(lockKey, "lock:checkout:"):
		return "checkout"
	case strings.HasPrefix(lockKey, "lock:campaign:"):
		return "campaign"
	default:
		return "other"
	}
}

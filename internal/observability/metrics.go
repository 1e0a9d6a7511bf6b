// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Validation metrics
	PurchasesValidated prometheus.Counter
	PurchasesAllowed   prometheus.Counter
	PurchasesDenied    *prometheus.CounterVec
	ValidationLatency  prometheus.Histogram

	// Launch metrics
	LaunchesScheduled *prometheus.CounterVec
	LaunchTransitions *prometheus.CounterVec
	ActiveLaunches    prometheus.Gauge

	// Risk metrics
	TransactionsRecorded  prometheus.Counter
	BotDetectionsRun      prometheus.Counter
	BotsDetected          prometheus.Counter
	BotsBlocked           prometheus.Counter
	QualityScoresComputed prometheus.Counter
	RiskScansRun          prometheus.Counter
	RisksFound            *prometheus.CounterVec

	// Feed metrics
	FeedEventsReceived prometheus.Counter
	FeedEventsDropped  prometheus.Counter

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Health metrics
	LastValidation prometheus.Gauge
	UptimeSeconds  prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "launch_guard"
	}

	return &Metrics{
		// Validation metrics
		PurchasesValidated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "validation",
			Name:      "purchases_validated_total",
			Help:      "Total number of purchase attempts validated",
		}),
		PurchasesAllowed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "validation",
			Name:      "purchases_allowed_total",
			Help:      "Total number of purchase attempts allowed",
		}),
		PurchasesDenied: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "validation",
			Name:      "purchases_denied_total",
			Help:      "Total number of purchase attempts denied by reason",
		}, []string{"reason"}),
		ValidationLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "validation",
			Name:      "latency_seconds",
			Help:      "Purchase validation latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		// Launch metrics
		LaunchesScheduled: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "launch",
			Name:      "scheduled_total",
			Help:      "Total number of launches scheduled by protection level",
		}, []string{"level"}),
		LaunchTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "launch",
			Name:      "transitions_total",
			Help:      "Total number of launch status transitions",
		}, []string{"to"}),
		ActiveLaunches: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "launch",
			Name:      "active",
			Help:      "Number of launches currently in active status",
		}),

		// Risk metrics
		TransactionsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "risk",
			Name:      "transactions_recorded_total",
			Help:      "Total number of transactions recorded in wallet history",
		}),
		BotDetectionsRun: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "risk",
			Name:      "bot_detections_run_total",
			Help:      "Total number of bot detection passes run",
		}),
		BotsDetected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "risk",
			Name:      "bots_detected_total",
			Help:      "Total number of wallets classified as bots",
		}),
		BotsBlocked: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "risk",
			Name:      "bots_blocked_total",
			Help:      "Total number of wallets recommended for blocking",
		}),
		QualityScoresComputed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "risk",
			Name:      "quality_scores_computed_total",
			Help:      "Total number of token quality scores computed",
		}),
		RiskScansRun: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "risk",
			Name:      "scans_run_total",
			Help:      "Total number of token risk scans run",
		}),
		RisksFound: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "risk",
			Name:      "risks_found_total",
			Help:      "Total number of risks found by severity",
		}, []string{"severity"}),

		// Feed metrics
		FeedEventsReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "events_received_total",
			Help:      "Total number of purchase events received from the feed",
		}),
		FeedEventsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "events_dropped_total",
			Help:      "Total number of malformed feed events dropped",
		}),

		// Database metrics
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		// Health metrics
		LastValidation: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_validation_timestamp",
			Help:      "Unix timestamp of last purchase validation",
		}),
		UptimeSeconds: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "uptime_seconds_total",
			Help:      "Total uptime in seconds",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordValidation records the outcome of one purchase validation.
// An empty reason means the purchase was allowed.
func RecordValidation(reason string, seconds float64) {
	DefaultMetrics.PurchasesValidated.Inc()
	DefaultMetrics.ValidationLatency.Observe(seconds)
	if reason == "" {
		DefaultMetrics.PurchasesAllowed.Inc()
	} else {
		DefaultMetrics.PurchasesDenied.WithLabelValues(reason).Inc()
	}
}

// RecordLaunchScheduled increments the scheduled launches counter.
func RecordLaunchScheduled(level string) {
	DefaultMetrics.LaunchesScheduled.WithLabelValues(level).Inc()
}

// RecordLaunchTransition records a launch status transition.
func RecordLaunchTransition(to string) {
	DefaultMetrics.LaunchTransitions.WithLabelValues(to).Inc()
}

// RecordTransactionRecorded increments the recorded transactions counter.
func RecordTransactionRecorded() {
	DefaultMetrics.TransactionsRecorded.Inc()
}

// RecordBotDetection records one bot detection pass.
func RecordBotDetection(isBot, shouldBlock bool) {
	DefaultMetrics.BotDetectionsRun.Inc()
	if isBot {
		DefaultMetrics.BotsDetected.Inc()
	}
	if shouldBlock {
		DefaultMetrics.BotsBlocked.Inc()
	}
}

// RecordRiskScan records one risk scan and its findings by severity.
func RecordRiskScan(severities []string) {
	DefaultMetrics.RiskScansRun.Inc()
	for _, s := range severities {
		DefaultMetrics.RisksFound.WithLabelValues(s).Inc()
	}
}

// RecordQualityScore increments the quality scores computed counter.
func RecordQualityScore() {
	DefaultMetrics.QualityScoresComputed.Inc()
}

// RecordFeedEvent increments the feed events received counter.
func RecordFeedEvent() {
	DefaultMetrics.FeedEventsReceived.Inc()
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

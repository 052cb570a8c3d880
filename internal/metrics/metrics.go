// Package metrics exposes Prometheus collectors for HTTP traffic and roster transactions.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/festy23/fantasy_roster/internal/apierror"
	"github.com/festy23/fantasy_roster/internal/database/database"
	"github.com/festy23/fantasy_roster/internal/rules"
)

// OutcomeCommitted labels a successful transaction.
const OutcomeCommitted = "committed"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	transactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_transactions_total",
			Help: "Roster transactions by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	violationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_violations_total",
			Help: "Limit violations reported by the violation checker",
		},
		[]string{"kind"},
	)

	panicsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_panics_total",
			Help: "Handler panics recovered by the recovery middleware",
		},
		[]string{"route"},
	)

	lockWaitSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "roster_lock_wait_seconds",
			Help:    "Time spent waiting for per-manager roster locks",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordPanic counts a recovered handler panic.
func RecordPanic(route string) {
	panicsTotal.WithLabelValues(route).Inc()
}

// RecordTransaction counts a transaction attempt. A nil error counts as committed,
// otherwise the outcome is the rejection code.
func RecordTransaction(kind string, err error) {
	outcome := OutcomeCommitted
	if err != nil {
		_, outcome = apierror.Classify(err)
	}
	transactionsTotal.WithLabelValues(kind, outcome).Inc()

	var rejection *rules.RejectionError
	if errors.As(err, &rejection) {
		RecordViolations(rejection.Violations)
	}
}

// RecordViolations counts each violation by kind.
func RecordViolations(violations []rules.Violation) {
	for _, v := range violations {
		violationsTotal.WithLabelValues(string(v.Kind)).Inc()
	}
}

// ObserveLockWait records how long a request waited for its roster lock.
func ObserveLockWait(d time.Duration) {
	lockWaitSeconds.Observe(d.Seconds())
}

// RegisterDBStats exports connection pool gauges for db. Registering twice is a no-op.
func RegisterDBStats(db *gorm.DB) error {
	collectors := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Open database connections",
		}, func() float64 {
			stats, err := database.GetStats(db)
			if err != nil {
				return 0
			}
			return float64(stats.OpenConnections)
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Database connections currently in use",
		}, func() float64 {
			stats, err := database.GetStats(db)
			if err != nil {
				return 0
			}
			return float64(stats.InUse)
		}),
	}

	for _, c := range collectors {
		if err := prometheus.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

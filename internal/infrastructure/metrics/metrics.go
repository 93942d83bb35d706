// Package metrics exposes Prometheus counters for planning and commits.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aidlink"

var (
	Registry = prometheus.NewRegistry()

	plansCalculated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "distribution",
			Name:      "plans_calculated_total",
			Help:      "Count of distribution plans calculated, by item type.",
		},
		[]string{"item_type"},
	)
	planLines = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "distribution",
			Name:      "plan_lines",
			Help:      "Number of beneficiaries in a calculated plan.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
	unitsDistributed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "distribution",
			Name:      "units_distributed_total",
			Help:      "Units committed to beneficiaries, by item type.",
		},
		[]string{"item_type"},
	)
	executions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "distribution",
			Name:      "executions_total",
			Help:      "Plan executions by result (committed, over_allocated, failed).",
		},
		[]string{"result"},
	)
	httpRequests = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method, route and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	donationsExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "donation",
			Name:      "expired_total",
			Help:      "Donations moved to expired by the expiry job.",
		},
	)
)

var registerMetrics sync.Once

// Register adds all collectors to Registry. Safe to call more than once.
func Register() {
	registerMetrics.Do(func() {
		Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			plansCalculated,
			planLines,
			unitsDistributed,
			executions,
			httpRequests,
			donationsExpired,
		)
	})
}

// Handler serves Registry in the Prometheus text format.
func Handler() http.Handler {
	Register()
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// NewServer returns an http.Server that only serves Handler on path. The
// worker process uses it since it has no gin router.
func NewServer(addr, path string) *http.Server {
	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

const (
	ResultCommitted     = "committed"
	ResultOverAllocated = "over_allocated"
	ResultFailed        = "failed"
)

func RecordPlanCalculated(itemType string, lines int) {
	plansCalculated.WithLabelValues(itemType).Inc()
	planLines.Observe(float64(lines))
}

func RecordExecution(result string) {
	executions.WithLabelValues(result).Inc()
}

func RecordUnitsDistributed(itemType string, units int) {
	unitsDistributed.WithLabelValues(itemType).Add(float64(units))
}

func RecordDonationsExpired(n int) {
	donationsExpired.Add(float64(n))
}

func RecordHTTPRequest(method, route, status string, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, status).Observe(elapsed.Seconds())
}

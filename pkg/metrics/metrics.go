package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "loyaltyjo"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	stampsAdded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "stamps_added_total",
			Help:      "Total number of stamps appended to memberships.",
		},
	)

	rewardsRedeemed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "rewards_redeemed_total",
			Help:      "Total number of rewards redeemed.",
		},
	)

	memberships = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "membership_registrations_total",
			Help:      "Membership registrations by outcome (created or existing).",
		},
		[]string{"outcome"},
	)

	trialSuspensions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "trial_suspensions_total",
			Help:      "Businesses suspended after their trial ended.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		stampsAdded,
		rewardsRedeemed,
		memberships,
		trialSuspensions,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one handled request. path should be the route template, not the raw URL.
func ObserveHTTP(method, path string, status int, duration time.Duration) {
	if path == "" {
		path = "unmatched"
	}
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordStampAdded() {
	stampsAdded.Inc()
}

func RecordRewardRedeemed() {
	rewardsRedeemed.Inc()
}

// RecordMembershipRegistration counts a registration; created is false when an existing membership was returned.
func RecordMembershipRegistration(created bool) {
	outcome := "existing"
	if created {
		outcome = "created"
	}
	memberships.WithLabelValues(outcome).Inc()
}

func RecordTrialSuspensions(n int64) {
	if n > 0 {
		trialSuspensions.Add(float64(n))
	}
}

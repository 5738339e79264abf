package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rinkline"

// Registry is the Prometheus registry for all application metrics.
var Registry = prometheus.NewRegistry()

// RiskEvaluationsTotal counts full schedule evaluations.
var RiskEvaluationsTotal = promauto.With(Registry).NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "risk_evaluations_total",
		Help:      "Total number of schedule risk evaluations run",
	},
)

// RisksDetected counts risks surfaced by evaluations, by risk type.
var RisksDetected = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "risks_detected_total",
		Help:      "Total number of schedule risks detected",
	},
	[]string{"risk_type"},
)

// TimeChecksTotal counts inline time validations by outcome.
var TimeChecksTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "time_checks_total",
		Help:      "Total number of inline game time checks",
	},
	[]string{"result"}, // result: valid|conflict
)

// TournamentsDiscovered counts tournaments found by discovery runs.
var TournamentsDiscovered = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tournaments_discovered_total",
		Help:      "Total number of tournament listings processed by discovery",
	},
	[]string{"source", "result"}, // result: created|updated|skipped
)

// JobFailures counts failed background job attempts, by kind and failure
// mode (error or panic).
var JobFailures = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_failures_total",
		Help:      "Total number of failed background job attempts",
	},
	[]string{"kind", "mode"},
)

// DigestsSent counts weekly risk digest emails delivered.
var DigestsSent = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "digests_sent_total",
		Help:      "Total number of risk digest emails sent",
	},
	[]string{"result"}, // result: sent|skipped|error
)

// Package metrics defines and registers all custom Prometheus metrics for the
// placement portal API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry through
// promauto at package initialisation; the /metrics endpoint exposes them
// together with the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "placement"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts accounts created.
// Label:
//   - role: "student", "recruiter" or "tpo"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Labels:
//   - role: the role partition the caller asked for
//   - result: "ok" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// RateLimitRejectionsTotal counts requests refused by the auth rate limiter.
// Label:
//   - route: the registered route path (e.g. "/login")
var RateLimitRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejections_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
	[]string{"route"},
)

// ── Student metrics ───────────────────────────────────────────────────────────

// ResumeUploadsTotal counts resume uploads forwarded to the asset host.
// Label:
//   - result: "ok" or "failed"
var ResumeUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resume_uploads_total",
		Help:      "Total number of resume uploads, by result.",
	},
	[]string{"result"},
)

// EligibleOpportunities observes how many postings a student is shown per request.
var EligibleOpportunities = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "eligible_opportunities",
		Help:      "Number of opportunities passing the eligibility filter per request.",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
	},
)

// ── Application metrics ───────────────────────────────────────────────────────

// ApplicationsCreatedTotal counts applications stored in the ledger.
var ApplicationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_created_total",
		Help:      "Total number of applications submitted.",
	},
)

// ApplicationConflictsTotal counts rejected duplicate applications, whether
// caught by the pre-check or by the unique index.
var ApplicationConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "application_conflicts_total",
		Help:      "Total number of duplicate applications rejected.",
	},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// EmailsSentTotal counts outbound email delivery attempts.
// Label:
//   - result: "ok", "failed" or "dropped" (queue full)
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of outbound emails, by delivery result.",
	},
	[]string{"result"},
)

// EmailQueueDepth tracks the current number of emails waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EmailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "email_queue_depth",
		Help:      "Current number of emails pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EmailDeliveryDuration measures how long a single SMTP delivery takes.
// Label:
//   - result: "ok" or "failed"
var EmailDeliveryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "email_delivery_duration_seconds",
		Help:      "Duration of email delivery from dequeue to SMTP acknowledgement.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// Package metrics defines and registers the custom Prometheus metrics of the
// job board API. HTTP request metrics come from the echoprometheus middleware;
// this package only holds domain counters.
//
// All metrics are registered with the default registry through promauto when
// the package is imported.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
// Label:
//   - role: "jobseeker", "employer" or "admin"
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered users, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// PasswordResetsTotal counts password reset steps.
// Label:
//   - stage: "requested" or "completed"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password reset requests and completions.",
	},
	[]string{"stage"},
)

// ── Job metrics ───────────────────────────────────────────────────────────────

// JobsCreatedTotal counts newly created job postings.
// Label:
//   - job_type: e.g. "Full Time", "Internship"
var JobsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of job postings created, by job type.",
	},
	[]string{"job_type"},
)

// JobMutationsTotal counts owner-initiated changes to existing postings.
// Labels:
//   - operation: "update" or "delete"
//   - result: "success", "not_owner", "not_found" or "error"
var JobMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_mutations_total",
		Help:      "Total number of job updates and deletes, by operation and result.",
	},
	[]string{"operation", "result"},
)

// JobSearchResults observes how many jobs a listing query matched.
var JobSearchResults = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "job_search_results",
		Help:      "Number of active jobs matched by a listing query.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
	},
)

// Package metrics defines and registers the custom Prometheus metrics of the
// dashboard client. It is the single source of truth for metric names, labels
// and help strings.
//
// Metrics register with the default Prometheus registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// ── Backend API metrics ───────────────────────────────────────────────────────

// APIRequestsTotal counts outbound calls to the backend API.
// Labels:
//   - method: HTTP method
//   - route: path template (e.g. "/rooms/{id}"), never the concrete path
//   - status: response status code, or "error" on transport failure
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of backend API requests, by method, route and status.",
	},
	[]string{"method", "route", "status"},
)

// APIRequestDuration measures backend API round trips.
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of backend API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// APIUnauthorizedTotal counts 401 responses that triggered a forced logout.
var APIUnauthorizedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_unauthorized_total",
		Help:      "Total number of 401 responses that cleared the persisted token.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionEventsTotal counts session transitions.
// Label:
//   - type: login, login_failed, logout, unauthorized, rehydrated, rehydrate_failed
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session transitions, by event type.",
	},
	[]string{"type"},
)

// SessionEventsDropped counts events the dispatcher could not queue.
var SessionEventsDropped = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_dropped_total",
		Help:      "Total number of session events dropped because the dispatch queue was full.",
	},
)

// Package metrics defines and registers all custom Prometheus metrics for the
// ReserveAqui web gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reserveaqui"

// ── Upstream API metrics ─────────────────────────────────────────────────────

// UpstreamRequestsTotal counts requests issued to the upstream API.
// Labels:
//   - method: HTTP method of the request (e.g. "GET")
//   - status: numeric HTTP status of the response, or "error" when the
//     transport failed before a status was received
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests sent to the upstream API.",
	},
	[]string{"method", "status"},
)

// UpstreamRequestDuration measures upstream round-trip time per method.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream API requests from send to decode.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// TokenRefreshTotal counts transparent access-token refresh attempts.
// Label:
//   - result: "success" or "failure"
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of access-token refresh attempts, by result.",
	},
	[]string{"result"},
)

// ── Session metrics ──────────────────────────────────────────────────────────

// LoginsTotal counts login attempts handled by the session manager.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// GuardDenialsTotal counts navigation attempts rejected by the route guard.
// Label:
//   - reason: "unauthenticated" (no session → login redirect) or
//     "forbidden" (role intersection empty → access denied)
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of requests rejected by the route guard, by reason.",
	},
	[]string{"reason"},
)

// Package metrics defines the Prometheus collectors for the game and its
// read-only HTTP API. Everything registers with the default registry on
// import; /metrics exposes it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "guessgame"

// RoundsTotal counts resolved rounds.
// Labels:
//   - mode: "solo" or "challenge"
//   - result: "won" or "lost"
var RoundsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rounds_total",
		Help:      "Total number of resolved guessing rounds.",
	},
	[]string{"mode", "result"},
)

// ChallengesTotal counts decided challenges.
// Label:
//   - result: "decided" or "tie"
var ChallengesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "challenges_total",
		Help:      "Total number of challenges played to completion.",
	},
	[]string{"result"},
)

// ChallengeLogErrorsTotal counts challenge results that could not be logged.
var ChallengeLogErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "challenge_log_errors_total",
		Help:      "Total number of challenge results whose log write failed.",
	},
)

// HTTPRequestsTotal counts API requests.
// Labels:
//   - route: the chi route pattern (e.g. "/users/{name}")
//   - code: HTTP status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served, by route and status code.",
	},
	[]string{"route", "code"},
)

// HTTPRequestDuration measures handler latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route"},
)

// Result maps a won flag to the "result" label value.
func Result(won bool) string {
	if won {
		return "won"
	}
	return "lost"
}

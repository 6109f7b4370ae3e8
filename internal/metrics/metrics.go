// Package metrics holds the prometheus collectors for the bot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Termination reasons recorded on farebot_sessions_terminated_total.
const (
	ReasonCompleted       = "completed"
	ReasonCanceled        = "canceled"
	ReasonRouteNotFound   = "route_not_found"
	ReasonUpstreamFailure = "upstream_failure"
	ReasonReplaced        = "replaced"
)

var (
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "farebot_sessions_active",
		Help: "Number of trip interviews currently in progress.",
	})

	SessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "farebot_sessions_started_total",
		Help: "Trip interviews started via the begin command.",
	})

	SessionsTerminated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "farebot_sessions_terminated_total",
		Help: "Trip interviews ended, by reason.",
	}, []string{"reason"})

	FareSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "farebot_fare_searches_total",
		Help: "Fare-search calls, by outcome (ok, empty, error).",
	}, []string{"status"})

	UpstreamSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "farebot_upstream_request_seconds",
		Help:    "Latency of upstream calls, by call (resolve, search).",
		Buckets: prometheus.DefBuckets,
	}, []string{"call"})
)

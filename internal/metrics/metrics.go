// Package metrics exposes Prometheus collectors for the discovery and
// engagement paths plus the /metrics HTTP handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SearchesTotal counts companion searches, labeled by strategy:
	// "combined", "locations", "interests", "all", "location_companions".
	SearchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geostud_searches_total",
		Help: "Total number of companion searches",
	}, []string{"strategy"})

	// LikesTotal counts accepted like operations, labeled by outcome:
	// "liked", "matched", "duplicate".
	LikesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geostud_likes_total",
		Help: "Total number of like operations",
	}, []string{"outcome"})

	// DislikesTotal counts accepted dislike operations.
	DislikesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geostud_dislikes_total",
		Help: "Total number of dislike operations",
	})

	// MatchesTotal counts newly created matches.
	MatchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geostud_matches_total",
		Help: "Total number of matches created",
	})

	// NotificationFailures counts notification dispatches that failed after
	// the engagement write committed.
	NotificationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geostud_notification_failures_total",
		Help: "Total number of failed notification dispatches",
	})

	// WSConnections tracks the current number of connected push clients.
	WSConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "geostud_ws_connections",
		Help: "Current number of active WebSocket push connections",
	})
)

func init() {
	prometheus.MustRegister(
		SearchesTotal,
		LikesTotal,
		DislikesTotal,
		MatchesTotal,
		NotificationFailures,
		WSConnections,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

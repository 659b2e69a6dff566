// Package metrics holds the daemon's Prometheus collectors. They register
// with the default registry and are served on GET /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeLoaded    = "loaded"
	OutcomeFailed    = "failed"
	OutcomeConnected = "connected"
	OutcomeCancelled = "cancelled"
)

var (
	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "assetroom_sessions_active",
			Help: "Live dashboard sessions held by the registry",
		},
	)

	AssetLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetroom_asset_loads_total",
			Help: "Session asset loads by outcome",
		},
		[]string{"outcome"},
	)

	AssetLoadSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assetroom_asset_load_seconds",
			Help:    "Time to fetch and parse the asset collection",
			Buckets: prometheus.DefBuckets,
		},
	)

	Connects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetroom_wallet_connects_total",
			Help: "Resolved wallet connects by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(SessionsActive, AssetLoads, AssetLoadSeconds, Connects)
}

// Handler serves the default gatherer in the text exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

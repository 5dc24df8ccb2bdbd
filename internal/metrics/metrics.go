// Package metrics defines the Prometheus collectors shared across the
// gateway. All collectors are registered at init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Upstream provider metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of outbound calls to third-party providers",
		},
		[]string{"provider", "endpoint", "outcome"},
	)

	// World-cup endpoint degradations. The endpoint never errors, so the
	// swallowed primary-lookup failures surface here instead.
	WorldCupFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worldcup_fallbacks_total",
			Help: "Degradations of the t20-world-cup-matches endpoint",
		},
		[]string{"stage"},
	)

	// Payment link creations
	PaymentLinksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_links_total",
			Help: "Payment link creation attempts",
		},
		[]string{"outcome"},
	)
)

// Upstream outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeUpstream = "upstream_error"
	OutcomeNetwork  = "network_error"
)

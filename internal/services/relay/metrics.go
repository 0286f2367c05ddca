package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "greenthumb_relay_requests_total",
		Help: "Relay responses by HTTP status code, or canceled when the client went away.",
	}, []string{"code"})

	upstreamSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "greenthumb_relay_upstream_seconds",
		Help:    "Latency of calls to the Room Alert endpoint.",
		Buckets: prometheus.DefBuckets,
	})

	// 0 closed, 1 half-open, 2 open
	breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "greenthumb_relay_breaker_state",
		Help: "Circuit breaker state per upstream.",
	}, []string{"upstream"})
)

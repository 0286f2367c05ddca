package garden

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	boardUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "greenthumb_board_updates_total",
		Help: "Readings offered to the board, by origin (poll|mqtt) and result (accepted|stale|failed).",
	}, []string{"origin", "result"})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "greenthumb_monitor_sessions",
		Help: "Polling sessions currently running, one per garden with a sensor.",
	})

	apiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "greenthumb_api_request_seconds",
		Help:    "Garden API latency by route pattern and status code.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "code"})
)

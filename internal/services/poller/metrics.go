package poller

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "greenthumb",
	Subsystem: "sensor",
	Name:      "fetch_total",
	Help:      "Sensor fetch attempts by source and outcome.",
}, []string{"source", "outcome"})

package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	decisionAllowed  = "allowed"
	decisionRejected = "rejected"
)

// Decisions считает решения лимитера по маршрутам.
var Decisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "dispatcher",
		Subsystem: "http_rate_limiter",
		Name:      "decisions_total",
		Help:      "Rate limiter decisions per route: allowed or rejected.",
	},
	[]string{"method", "route", "decision"},
)

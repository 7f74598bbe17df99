package order_timeout

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SweepsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_timeout_sweeps_total",
			Help: "Total number of timeout sweeps",
		},
	)

	ExpiredOrdersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_timeout_expired_orders_total",
			Help: "Total number of orders auto-cancelled by timeout, by cancellation result",
		},
		[]string{"result"},
	)

	SweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_timeout_sweep_duration_seconds",
			Help:    "Duration of a single timeout sweep",
			Buckets: prometheus.DefBuckets,
		},
	)
)

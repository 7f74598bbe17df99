package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PendingQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dispatch_pending_queue_length",
			Help: "Number of order ids waiting for a driver",
		},
	)

	AssignmentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_assignments_total",
			Help: "Total number of orders assigned to drivers",
		},
	)

	AssignmentFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_assignment_failures_total",
			Help: "Total number of failed assignment attempts, the order is put back to the queue head",
		},
	)

	StaleEntriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_stale_entries_total",
			Help: "Total number of queue entries discarded because the order left CREATED",
		},
	)

	CancellationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_cancellations_total",
			Help: "Total number of cancelled orders by status before cancellation",
		},
		[]string{"previous_status"},
	)
)

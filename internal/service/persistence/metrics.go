package persistence

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SnapshotsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persistence_snapshots_total",
			Help: "Total number of snapshot attempts by result",
		},
		[]string{"result"},
	)

	SnapshotDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "persistence_snapshot_duration_seconds",
			Help:    "Duration of writing a snapshot to the database",
			Buckets: prometheus.DefBuckets,
		},
	)

	RestoredRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "persistence_restored_records",
			Help: "Number of records loaded from the last restore by kind",
		},
		[]string{"kind"},
	)
)

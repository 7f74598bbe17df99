package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_published_total",
			Help: "Total number of notifications sent to Kafka by result",
		},
		[]string{"recipient_kind", "result"},
	)

	DroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notifications_dropped_total",
			Help: "Total number of notifications dropped because the send buffer was full",
		},
	)

	PublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "notifications_publish_duration_seconds",
			Help:    "Duration of publishing one notification including retries",
			Buckets: prometheus.DefBuckets,
		},
	)
)

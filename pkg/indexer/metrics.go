package indexer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/indexsync/indexsync/internal/build"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"

	reasonIndexed       = "indexed"
	reasonPoison        = "poison"
	reasonUnknownFamily = "unknown_family"
)

var (
	indexingRequestsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: build.ProjectName,
		Name:      "indexing_requests_total",
		Help:      "The total number of bulk requests sent to the search backend, by outcome.",
	}, []string{"family", "outcome"})

	queueItemsRemovedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: build.ProjectName,
		Name:      "queue_items_removed_total",
		Help:      "The total number of items removed from the change queue.",
	}, []string{"family", "reason"})

	drainDurationHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:                       build.ProjectName,
		Name:                            "drain_duration_seconds",
		Help:                            "The duration of incremental drains of a document family.",
		Buckets:                         []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		NativeHistogramBucketFactor:     1.1,
		NativeHistogramMaxBucketNumber:  100,
		NativeHistogramMinResetDuration: time.Hour,
	}, []string{"family"})
)

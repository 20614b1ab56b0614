// Package indexer keeps the search indices consistent with the relational store. Data
// mutations enqueue storage.QueueItem values in the same transaction as their rows. The
// indexers of this package drain them: they re-read the current state of each subject,
// rewrite its documents in bulk and dequeue only what the search backend acknowledged.
package indexer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/indexsync/indexsync/pkg/storage"
)

var tracer = otel.Tracer("indexsync/pkg/indexer")

func startTrace(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "indexer."+name)
}

const (
	DefaultRegularBatchSize = 100
	DefaultLargeBatchSize   = 1000
)

// Size selects the batching policy of a bulk session.
type Size int

const (
	// SizeRegular favors latency. Writes are visible when the session stops.
	SizeRegular Size = iota
	// SizeLarge favors throughput and may relax the refresh and replication
	// settings of the indices until the session stops.
	SizeLarge
)

func (s Size) String() string {
	if s == SizeLarge {
		return "large"
	}
	return "regular"
}

// IndexingResult counts the requests sent during a bulk session.
type IndexingResult struct {
	Total     int
	Successes int
	Failures  int
}

// Add accumulates other into r.
func (r *IndexingResult) Add(other IndexingResult) {
	r.Total += other.Total
	r.Successes += other.Successes
	r.Failures += other.Failures
}

// SuccessRatio is the share of successful requests, 1 when nothing was sent.
func (r IndexingResult) SuccessRatio() float64 {
	if r.Total == 0 {
		return 1
	}
	return float64(r.Successes) / float64(r.Total)
}

// IsSuccess reports whether every request succeeded.
func (r IndexingResult) IsSuccess() bool {
	return r.Failures == 0
}

// Indexer synchronizes the documents of one or more families.
type Indexer interface {
	// DocumentFamilies returns the families handled by the indexer.
	DocumentFamilies() []string

	// IndexOnStartup runs a full pass of the families listed in uninitialized. A
	// family is marked initialized only after a pass without any failure.
	IndexOnStartup(ctx context.Context, uninitialized []string) error

	// Index drains items. Per-item failures are counted in the result and leave their
	// items in the queue. The error is reserved for failures of the whole drain.
	Index(ctx context.Context, items []storage.QueueItem) (IndexingResult, error)
}

package indexer

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/indexsync/indexsync/pkg/logger"
	"github.com/indexsync/indexsync/pkg/search"
)

type pendingRequest struct {
	req     search.BulkRequest
	origins []string
}

// BulkIndexer accumulates index and delete requests and sends them in batches. A
// request failing does not fail its batch: the failure is reported to the listener and
// counted in the IndexingResult. Nothing is retried.
//
// A BulkIndexer is not safe for concurrent use.
type BulkIndexer struct {
	idx       search.Index
	family    string
	indices   []string
	size      Size
	batchSize int
	listener  Listener
	logger    logger.Logger

	pending []pendingRequest
	result  IndexingResult
	restore func(context.Context) error
}

// BulkIndexerOption configures a BulkIndexer.
type BulkIndexerOption func(*BulkIndexer)

// WithListener attaches l to the session.
func WithListener(l Listener) BulkIndexerOption {
	return func(b *BulkIndexer) {
		b.listener = l
	}
}

// WithBulkLogger sets the logger of the session.
func WithBulkLogger(l logger.Logger) BulkIndexerOption {
	return func(b *BulkIndexer) {
		b.logger = l
	}
}

// WithBatchSize overrides the number of requests per batch.
func WithBatchSize(n int) BulkIndexerOption {
	return func(b *BulkIndexer) {
		if n > 0 {
			b.batchSize = n
		}
	}
}

// NewBulkIndexer returns a session writing into indices on behalf of family.
func NewBulkIndexer(idx search.Index, family string, indices []string, size Size, opts ...BulkIndexerOption) *BulkIndexer {
	b := &BulkIndexer{
		idx:       idx,
		family:    family,
		indices:   indices,
		size:      size,
		batchSize: DefaultRegularBatchSize,
		logger:    logger.NewNoopLogger(),
	}
	if size == SizeLarge {
		b.batchSize = DefaultLargeBatchSize
	}

	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start opens the session. Its error is the only one that prevents any write.
func (b *BulkIndexer) Start(ctx context.Context) error {
	restore, err := b.idx.PrepareBulk(ctx, b.indices, b.size == SizeLarge)
	if err != nil {
		return fmt.Errorf("prepare %s bulk session on %v: %w", b.size, b.indices, err)
	}
	b.restore = restore
	b.pending = make([]pendingRequest, 0, b.batchSize)
	b.result = IndexingResult{}
	return nil
}

// Add upserts doc.
func (b *BulkIndexer) Add(ctx context.Context, doc search.Document, origins ...string) {
	b.AddRequest(ctx, search.IndexRequest(doc), origins...)
}

// AddDeletion deletes a document by id.
func (b *BulkIndexer) AddDeletion(ctx context.Context, index, id, routing string, origins ...string) {
	b.AddRequest(ctx, search.DeleteRequest(index, id, routing), origins...)
}

// AddRequest queues req and flushes when the batch is full.
func (b *BulkIndexer) AddRequest(ctx context.Context, req search.BulkRequest, origins ...string) {
	b.pending = append(b.pending, pendingRequest{req: req, origins: origins})
	if len(b.pending) >= b.batchSize {
		b.flush(ctx)
	}
}

// AddDeletionByQuery flushes the pending requests, then deletes every document of
// index matched by q. It counts as one request.
func (b *BulkIndexer) AddDeletionByQuery(ctx context.Context, index string, q *search.TermQuery, origins ...string) {
	b.flush(ctx)

	ctx, span := startTrace(ctx, "AddDeletionByQuery")
	span.SetAttributes(attribute.String("index", index))
	defer span.End()

	outcome := ItemOutcome{Index: index, Origins: origins}
	deleted, err := b.idx.DeleteByQuery(ctx, index, q)
	if err != nil {
		b.logger.WarnWithContext(ctx, "delete by query failed",
			zap.String("family", b.family),
			zap.String("index", index),
			zap.Error(err))
		outcome.Err = err
	} else {
		b.logger.DebugWithContext(ctx, "deleted by query",
			zap.String("family", b.family),
			zap.String("index", index),
			zap.Int64("deleted", deleted))
	}
	b.record([]ItemOutcome{outcome})
}

// Acknowledge reports origins as processed although they required no request.
func (b *BulkIndexer) Acknowledge(origins ...string) {
	if len(origins) > 0 && b.listener != nil {
		b.listener.OnResults([]ItemOutcome{{Origins: origins}})
	}
}

// Stop flushes the pending requests, notifies the listener and restores the settings
// relaxed by Start.
func (b *BulkIndexer) Stop(ctx context.Context) (IndexingResult, error) {
	b.flush(ctx)

	var err error
	if b.listener != nil {
		err = b.listener.OnFinish(ctx, b.result)
	}
	return b.result, errors.Join(err, b.restoreSettings(ctx))
}

// Abort discards the pending requests. The listener is not notified, so no queue item
// is removed.
func (b *BulkIndexer) Abort(ctx context.Context) {
	b.pending = b.pending[:0]
	if err := b.restoreSettings(ctx); err != nil {
		b.logger.ErrorWithContext(ctx, "restore index settings after abort", zap.String("family", b.family), zap.Error(err))
	}
}

func (b *BulkIndexer) restoreSettings(ctx context.Context) error {
	if b.restore == nil {
		return nil
	}
	restore := b.restore
	b.restore = nil
	if err := restore(ctx); err != nil {
		return fmt.Errorf("restore settings of %v: %w", b.indices, err)
	}
	return nil
}

func (b *BulkIndexer) flush(ctx context.Context) {
	if len(b.pending) == 0 {
		return
	}

	ctx, span := startTrace(ctx, "flush")
	span.SetAttributes(attribute.String("family", b.family), attribute.Int("requests", len(b.pending)))
	defer span.End()

	reqs := make([]search.BulkRequest, 0, len(b.pending))
	for _, p := range b.pending {
		reqs = append(reqs, p.req)
	}

	results, err := b.idx.Bulk(ctx, reqs, b.size == SizeRegular)
	if err == nil && len(results) != len(reqs) {
		err = fmt.Errorf("bulk returned %d results for %d requests", len(results), len(reqs))
	}
	if err != nil {
		b.logger.WarnWithContext(ctx, "bulk request failed",
			zap.String("family", b.family),
			zap.Int("requests", len(reqs)),
			zap.Error(err))
	}

	outcomes := make([]ItemOutcome, 0, len(reqs))
	for i, p := range b.pending {
		outcome := ItemOutcome{Index: p.req.Index, ID: p.req.ID, Origins: p.origins, Err: err}
		if err == nil && results[i].Err != nil {
			outcome.Err = results[i].Err
			b.logger.WarnWithContext(ctx, "document not indexed",
				zap.String("family", b.family),
				zap.String("index", p.req.Index),
				zap.String("id", p.req.ID),
				zap.Stringer("op", p.req.Op),
				zap.Error(outcome.Err))
		}
		outcomes = append(outcomes, outcome)
	}

	b.pending = b.pending[:0]
	b.record(outcomes)
}

func (b *BulkIndexer) record(outcomes []ItemOutcome) {
	for _, outcome := range outcomes {
		b.result.Total++
		if outcome.Err != nil {
			b.result.Failures++
			indexingRequestsCounter.WithLabelValues(b.family, outcomeFailure).Inc()
			continue
		}
		b.result.Successes++
		indexingRequestsCounter.WithLabelValues(b.family, outcomeSuccess).Inc()
	}

	if b.listener != nil {
		b.listener.OnResults(outcomes)
	}
}

package indexer

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/indexsync/indexsync/pkg/logger"
	"github.com/indexsync/indexsync/pkg/search"
	"github.com/indexsync/indexsync/pkg/storage"
	"github.com/indexsync/indexsync/pkg/telemetry"
)

// Resolution tells how the subject of a queue item is resolved when it has no row
// anymore.
type Resolution int

const (
	// ResolveEntity deletes the documents of the missing subject by id.
	ResolveEntity Resolution = iota
	// ResolveScope deletes by query every document still referencing the missing scope.
	ResolveScope
)

// DeletionQuery deletes the documents of Index matched by Query.
type DeletionQuery struct {
	Index string
	Query *search.TermQuery
}

// Family is the capability set of a document family. R is the relational row the
// documents are mapped from.
type Family[R any] interface {
	// Name is the family stored in the doc_type column of the queue.
	Name() string
	// Indices are the indices the family writes into.
	Indices() []string
	// Kinds maps every accepted doc_id_type to its resolution. Items of any other
	// kind are poison.
	Kinds() map[string]Resolution

	// ReadAll streams every row of the family.
	ReadAll(ctx context.Context, fn func(R) error) error
	// Read streams the rows of the subjects ids of kind.
	Read(ctx context.Context, kind string, ids []string, fn func(R) error) error
	// Subject returns the id of the subject of kind row belongs to.
	Subject(kind string, row R) string

	// MapRow builds the documents of row.
	MapRow(row R) []search.Document
	// ResolveMissing returns the deletions of the documents of a missing scope.
	ResolveMissing(item storage.QueueItem) []DeletionQuery
	// BuildDeletion returns the requests deleting the documents of a missing entity.
	BuildDeletion(item storage.QueueItem) []search.BulkRequest
}

// Options configures the indexers.
type Options struct {
	Logger           logger.Logger
	RegularBatchSize int
	LargeBatchSize   int
}

// Option configures the indexers.
type Option func(*Options)

func WithLogger(l logger.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithBatchSizes sets the batch sizes of the regular and large bulk sessions.
func WithBatchSizes(regular, large int) Option {
	return func(o *Options) {
		o.RegularBatchSize = regular
		o.LargeBatchSize = large
	}
}

func newOptions(opts []Option) Options {
	o := Options{
		Logger:           logger.NewNoopLogger(),
		RegularBatchSize: DefaultRegularBatchSize,
		LargeBatchSize:   DefaultLargeBatchSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ResilientIndexer drains the queue items of one family. It re-reads the current state
// of every subject, so processing an item twice converges to the same documents.
type ResilientIndexer[R any] struct {
	family Family[R]
	idx    search.Index
	queue  storage.QueueStore
	opts   Options
	logger logger.Logger
}

var _ Indexer = (*ResilientIndexer[struct{}])(nil)

// New returns the indexer of family.
func New[R any](family Family[R], idx search.Index, queue storage.QueueStore, opts ...Option) *ResilientIndexer[R] {
	o := newOptions(opts)
	return &ResilientIndexer[R]{
		family: family,
		idx:    idx,
		queue:  queue,
		opts:   o,
		logger: o.Logger.With(zap.String("family", family.Name())),
	}
}

func (r *ResilientIndexer[R]) DocumentFamilies() []string {
	return []string{r.family.Name()}
}

func (r *ResilientIndexer[R]) newBulk(size Size, listener Listener) *BulkIndexer {
	batchSize := r.opts.RegularBatchSize
	if size == SizeLarge {
		batchSize = r.opts.LargeBatchSize
	}
	return NewBulkIndexer(r.idx, r.family.Name(), r.family.Indices(), size,
		WithListener(listener),
		WithBulkLogger(r.logger),
		WithBatchSize(batchSize),
	)
}

// IndexOnStartup rebuilds every document of the family when it is uninitialized. Any
// failure leaves the family uninitialized.
func (r *ResilientIndexer[R]) IndexOnStartup(ctx context.Context, uninitialized []string) error {
	name := r.family.Name()
	if !slices.Contains(uninitialized, name) {
		return nil
	}

	ctx, span := startTrace(ctx, "IndexOnStartup")
	span.SetAttributes(attribute.String("family", name))
	defer span.End()

	r.logger.InfoWithContext(ctx, "indexing family on startup")
	start := time.Now()

	bulk := r.newBulk(SizeLarge, NewFailOnErrorListener(name))
	if err := bulk.Start(ctx); err != nil {
		return err
	}

	err := r.family.ReadAll(ctx, func(row R) error {
		for _, doc := range r.family.MapRow(row) {
			bulk.Add(ctx, doc)
		}
		return ctx.Err()
	})
	if err != nil {
		bulk.Abort(ctx)
		telemetry.TraceError(span, err)
		return fmt.Errorf("read %s: %w", name, err)
	}

	result, err := bulk.Stop(ctx)
	if err != nil {
		return err
	}

	if err := search.SetInitialized(ctx, r.idx, name, true); err != nil {
		return fmt.Errorf("mark %s initialized: %w", name, err)
	}

	r.logger.InfoWithContext(ctx, "family indexed on startup",
		zap.Int("documents", result.Total),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// Index drains items. Items of an unknown kind or with a malformed id are removed from
// the queue without being processed. A read failure aborts the drain and leaves every
// item in the queue.
func (r *ResilientIndexer[R]) Index(ctx context.Context, items []storage.QueueItem) (IndexingResult, error) {
	name := r.family.Name()
	if len(items) == 0 {
		return IndexingResult{}, nil
	}

	ctx, span := startTrace(ctx, "Index")
	span.SetAttributes(attribute.String("family", name), attribute.Int("items", len(items)))
	defer span.End()

	start := time.Now()
	defer func() {
		drainDurationHistogram.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()

	kinds := r.family.Kinds()
	byKind := map[string][]storage.QueueItem{}
	var poison []storage.QueueItem
	for _, item := range items {
		if item.DocFamily != name {
			return IndexingResult{}, fmt.Errorf("item %s of family %s sent to %s: %w", item.ID, item.DocFamily, name, ErrUnknownFamily)
		}
		if err := item.Validate(); err != nil {
			r.logger.ErrorWithContext(ctx, "unprocessable queue item", zap.String("item", item.ID), zap.Error(err))
			poison = append(poison, item)
			continue
		}
		if _, ok := kinds[item.DocIDKind]; !ok {
			r.logger.ErrorWithContext(ctx, "unsupported queue item kind",
				zap.String("item", item.ID),
				zap.String("kind", item.DocIDKind),
				zap.String("doc_id", item.DocID))
			poison = append(poison, item)
			continue
		}
		byKind[item.DocIDKind] = append(byKind[item.DocIDKind], item)
	}

	if len(poison) > 0 {
		if err := removePoison(ctx, r.queue, name, reasonPoison, poison); err != nil {
			r.logger.ErrorWithContext(ctx, "remove poison queue items", zap.Error(err))
		}
	}
	if len(byKind) == 0 {
		return IndexingResult{}, nil
	}

	bulk := r.newBulk(SizeRegular, NewRecoveryListener(r.queue, name, r.logger))
	if err := bulk.Start(ctx); err != nil {
		return IndexingResult{}, err
	}

	for _, kind := range slices.Sorted(maps.Keys(byKind)) {
		if err := r.indexKind(ctx, bulk, kind, kinds[kind], byKind[kind]); err != nil {
			bulk.Abort(ctx)
			telemetry.TraceError(span, err)
			return IndexingResult{}, err
		}
	}

	result, err := bulk.Stop(ctx)
	r.logger.DebugWithContext(ctx, "family drained",
		zap.Int("items", len(items)),
		zap.Int("requests", result.Total),
		zap.Int("failures", result.Failures))
	return result, err
}

// indexKind resolves the items of one kind. Items sharing a doc id are resolved once
// and dequeued together.
func (r *ResilientIndexer[R]) indexKind(ctx context.Context, bulk *BulkIndexer, kind string, resolution Resolution, items []storage.QueueItem) error {
	origins := map[string][]string{}
	first := map[string]storage.QueueItem{}
	for _, item := range items {
		if _, ok := first[item.DocID]; !ok {
			first[item.DocID] = item
		}
		origins[item.DocID] = append(origins[item.DocID], item.ID)
	}
	ids := slices.Sorted(maps.Keys(origins))

	seen := map[string]struct{}{}
	err := r.family.Read(ctx, kind, ids, func(row R) error {
		subject := r.family.Subject(kind, row)
		seen[subject] = struct{}{}

		docs := r.family.MapRow(row)
		for _, doc := range docs {
			bulk.Add(ctx, doc, origins[subject]...)
		}
		if len(docs) == 0 {
			bulk.Acknowledge(origins[subject]...)
		}
		return ctx.Err()
	})
	if err != nil {
		return fmt.Errorf("read %s by %s: %w", r.family.Name(), kind, err)
	}

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		item := first[id]
		written := 0
		switch resolution {
		case ResolveScope:
			for _, q := range r.family.ResolveMissing(item) {
				bulk.AddDeletionByQuery(ctx, q.Index, q.Query, origins[id]...)
				written++
			}
		default:
			for _, req := range r.family.BuildDeletion(item) {
				bulk.AddRequest(ctx, req, origins[id]...)
				written++
			}
		}
		if written == 0 {
			bulk.Acknowledge(origins[id]...)
		}
	}
	return nil
}

// removePoison dequeues items that can never be processed.
func removePoison(ctx context.Context, queue storage.QueueStore, family, reason string, items []storage.QueueItem) error {
	if err := queue.DeleteQueueItems(ctx, storage.QueueItemIDs(items)...); err != nil {
		return err
	}
	queueItemsRemovedCounter.WithLabelValues(family, reason).Add(float64(len(items)))
	return nil
}

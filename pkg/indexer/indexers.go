package indexer

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/indexsync/indexsync/pkg/logger"
	"github.com/indexsync/indexsync/pkg/search"
	"github.com/indexsync/indexsync/pkg/storage"
)

// Indexers dispatches queue items to the indexer of their family. Families own
// disjoint documents, so they are drained concurrently.
type Indexers struct {
	byFamily map[string]Indexer
	idx      search.Index
	queue    storage.QueueStore
	logger   logger.Logger
}

// NewIndexers registers indexers. A family handled by two indexers is an error.
func NewIndexers(idx search.Index, queue storage.QueueStore, log logger.Logger, indexers ...Indexer) (*Indexers, error) {
	if log == nil {
		log = logger.NewNoopLogger()
	}

	byFamily := map[string]Indexer{}
	for _, ix := range indexers {
		for _, family := range ix.DocumentFamilies() {
			if _, ok := byFamily[family]; ok {
				return nil, fmt.Errorf("family %s is registered twice", family)
			}
			byFamily[family] = ix
		}
	}

	return &Indexers{
		byFamily: byFamily,
		idx:      idx,
		queue:    queue,
		logger:   log,
	}, nil
}

// Families returns the registered families, sorted.
func (x *Indexers) Families() []string {
	return slices.Sorted(maps.Keys(x.byFamily))
}

// Uninitialized returns the registered families without a completed full pass.
func (x *Indexers) Uninitialized(ctx context.Context) ([]string, error) {
	var uninitialized []string
	for _, family := range x.Families() {
		ok, err := search.Initialized(ctx, x.idx, family)
		if err != nil {
			return nil, fmt.Errorf("read initialization of %s: %w", family, err)
		}
		if !ok {
			uninitialized = append(uninitialized, family)
		}
	}
	return uninitialized, nil
}

// IndexOnStartup runs a full pass of every uninitialized family, one goroutine per
// indexer. It fails with ErrUninitializedFamily when any pass fails.
func (x *Indexers) IndexOnStartup(ctx context.Context) error {
	uninitialized, err := x.Uninitialized(ctx)
	if err != nil {
		return err
	}
	if len(uninitialized) == 0 {
		return nil
	}
	x.logger.InfoWithContext(ctx, "families to index on startup", zap.Strings("families", uninitialized))

	g, gctx := errgroup.WithContext(ctx)
	for _, ix := range x.indexers() {
		g.Go(func() error {
			if err := ix.IndexOnStartup(gctx, uninitialized); err != nil {
				return fmt.Errorf("%v: %w: %w", ix.DocumentFamilies(), ErrUninitializedFamily, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Index drains items. Items of an unknown family are poison and are removed.
func (x *Indexers) Index(ctx context.Context, items []storage.QueueItem) (IndexingResult, error) {
	ctx, span := startTrace(ctx, "Indexers.Index")
	defer span.End()

	byIndexer := map[Indexer][]storage.QueueItem{}
	unknown := map[string][]storage.QueueItem{}
	for _, item := range items {
		ix, ok := x.byFamily[item.DocFamily]
		if !ok {
			unknown[item.DocFamily] = append(unknown[item.DocFamily], item)
			continue
		}
		byIndexer[ix] = append(byIndexer[ix], item)
	}

	for family, poison := range unknown {
		x.logger.ErrorWithContext(ctx, "queue items of unknown family",
			zap.String("family", family),
			zap.Strings("items", storage.QueueItemIDs(poison)),
			zap.Error(ErrUnknownFamily))
		if err := removePoison(ctx, x.queue, family, reasonUnknownFamily, poison); err != nil {
			x.logger.ErrorWithContext(ctx, "remove poison queue items", zap.Error(err))
		}
	}

	var (
		mu     sync.Mutex
		result IndexingResult
	)
	p := pool.New().WithContext(ctx)
	for ix, batch := range byIndexer {
		p.Go(func(ctx context.Context) error {
			r, err := ix.Index(ctx, batch)
			mu.Lock()
			result.Add(r)
			mu.Unlock()
			return err
		})
	}
	err := p.Wait()
	return result, err
}

// indexers returns the distinct registered indexers in family order.
func (x *Indexers) indexers() []Indexer {
	var result []Indexer
	for _, family := range x.Families() {
		ix := x.byFamily[family]
		if !slices.Contains(result, ix) {
			result = append(result, ix)
		}
	}
	return result
}

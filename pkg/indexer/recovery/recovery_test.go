package recovery

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/indexsync/indexsync/pkg/indexer"
	"github.com/indexsync/indexsync/pkg/logger"
	"github.com/indexsync/indexsync/pkg/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// memoryQueue keeps items in insertion order, which is creation order here.
type memoryQueue struct {
	mu    sync.Mutex
	items []storage.QueueItem
}

func (q *memoryQueue) InsertQueueItems(_ context.Context, items ...storage.QueueItem) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, items...)
	return nil
}

func (q *memoryQueue) SelectQueueItems(_ context.Context, createdBefore time.Time, limit int) ([]storage.QueueItem, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var selected []storage.QueueItem
	for _, item := range q.items {
		if len(selected) == limit {
			break
		}
		if item.CreatedAt.Before(createdBefore) {
			selected = append(selected, item)
		}
	}
	return selected, nil
}

func (q *memoryQueue) DeleteQueueItems(_ context.Context, ids ...string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = slices.DeleteFunc(q.items, func(item storage.QueueItem) bool {
		return slices.Contains(ids, item.ID)
	})
	return nil
}

func (q *memoryQueue) CountQueueItems(context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items), nil
}

// drainer succeeds on every item except those of failing doc ids, which stay queued.
type drainer struct {
	queue   *memoryQueue
	failing map[string]bool
	err     error

	mu    sync.Mutex
	calls [][]string
}

func (d *drainer) Index(ctx context.Context, items []storage.QueueItem) (indexer.IndexingResult, error) {
	d.mu.Lock()
	d.calls = append(d.calls, storage.QueueItemIDs(items))
	d.mu.Unlock()

	if d.err != nil {
		return indexer.IndexingResult{}, d.err
	}

	var result indexer.IndexingResult
	var done []string
	for _, item := range items {
		result.Total++
		if d.failing[item.DocID] {
			result.Failures++
			continue
		}
		result.Successes++
		done = append(done, item.ID)
	}
	return result, d.queue.DeleteQueueItems(ctx, done...)
}

func (d *drainer) runs() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.calls)
}

func enqueue(t *testing.T, q *memoryQueue, createdAt time.Time, docIDs ...string) {
	t.Helper()
	for _, id := range docIDs {
		item := storage.NewQueueItem(storage.FamilyComponents, id, storage.KindComponent, "P1")
		item.CreatedAt = createdAt
		require.NoError(t, q.InsertQueueItems(context.Background(), item))
	}
}

func TestRecoverDrainsOldItems(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	q := &memoryQueue{}
	enqueue(t, q, now.Add(-time.Hour), "C1", "C2", "C3", "C4", "C5")
	enqueue(t, q, now.Add(-time.Minute), "recent")

	d := &drainer{queue: q}
	cfg := DefaultConfig()
	cfg.LoopLimit = 2
	r := New(q, d, WithConfig(cfg), WithClock(func() time.Time { return now }))

	result, err := r.Recover(context.Background())
	require.NoError(t, err)
	require.Equal(t, indexer.IndexingResult{Total: 5, Successes: 5}, result)
	require.Equal(t, 3, d.runs())

	pending, err := q.CountQueueItems(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, pending)
}

func TestRecoverEmptyQueue(t *testing.T) {
	d := &drainer{queue: &memoryQueue{}}
	r := New(d.queue, d)

	result, err := r.Recover(context.Background())
	require.NoError(t, err)
	require.Zero(t, result.Total)
	require.Zero(t, d.runs())
}

func TestRecoverCircuitBreaker(t *testing.T) {
	now := time.Now()
	q := &memoryQueue{}
	enqueue(t, q, now.Add(-time.Hour), "F1", "F2", "F3", "C1", "C2", "C3", "C4", "C5", "C6", "C7")

	observer, logs := logger.NewObserverLogger("error")
	d := &drainer{queue: q, failing: map[string]bool{"F1": true, "F2": true, "F3": true}}
	cfg := DefaultConfig()
	cfg.LoopLimit = 4
	r := New(q, d, WithConfig(cfg), WithLogger(observer))

	// the first loop selects F1 F2 F3 C1: a success ratio of 0.25
	result, err := r.Recover(context.Background())
	require.NoError(t, err)
	require.Equal(t, indexer.IndexingResult{Total: 4, Successes: 1, Failures: 3}, result)
	require.Equal(t, 1, d.runs())
	require.Equal(t, 1, logs.FilterMessage("too many recovery failures, waiting for next run").Len())
}

func TestRecoverToleratesFailuresBelowThreshold(t *testing.T) {
	q := &memoryQueue{}
	enqueue(t, q, time.Now().Add(-time.Hour), "F1", "C1", "C2", "C3", "C4", "C5", "C6", "C7", "C8", "C9")

	d := &drainer{queue: q, failing: map[string]bool{"F1": true}}
	cfg := DefaultConfig()
	cfg.LoopLimit = 5
	r := New(q, d, WithConfig(cfg))

	result, err := r.Recover(context.Background())
	require.NoError(t, err)
	require.Equal(t, 9, result.Successes)

	pending, err := q.CountQueueItems(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, pending)
}

func TestRecoverStopsOnError(t *testing.T) {
	q := &memoryQueue{}
	enqueue(t, q, time.Now().Add(-time.Hour), "C1")

	errRead := errors.New("read failed")
	d := &drainer{queue: q, err: errRead}
	r := New(q, d)

	_, err := r.Recover(context.Background())
	require.ErrorIs(t, err, errRead)
	require.Equal(t, 1, d.runs())
}

func TestStartRunsPeriodically(t *testing.T) {
	q := &memoryQueue{}
	d := &drainer{queue: q}
	r := New(q, d, WithConfig(Config{
		InitialDelay:        time.Millisecond,
		Delay:               5 * time.Millisecond,
		LoopLimit:           10,
		CircuitBreakerRatio: DefaultCircuitBreakerRatio,
	}))

	r.Start(context.Background())
	r.Start(context.Background())
	t.Cleanup(r.Close)

	enqueue(t, q, time.Now().Add(-time.Second), "C1", "C2")
	require.Eventually(t, func() bool {
		n, _ := q.CountQueueItems(context.Background())
		return n == 0
	}, 5*time.Second, 5*time.Millisecond)
}

func TestCloseStopsTheSweep(t *testing.T) {
	q := &memoryQueue{}
	d := &drainer{queue: q}
	r := New(q, d, WithConfig(Config{InitialDelay: time.Hour, Delay: time.Hour}))

	r.Start(context.Background())
	r.Close()
	r.Close()

	enqueue(t, q, time.Now().Add(-time.Hour), "C1")
	require.Zero(t, d.runs())
}

func TestStartStopsWithContext(t *testing.T) {
	q := &memoryQueue{}
	r := New(q, &drainer{queue: q}, WithConfig(Config{InitialDelay: time.Hour, Delay: time.Hour}))

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)
	cancel()
	r.Close()
}

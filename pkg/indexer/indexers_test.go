package indexer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/indexsync/indexsync/pkg/logger"
	"github.com/indexsync/indexsync/pkg/search"
	"github.com/indexsync/indexsync/pkg/storage"
)

// stubIndexer records the items it receives.
type stubIndexer struct {
	families []string
	items    []storage.QueueItem
	result   IndexingResult
	err      error
	startup  [][]string
}

func (s *stubIndexer) DocumentFamilies() []string { return s.families }

func (s *stubIndexer) IndexOnStartup(_ context.Context, uninitialized []string) error {
	s.startup = append(s.startup, uninitialized)
	return s.err
}

func (s *stubIndexer) Index(_ context.Context, items []storage.QueueItem) (IndexingResult, error) {
	s.items = append(s.items, items...)
	return s.result, s.err
}

func TestNewIndexersRejectsDuplicateFamilies(t *testing.T) {
	_, err := NewIndexers(newNotesIndex(), newFakeQueue(), nil,
		&stubIndexer{families: []string{"a"}},
		&stubIndexer{families: []string{"b", "a"}},
	)
	require.ErrorContains(t, err, "registered twice")
}

func TestIndexersDispatchesByFamily(t *testing.T) {
	a := &stubIndexer{families: []string{"a"}, result: IndexingResult{Total: 2, Successes: 2}}
	b := &stubIndexer{families: []string{"b"}, result: IndexingResult{Total: 3, Successes: 2, Failures: 1}}

	unknown := storage.NewQueueItem("gone/doc", "x", "", "")
	items := []storage.QueueItem{
		storage.NewQueueItem("a", "1", "", ""),
		storage.NewQueueItem("b", "2", "", ""),
		storage.NewQueueItem("a", "3", "", ""),
		unknown,
	}
	queue := newFakeQueue(items...)
	log, logs := logger.NewObserverLogger("error")

	x, err := NewIndexers(newNotesIndex(), queue, log, a, b)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, x.Families())

	result, err := x.Index(context.Background(), items)
	require.NoError(t, err)
	require.Equal(t, IndexingResult{Total: 5, Successes: 4, Failures: 1}, result)

	require.Equal(t, []storage.QueueItem{items[0], items[2]}, a.items)
	require.Equal(t, []storage.QueueItem{items[1]}, b.items)
	require.NotContains(t, queue.IDs(), unknown.ID)
	require.Equal(t, 1, logs.FilterMessage("queue items of unknown family").Len())
}

func TestIndexersReturnsDrainErrors(t *testing.T) {
	a := &stubIndexer{families: []string{"a"}, err: errors.New("cluster unavailable")}
	b := &stubIndexer{families: []string{"b"}, result: IndexingResult{Total: 1, Successes: 1}}

	x, err := NewIndexers(newNotesIndex(), newFakeQueue(), nil, a, b)
	require.NoError(t, err)

	result, err := x.Index(context.Background(), []storage.QueueItem{
		storage.NewQueueItem("a", "1", "", ""),
		storage.NewQueueItem("b", "2", "", ""),
	})
	require.ErrorContains(t, err, "cluster unavailable")
	require.Equal(t, 1, result.Successes)
}

func TestIndexersIndexOnStartup(t *testing.T) {
	ctx := context.Background()
	idx := newNotesIndex()
	require.NoError(t, search.SetInitialized(ctx, idx, "a", true))
	require.NoError(t, search.SetInitialized(ctx, idx, "c", false))

	ab := &stubIndexer{families: []string{"a", "b"}}
	c := &stubIndexer{families: []string{"c"}}
	x, err := NewIndexers(idx, newFakeQueue(), nil, ab, c)
	require.NoError(t, err)

	uninitialized, err := x.Uninitialized(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "c"}, uninitialized)

	require.NoError(t, x.IndexOnStartup(ctx))
	require.Equal(t, [][]string{{"b", "c"}}, ab.startup)
	require.Equal(t, [][]string{{"b", "c"}}, c.startup)

	c.err = errors.New("read failed")
	err = x.IndexOnStartup(ctx)
	require.ErrorIs(t, err, ErrUninitializedFamily)
	require.ErrorContains(t, err, "read failed")
}

func TestIndexersIndexOnStartupWithEverythingInitialized(t *testing.T) {
	ctx := context.Background()
	idx := newNotesIndex()
	require.NoError(t, search.SetInitialized(ctx, idx, "a", true))

	a := &stubIndexer{families: []string{"a"}}
	x, err := NewIndexers(idx, newFakeQueue(), nil, a)
	require.NoError(t, err)

	require.NoError(t, x.IndexOnStartup(ctx))
	require.Empty(t, a.startup)
}

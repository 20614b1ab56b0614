package indexer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/indexsync/indexsync/pkg/search"
	"github.com/indexsync/indexsync/pkg/search/memory"
	"github.com/indexsync/indexsync/pkg/search/mocks"
)

// recordingListener keeps every outcome it receives.
type recordingListener struct {
	outcomes []ItemOutcome
	finished *IndexingResult
}

func (l *recordingListener) OnResults(outcomes []ItemOutcome) {
	l.outcomes = append(l.outcomes, outcomes...)
}

func (l *recordingListener) OnFinish(_ context.Context, result IndexingResult) error {
	l.finished = &result
	return nil
}

func noteDoc(id string) search.Document {
	return search.Document{Index: testIndex, ID: id, Fields: map[string]any{"text": id}}
}

func TestBulkIndexerFlushesBySize(t *testing.T) {
	ctx := context.Background()
	idx := newFailingIndex(newNotesIndex())
	listener := &recordingListener{}

	bulk := NewBulkIndexer(idx, testFamily, []string{testIndex}, SizeRegular, WithListener(listener), WithBatchSize(2))
	require.NoError(t, bulk.Start(ctx))

	for i := range 5 {
		bulk.Add(ctx, noteDoc(fmt.Sprintf("n%d", i)), fmt.Sprintf("item%d", i))
	}
	require.Equal(t, 2, idx.bulkRuns)

	result, err := bulk.Stop(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, idx.bulkRuns)
	require.Equal(t, IndexingResult{Total: 5, Successes: 5}, result)
	require.Equal(t, &result, listener.finished)
	require.Len(t, listener.outcomes, 5)
	require.Equal(t, []string{"item4"}, listener.outcomes[4].Origins)
	require.Equal(t, []string{"n0", "n1", "n2", "n3", "n4"}, indexedIDs(t, idx))
}

func TestBulkIndexerIsolatesItemFailures(t *testing.T) {
	ctx := context.Background()
	idx := newFailingIndex(newNotesIndex(), "n2")
	listener := &recordingListener{}

	bulk := NewBulkIndexer(idx, testFamily, []string{testIndex}, SizeRegular, WithListener(listener))
	require.NoError(t, bulk.Start(ctx))
	bulk.Add(ctx, noteDoc("n1"), "i1")
	bulk.Add(ctx, noteDoc("n2"), "i2")
	bulk.Add(ctx, noteDoc("n3"), "i3")

	result, err := bulk.Stop(ctx)
	require.NoError(t, err)
	require.Equal(t, IndexingResult{Total: 3, Successes: 2, Failures: 1}, result)
	require.False(t, result.IsSuccess())
	require.InDelta(t, 2.0/3.0, result.SuccessRatio(), 0.001)

	require.NoError(t, listener.outcomes[0].Err)
	require.Error(t, listener.outcomes[1].Err)
	require.NoError(t, listener.outcomes[2].Err)
	require.Equal(t, []string{"n1", "n3"}, indexedIDs(t, idx))
}

func TestBulkIndexerTransportErrorFailsTheBatch(t *testing.T) {
	ctx := context.Background()
	idx := newFailingIndex(newNotesIndex())
	idx.bulkErr = errors.New("connection refused")
	listener := &recordingListener{}

	bulk := NewBulkIndexer(idx, testFamily, []string{testIndex}, SizeRegular, WithListener(listener))
	require.NoError(t, bulk.Start(ctx))
	bulk.Add(ctx, noteDoc("n1"), "i1")
	bulk.AddDeletion(ctx, testIndex, "n2", "", "i2")

	result, err := bulk.Stop(ctx)
	require.NoError(t, err)
	require.Equal(t, IndexingResult{Total: 2, Failures: 2}, result)
	for _, outcome := range listener.outcomes {
		require.ErrorContains(t, outcome.Err, "connection refused")
	}
}

func TestBulkIndexerDeletionByQuery(t *testing.T) {
	ctx := context.Background()
	idx := newNotesIndex()
	_, err := idx.Bulk(ctx, []search.BulkRequest{
		search.IndexRequest(search.Document{Index: testIndex, ID: "n1", Fields: map[string]any{fieldNotebook: "b1"}}),
		search.IndexRequest(search.Document{Index: testIndex, ID: "n2", Fields: map[string]any{fieldNotebook: "b2"}}),
	}, true)
	require.NoError(t, err)

	listener := &recordingListener{}
	bulk := NewBulkIndexer(idx, testFamily, []string{testIndex}, SizeRegular, WithListener(listener))
	require.NoError(t, bulk.Start(ctx))

	bulk.Add(ctx, search.Document{Index: testIndex, ID: "n3", Fields: map[string]any{fieldNotebook: "b1"}}, "i3")
	// pending writes are flushed before the query runs
	bulk.AddDeletionByQuery(ctx, testIndex, search.Term(fieldNotebook, "b1"), "i1")
	bulk.AddDeletionByQuery(ctx, "missing", search.Term(fieldNotebook, "b1"), "i4")

	result, err := bulk.Stop(ctx)
	require.NoError(t, err)
	require.Equal(t, IndexingResult{Total: 3, Successes: 2, Failures: 1}, result)
	require.Equal(t, []string{"n2"}, indexedIDs(t, idx))
	require.ErrorIs(t, listener.outcomes[2].Err, search.ErrIndexNotFound)
}

func TestBulkIndexerLargeSession(t *testing.T) {
	ctx := context.Background()
	idx := newNotesIndex()

	bulk := NewBulkIndexer(idx, testFamily, []string{testIndex}, SizeLarge)
	require.Equal(t, DefaultLargeBatchSize, bulk.batchSize)
	require.NoError(t, bulk.Start(ctx))
	require.Equal(t, []memory.Session{{Indices: []string{testIndex}, Large: true}}, idx.Sessions())

	bulk.Add(ctx, noteDoc("n1"))
	_, err := bulk.Stop(ctx)
	require.NoError(t, err)
	require.True(t, idx.Sessions()[0].Restored)
}

func TestBulkIndexerAbort(t *testing.T) {
	ctx := context.Background()
	idx := newNotesIndex()
	listener := &recordingListener{}

	bulk := NewBulkIndexer(idx, testFamily, []string{testIndex}, SizeRegular, WithListener(listener))
	require.NoError(t, bulk.Start(ctx))
	bulk.Add(ctx, noteDoc("n1"), "i1")
	bulk.Abort(ctx)

	require.Empty(t, indexedIDs(t, idx))
	require.Empty(t, listener.outcomes)
	require.Nil(t, listener.finished)
	require.True(t, idx.Sessions()[0].Restored)
}

func TestBulkIndexerStartFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := mocks.NewMockIndex(ctrl)
	idx.EXPECT().PrepareBulk(gomock.Any(), []string{testIndex}, true).Return(nil, errors.New("cluster unavailable"))

	bulk := NewBulkIndexer(idx, testFamily, []string{testIndex}, SizeLarge)
	err := bulk.Start(context.Background())
	require.ErrorContains(t, err, "cluster unavailable")
}

func TestBulkIndexerShortBulkResponse(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	idx := mocks.NewMockIndex(ctrl)
	restored := false
	idx.EXPECT().PrepareBulk(gomock.Any(), []string{testIndex}, false).Return(func(context.Context) error {
		restored = true
		return nil
	}, nil)
	idx.EXPECT().Bulk(gomock.Any(), gomock.Len(2), true).Return([]search.ItemResult{{Index: testIndex, ID: "n1"}}, nil)

	bulk := NewBulkIndexer(idx, testFamily, []string{testIndex}, SizeRegular)
	require.NoError(t, bulk.Start(ctx))
	bulk.Add(ctx, noteDoc("n1"))
	bulk.Add(ctx, noteDoc("n2"))

	result, err := bulk.Stop(ctx)
	require.NoError(t, err)
	require.Equal(t, IndexingResult{Total: 2, Failures: 2}, result)
	require.True(t, restored)
}

func TestIndexingResult(t *testing.T) {
	var r IndexingResult
	require.True(t, r.IsSuccess())
	require.InDelta(t, 1.0, r.SuccessRatio(), 0)

	r.Add(IndexingResult{Total: 4, Successes: 3, Failures: 1})
	r.Add(IndexingResult{Total: 6, Successes: 4, Failures: 2})
	require.Equal(t, IndexingResult{Total: 10, Successes: 7, Failures: 3}, r)
	require.InDelta(t, 0.7, r.SuccessRatio(), 0.0001)
	require.Equal(t, "large", SizeLarge.String())
	require.Equal(t, "regular", SizeRegular.String())
}

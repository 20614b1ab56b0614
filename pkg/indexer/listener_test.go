package indexer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/indexsync/indexsync/internal/mocks"
	"github.com/indexsync/indexsync/pkg/logger"
)

func TestRecoveryListenerDequeuesFullySucceededItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := mocks.NewMockQueueStore(ctrl)
	log, logs := logger.NewObserverLogger("warn")

	listener := NewRecoveryListener(queue, testFamily, log)
	listener.OnResults([]ItemOutcome{
		{Index: testIndex, ID: "n1", Origins: []string{"i1"}},
		{Index: testIndex, ID: "n2", Origins: []string{"i2", "i3"}, Err: errors.New("rejected")},
	})
	// i4 spans two flushes and fails in the second one
	listener.OnResults([]ItemOutcome{{Index: testIndex, ID: "n4", Origins: []string{"i4"}}})
	listener.OnResults([]ItemOutcome{
		{Index: testIndex, ID: "n5", Origins: []string{"i4"}, Err: errors.New("rejected")},
		{Index: testIndex, ID: "n6", Origins: []string{"i5"}},
		{Origins: []string{"i6"}},
	})

	queue.EXPECT().DeleteQueueItems(gomock.Any(), "i1", "i5", "i6").Return(nil)
	err := listener.OnFinish(context.Background(), IndexingResult{Total: 5, Successes: 3, Failures: 2})
	require.NoError(t, err)
	require.Equal(t, []string{"i1", "i5", "i6"}, listener.Dequeued())

	require.Equal(t, 1, logs.FilterMessage("queue items left for recovery").Len())
}

func TestRecoveryListenerNothingToDequeue(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := mocks.NewMockQueueStore(ctrl)

	listener := NewRecoveryListener(queue, testFamily, logger.NewNoopLogger())
	listener.OnResults([]ItemOutcome{{Index: testIndex, ID: "n1", Err: errors.New("rejected")}})

	require.NoError(t, listener.OnFinish(context.Background(), IndexingResult{Total: 1, Failures: 1}))
}

func TestRecoveryListenerDequeueError(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := mocks.NewMockQueueStore(ctrl)
	queue.EXPECT().DeleteQueueItems(gomock.Any(), "i1").Return(errors.New("database is locked"))

	listener := NewRecoveryListener(queue, testFamily, logger.NewNoopLogger())
	listener.OnResults([]ItemOutcome{{Index: testIndex, ID: "n1", Origins: []string{"i1"}}})

	err := listener.OnFinish(context.Background(), IndexingResult{Total: 1, Successes: 1})
	require.ErrorContains(t, err, "database is locked")
}

func TestFailOnErrorListener(t *testing.T) {
	listener := NewFailOnErrorListener(testFamily)
	require.NoError(t, listener.OnFinish(context.Background(), IndexingResult{Total: 3, Successes: 3}))

	listener.OnResults([]ItemOutcome{
		{Index: testIndex, ID: "n1"},
		{Index: testIndex, ID: "n2", Err: errors.New("rejected")},
	})
	err := listener.OnFinish(context.Background(), IndexingResult{Total: 2, Successes: 1, Failures: 1})
	require.ErrorIs(t, err, ErrUnrecoverable)
	require.ErrorContains(t, err, "notes/n2")
	require.ErrorContains(t, err, "1 errors among 2 requests")
}

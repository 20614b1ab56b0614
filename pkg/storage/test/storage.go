// Package test holds the behavioral suite every storage.Datastore engine must pass.
package test

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"

	"github.com/indexsync/indexsync/pkg/storage"
)

func newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy()).String()
}

func RunAllTests(t *testing.T, ds storage.Datastore) {
	t.Run("TestDatastoreIsReady", func(t *testing.T) {
		status, err := ds.IsReady(context.Background())
		require.NoError(t, err)
		require.True(t, status.IsReady)
	})

	// Change queue.
	t.Run("TestQueue", func(t *testing.T) { QueueTest(t, ds) })

	// Projects and permissions.
	t.Run("TestProjectMutationsEnqueue", func(t *testing.T) { ProjectMutationsTest(t, ds) })
	t.Run("TestReadAuthorizations", func(t *testing.T) { ReadAuthorizationsTest(t, ds) })

	// Rules.
	t.Run("TestActiveRules", func(t *testing.T) { ActiveRulesTest(t, ds) })

	// Components and measures.
	t.Run("TestComponents", func(t *testing.T) { ComponentsTest(t, ds) })
	t.Run("TestProjectMeasures", func(t *testing.T) { ProjectMeasuresTest(t, ds) })
}

// RunLargeInputTests exercises the chunked read path. ds must be configured with a
// small maximum number of parameters per query.
func RunLargeInputTests(t *testing.T, ds storage.Datastore, maxParams int) {
	t.Run("TestReadAuthorizationsAcrossPartitions", func(t *testing.T) {
		LargeInputTest(t, ds, maxParams)
	})
}

// pendingItems returns the queued items among ids.
func pendingItems(t *testing.T, ds storage.Datastore, ids []string) []storage.QueueItem {
	t.Helper()

	all, err := ds.SelectQueueItems(context.Background(), time.Now().Add(time.Hour), 0)
	require.NoError(t, err)

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	var result []storage.QueueItem
	for _, item := range all {
		if _, ok := wanted[item.ID]; ok {
			result = append(result, item)
		}
	}
	return result
}

package test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/indexsync/indexsync/pkg/storage"
)

func QueueTest(t *testing.T, ds storage.Datastore) {
	ctx := context.Background()

	t.Run("insert_select_delete", func(t *testing.T) {
		first := storage.NewQueueItem(storage.FamilyActiveRules, newID(), storage.KindActiveRule, newID())
		second := storage.NewQueueItem(storage.FamilyAuthorization, newID(), "", "")

		require.NoError(t, ds.InsertQueueItems(ctx, first, second))

		got := pendingItems(t, ds, []string{first.ID, second.ID})
		require.ElementsMatch(t, []storage.QueueItem{first, second}, got)

		require.NoError(t, ds.DeleteQueueItems(ctx, first.ID))
		got = pendingItems(t, ds, []string{first.ID, second.ID})
		require.Equal(t, []storage.QueueItem{second}, got)

		// deleting twice is a no-op
		require.NoError(t, ds.DeleteQueueItems(ctx, first.ID, second.ID))
		require.NoError(t, ds.DeleteQueueItems(ctx, first.ID, second.ID))
		require.Empty(t, pendingItems(t, ds, []string{first.ID, second.ID}))
	})

	t.Run("select_is_strictly_before_and_oldest_first", func(t *testing.T) {
		old := storage.NewQueueItem(storage.FamilyComponents, newID(), storage.KindComponent, newID())
		old.CreatedAt = time.Now().Add(-time.Hour).UTC().Truncate(time.Millisecond)
		recent := storage.NewQueueItem(storage.FamilyComponents, newID(), storage.KindComponent, newID())

		require.NoError(t, ds.InsertQueueItems(ctx, recent, old))
		t.Cleanup(func() {
			_ = ds.DeleteQueueItems(ctx, old.ID, recent.ID)
		})

		got, err := ds.SelectQueueItems(ctx, old.CreatedAt.Add(time.Millisecond), 0)
		require.NoError(t, err)
		require.Contains(t, got, old)
		require.NotContains(t, got, recent)

		got, err = ds.SelectQueueItems(ctx, old.CreatedAt, 0)
		require.NoError(t, err)
		require.NotContains(t, got, old)

		got = pendingItems(t, ds, []string{recent.ID, old.ID})
		require.Equal(t, []storage.QueueItem{old, recent}, got)
	})

	t.Run("select_honors_limit", func(t *testing.T) {
		items := []storage.QueueItem{
			storage.NewQueueItem(storage.FamilyAuthorization, newID(), storage.KindProject, ""),
			storage.NewQueueItem(storage.FamilyAuthorization, newID(), storage.KindProject, ""),
			storage.NewQueueItem(storage.FamilyAuthorization, newID(), storage.KindProject, ""),
		}
		require.NoError(t, ds.InsertQueueItems(ctx, items...))
		t.Cleanup(func() {
			_ = ds.DeleteQueueItems(ctx, storage.QueueItemIDs(items)...)
		})

		got, err := ds.SelectQueueItems(ctx, time.Now().Add(time.Hour), 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("count", func(t *testing.T) {
		before, err := ds.CountQueueItems(ctx)
		require.NoError(t, err)

		item := storage.NewQueueItem(storage.FamilyProjectMeasures, newID(), storage.KindProject, "")
		require.NoError(t, ds.InsertQueueItems(ctx, item))

		after, err := ds.CountQueueItems(ctx)
		require.NoError(t, err)
		require.Equal(t, before+1, after)

		require.NoError(t, ds.DeleteQueueItems(ctx, item.ID))
	})

	t.Run("long_doc_id_round_trips", func(t *testing.T) {
		item := storage.NewQueueItem(storage.FamilyComponents, strings.Repeat("x", storage.MaxDocIDLength), "", "")
		require.NoError(t, ds.InsertQueueItems(ctx, item))
		got := pendingItems(t, ds, []string{item.ID})
		require.Equal(t, []storage.QueueItem{item}, got)
		require.NoError(t, ds.DeleteQueueItems(ctx, item.ID))
	})
}

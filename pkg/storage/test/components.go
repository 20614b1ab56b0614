package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/indexsync/indexsync/pkg/storage"
)

func readComponents(t *testing.T, ds storage.Datastore, projectUUIDs ...string) []storage.Component {
	t.Helper()

	var rows []storage.Component
	err := ds.ReadComponents(context.Background(), projectUUIDs, func(c storage.Component) error {
		rows = append(rows, c)
		return nil
	})
	require.NoError(t, err)
	return rows
}

func ComponentsTest(t *testing.T, ds storage.Datastore) {
	ctx := context.Background()
	project := createProject(t, ds, false)

	var items []storage.QueueItem
	track := func(got []storage.QueueItem, err error) []storage.QueueItem {
		t.Helper()
		require.NoError(t, err)
		items = append(items, got...)
		return got
	}
	t.Cleanup(func() {
		_ = ds.DeleteQueueItems(ctx, storage.QueueItemIDs(items)...)
	})

	file := storage.Component{
		UUID:        newID(),
		ProjectUUID: project.UUID,
		Key:         project.Key + ":main.go",
		Name:        "main.go",
		Qualifier:   "FIL",
		Path:        "main.go",
	}

	t.Run("upsert", func(t *testing.T) {
		got := track(ds.UpsertComponent(ctx, file))
		require.Len(t, got, 1)
		require.Equal(t, storage.FamilyComponents, got[0].DocFamily)
		require.Equal(t, storage.KindComponent, got[0].DocIDKind)
		require.Equal(t, project.UUID, got[0].Routing)

		file.Name = "main_renamed.go"
		track(ds.UpsertComponent(ctx, file))
		require.Equal(t, []storage.Component{file}, readComponents(t, ds, project.UUID))

		var byUUID []storage.Component
		err := ds.ReadComponentsByUUID(ctx, []string{file.UUID, newID()}, func(c storage.Component) error {
			byUUID = append(byUUID, c)
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, []storage.Component{file}, byUUID)
	})

	t.Run("upsert_in_missing_project", func(t *testing.T) {
		orphan := file
		orphan.UUID = newID()
		orphan.ProjectUUID = newID()
		_, err := ds.UpsertComponent(ctx, orphan)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		got := track(ds.DeleteComponent(ctx, file.UUID))
		require.Equal(t, file.UUID, got[0].DocID)
		require.Equal(t, project.UUID, got[0].Routing)
		require.Empty(t, readComponents(t, ds, project.UUID))

		_, err := ds.DeleteComponent(ctx, file.UUID)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("project_deletion_removes_components", func(t *testing.T) {
		other := createProject(t, ds, true)
		c := file
		c.UUID = newID()
		c.ProjectUUID = other.UUID
		track(ds.UpsertComponent(ctx, c))
		track(ds.DeleteProject(ctx, other.UUID))
		require.Empty(t, readComponents(t, ds, other.UUID))
	})
}

func ProjectMeasuresTest(t *testing.T, ds storage.Datastore) {
	ctx := context.Background()
	project := createProject(t, ds, false)
	bare := createProject(t, ds, false)

	var items []storage.QueueItem
	track := func(got []storage.QueueItem, err error) {
		t.Helper()
		require.NoError(t, err)
		items = append(items, got...)
	}
	t.Cleanup(func() {
		_ = ds.DeleteQueueItems(ctx, storage.QueueItemIDs(items)...)
	})

	track(ds.SetMeasure(ctx, project.UUID, "ncloc", 120))
	track(ds.SetMeasure(ctx, project.UUID, "coverage", 80.5))
	track(ds.SetMeasure(ctx, project.UUID, "ncloc", 150))

	_, err := ds.SetMeasure(ctx, newID(), "ncloc", 1)
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = ds.SetMeasure(ctx, project.UUID, "", 1)
	require.ErrorIs(t, err, storage.ErrInvalidWriteInput)

	var rows []storage.ProjectMeasures
	err = ds.ReadProjectMeasures(ctx, []string{project.UUID, bare.UUID, newID()}, func(m storage.ProjectMeasures) error {
		rows = append(rows, m)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byProject := map[string]storage.ProjectMeasures{}
	for _, row := range rows {
		byProject[row.ProjectUUID] = row
	}
	require.Equal(t, map[string]float64{"ncloc": 150, "coverage": 80.5}, byProject[project.UUID].Measures)
	require.Equal(t, project.Key, byProject[project.UUID].Key)
	require.Empty(t, byProject[bare.UUID].Measures)
}

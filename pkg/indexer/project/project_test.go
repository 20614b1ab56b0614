package project_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/indexsync/indexsync/internal/mocks"
	"github.com/indexsync/indexsync/pkg/indexer"
	"github.com/indexsync/indexsync/pkg/indexer/authorization"
	"github.com/indexsync/indexsync/pkg/indexer/project"
	"github.com/indexsync/indexsync/pkg/search"
	"github.com/indexsync/indexsync/pkg/storage"
)

func TestComponents(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := project.NewFamily(project.Components(mocks.NewMockComponentStore(ctrl)))

	require.Equal(t, storage.FamilyComponents, f.Name())
	require.Equal(t, map[string]indexer.Resolution{
		storage.KindProject:   indexer.ResolveScope,
		storage.KindComponent: indexer.ResolveEntity,
	}, f.Kinds())

	c := storage.Component{UUID: "C1", ProjectUUID: "P1", Key: "p:main.go", Name: "main.go", Qualifier: "FIL", Path: "main.go"}
	require.Equal(t, "P1", f.Subject(storage.KindProject, c))
	require.Equal(t, "C1", f.Subject(storage.KindComponent, c))

	docs := f.MapRow(c)
	require.Len(t, docs, 1)
	require.Equal(t, search.Document{
		Index:    project.ComponentsIndex,
		ID:       "C1",
		Routing:  "P1",
		Relation: "component",
		Parent:   authorization.DocID("P1"),
		Fields: map[string]any{
			project.FieldProject: "P1",
			"uuid":               "C1",
			"key":                "p:main.go",
			"name":               "main.go",
			"qualifier":          "FIL",
			"path":               "main.go",
		},
	}, docs[0])
}

func TestMeasures(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := project.NewFamily(project.Measures(mocks.NewMockComponentStore(ctrl)))

	require.Equal(t, map[string]indexer.Resolution{storage.KindProject: indexer.ResolveScope}, f.Kinds())

	docs := f.MapRow(storage.ProjectMeasures{ProjectUUID: "P1", Key: "p", Name: "Project", Measures: map[string]float64{"ncloc": 10}})
	require.Len(t, docs, 1)
	require.Equal(t, "P1", docs[0].ID)
	require.Equal(t, "P1", docs[0].Routing)
	require.Equal(t, authorization.DocID("P1"), docs[0].Parent)
	require.Equal(t, "P1", docs[0].Fields[project.FieldProject])
}

func TestRead(t *testing.T) {
	ctx := context.Background()
	noop := func(storage.Component) error { return nil }

	ctrl := gomock.NewController(t)
	store := mocks.NewMockComponentStore(ctrl)
	f := project.NewFamily(project.Components(store))

	gomock.InOrder(
		store.EXPECT().ReadComponents(gomock.Any(), []string{"P1"}, gomock.Any()).Return(nil),
		store.EXPECT().ReadComponentsByUUID(gomock.Any(), []string{"C1", "C2"}, gomock.Any()).Return(nil),
		store.EXPECT().ReadComponents(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil),
	)

	require.NoError(t, f.Read(ctx, storage.KindProject, []string{"P1"}, noop))
	require.NoError(t, f.Read(ctx, storage.KindComponent, []string{"C1", "C2"}, noop))
	require.NoError(t, f.Read(ctx, storage.KindComponent, nil, noop))
	require.NoError(t, f.ReadAll(ctx, noop))
}

func TestDeletions(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := project.NewFamily(project.Components(mocks.NewMockComponentStore(ctrl)))

	require.Equal(t,
		[]indexer.DeletionQuery{{Index: project.ComponentsIndex, Query: search.Term(project.FieldProject, "P1")}},
		f.ResolveMissing(storage.NewQueueItem(storage.FamilyComponents, "P1", storage.KindProject, "P1")))
	require.Equal(t,
		[]search.BulkRequest{search.DeleteRequest(project.ComponentsIndex, "C1", "P1")},
		f.BuildDeletion(storage.NewQueueItem(storage.FamilyComponents, "C1", storage.KindComponent, "P1")))
}

func TestDefinitions(t *testing.T) {
	for _, def := range []search.IndexDefinition{project.ComponentsDefinition(1, 0), project.MeasuresDefinition(1, 0)} {
		t.Run(def.Name, func(t *testing.T) {
			require.True(t, def.AccessControlled())
			require.Contains(t, def.Families, storage.FamilyAuthorization)
			require.Contains(t, def.Mapping, project.FieldProject)
			require.Contains(t, def.Mapping, authorization.FieldAllowedUsers)
		})
	}
}

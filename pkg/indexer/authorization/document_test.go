package authorization_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/indexsync/indexsync/internal/mocks"
	"github.com/indexsync/indexsync/pkg/indexer/authorization"
	"github.com/indexsync/indexsync/pkg/storage"
)

func streamRows(rows ...storage.AuthorizationRow) func(context.Context, []string, func(storage.AuthorizationRow) error) error {
	return func(_ context.Context, _ []string, fn func(storage.AuthorizationRow) error) error {
		for _, row := range rows {
			if err := fn(row); err != nil {
				return err
			}
		}
		return nil
	}
}

func TestReadDocumentsMergesRowsPerProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockProjectStore(ctrl)

	store.EXPECT().
		ReadAuthorizations(gomock.Any(), []string{"P1", "P2", "P3"}, gomock.Any()).
		DoAndReturn(streamRows(
			storage.UserGrant{ProjectUUID: "P1", UserUUID: "u2"},
			storage.GroupGrant{ProjectUUID: "P1", GroupUUID: "g1"},
			storage.UserGrant{ProjectUUID: "P1", UserUUID: "u1"},
			// a user granted through two roles is listed once
			storage.UserGrant{ProjectUUID: "P1", UserUUID: "u2"},
			storage.NoGrant{ProjectUUID: "P1"},
			storage.AnyoneGrant{ProjectUUID: "P2"},
			storage.NoGrant{ProjectUUID: "P2"},
			storage.NoGrant{ProjectUUID: "P3"},
		))

	var docs []authorization.Document
	err := authorization.ReadDocuments(context.Background(), store, []string{"P1", "P2", "P3"}, func(d authorization.Document) error {
		docs = append(docs, d)
		return nil
	})
	require.NoError(t, err)

	want := []authorization.Document{
		{ProjectID: "P1", AllowedUserIDs: []string{"u1", "u2"}, AllowedGroupIDs: []string{"g1"}},
		{ProjectID: "P2", AllowAnyone: true},
		{ProjectID: "P3"},
	}
	if diff := cmp.Diff(want, docs); diff != "" {
		t.Errorf("documents mismatch (-want +got):\n%s", diff)
	}
}

func TestReadDocumentsStopsOnCallbackError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockProjectStore(ctrl)

	store.EXPECT().
		ReadAuthorizations(gomock.Any(), gomock.Nil(), gomock.Any()).
		DoAndReturn(streamRows(
			storage.NoGrant{ProjectUUID: "P1"},
			storage.NoGrant{ProjectUUID: "P2"},
		))

	errStop := errors.New("stop")
	calls := 0
	err := authorization.ReadDocuments(context.Background(), store, nil, func(authorization.Document) error {
		calls++
		return errStop
	})
	require.ErrorIs(t, err, errStop)
	require.Equal(t, 1, calls)
}

func TestDocumentFields(t *testing.T) {
	fields := authorization.Document{ProjectID: "P1"}.Fields()
	require.Equal(t, map[string]any{
		authorization.FieldProject:       "P1",
		authorization.FieldAllowAnyone:   false,
		authorization.FieldAllowedUsers:  []string{},
		authorization.FieldAllowedGroups: []string{},
	}, fields)
}

func TestFamily(t *testing.T) {
	f := authorization.NewFamily(nil, "components", "projectmeasures")

	require.Equal(t, storage.FamilyAuthorization, f.Name())
	require.Equal(t, "P1", f.Subject(storage.KindProject, authorization.Document{ProjectID: "P1"}))

	docs := f.MapRow(authorization.Document{ProjectID: "P1", AllowAnyone: true})
	require.Len(t, docs, 2)
	for i, index := range []string{"components", "projectmeasures"} {
		require.Equal(t, index, docs[i].Index)
		require.Equal(t, "auth_P1", docs[i].ID)
		require.Equal(t, "P1", docs[i].Routing)
		require.Equal(t, true, docs[i].Fields[authorization.FieldAllowAnyone])
	}

	deletions := f.BuildDeletion(storage.NewQueueItem(storage.FamilyAuthorization, "P1", storage.KindProject, "P1"))
	require.Len(t, deletions, 2)
	for _, req := range deletions {
		require.Equal(t, "auth_P1", req.ID)
		require.Equal(t, "P1", req.Routing)
	}
	require.Empty(t, f.ResolveMissing(storage.QueueItem{}))
}

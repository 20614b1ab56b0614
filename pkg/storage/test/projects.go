package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/indexsync/indexsync/pkg/storage"
)

func createProject(t *testing.T, ds storage.Datastore, private bool) storage.Project {
	t.Helper()

	id := newID()
	project := storage.Project{UUID: id, Key: "key-" + id, Name: "name " + id, Private: private}
	items, err := ds.CreateProject(context.Background(), project)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = ds.DeleteQueueItems(context.Background(), storage.QueueItemIDs(items)...)
	})
	return project
}

func createUser(t *testing.T, ds storage.Datastore, active bool) storage.User {
	t.Helper()

	id := newID()
	user := storage.User{UUID: id, Login: "login-" + id, Active: active}
	require.NoError(t, ds.CreateUser(context.Background(), user))
	return user
}

func createGroup(t *testing.T, ds storage.Datastore) storage.Group {
	t.Helper()

	id := newID()
	group := storage.Group{UUID: id, Name: "group-" + id}
	require.NoError(t, ds.CreateGroup(context.Background(), group))
	return group
}

func ProjectMutationsTest(t *testing.T, ds storage.Datastore) {
	ctx := context.Background()

	t.Run("create_enqueues_every_project_family_atomically", func(t *testing.T) {
		id := newID()
		items, err := ds.CreateProject(ctx, storage.Project{UUID: id, Key: "k-" + id, Name: "n"})
		require.NoError(t, err)
		require.Len(t, items, 3)

		families := make([]string, 0, len(items))
		for _, item := range items {
			require.Equal(t, id, item.DocID)
			require.Equal(t, storage.KindProject, item.DocIDKind)
			require.Equal(t, id, item.Routing)
			families = append(families, item.DocFamily)
		}
		require.ElementsMatch(t, []string{
			storage.FamilyAuthorization,
			storage.FamilyComponents,
			storage.FamilyProjectMeasures,
		}, families)

		require.ElementsMatch(t, items, pendingItems(t, ds, storage.QueueItemIDs(items)))
		require.NoError(t, ds.DeleteQueueItems(ctx, storage.QueueItemIDs(items)...))
	})

	t.Run("failed_mutation_enqueues_nothing", func(t *testing.T) {
		project := createProject(t, ds, false)

		before, err := ds.CountQueueItems(ctx)
		require.NoError(t, err)

		_, err = ds.CreateProject(ctx, project)
		require.ErrorIs(t, err, storage.ErrCollision)

		after, err := ds.CountQueueItems(ctx)
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("missing_project_is_not_found", func(t *testing.T) {
		_, err := ds.UpdateProjectVisibility(ctx, newID(), true)
		require.ErrorIs(t, err, storage.ErrNotFound)

		_, err = ds.DeleteProject(ctx, newID())
		require.ErrorIs(t, err, storage.ErrNotFound)

		_, err = ds.AddUserPermission(ctx, newID(), newID(), storage.RoleBrowse)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("empty_uuid_is_rejected", func(t *testing.T) {
		_, err := ds.CreateProject(ctx, storage.Project{Key: "k"})
		require.ErrorIs(t, err, storage.ErrInvalidWriteInput)
	})

	t.Run("permission_changes_enqueue_authorization", func(t *testing.T) {
		project := createProject(t, ds, true)
		user := createUser(t, ds, true)

		items, err := ds.AddUserPermission(ctx, project.UUID, user.UUID, storage.RoleBrowse)
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Equal(t, storage.FamilyAuthorization, items[0].DocFamily)
		require.Equal(t, project.UUID, items[0].DocID)

		_, err = ds.AddUserPermission(ctx, project.UUID, user.UUID, storage.RoleBrowse)
		require.ErrorIs(t, err, storage.ErrCollision)

		removed, err := ds.RemoveUserPermission(ctx, project.UUID, user.UUID, storage.RoleBrowse)
		require.NoError(t, err)
		require.Len(t, removed, 1)

		_, err = ds.RemoveUserPermission(ctx, project.UUID, user.UUID, storage.RoleBrowse)
		require.ErrorIs(t, err, storage.ErrNotFound)

		anyone, err := ds.AddGroupPermission(ctx, project.UUID, "", storage.RoleBrowse)
		require.NoError(t, err)
		_, err = ds.AddGroupPermission(ctx, project.UUID, "", storage.RoleBrowse)
		require.ErrorIs(t, err, storage.ErrCollision)

		revoked, err := ds.RemoveGroupPermission(ctx, project.UUID, "", storage.RoleBrowse)
		require.NoError(t, err)

		all := append(append(append(items, removed...), anyone...), revoked...)
		require.NoError(t, ds.DeleteQueueItems(ctx, storage.QueueItemIDs(all)...))
	})

	t.Run("user_groups", func(t *testing.T) {
		user := createUser(t, ds, true)
		g1 := createGroup(t, ds)
		g2 := createGroup(t, ds)
		require.NoError(t, ds.AddGroupMember(ctx, g2.UUID, user.UUID))
		require.NoError(t, ds.AddGroupMember(ctx, g1.UUID, user.UUID))

		groups, err := ds.ReadUserGroups(ctx, user.UUID)
		require.NoError(t, err)
		require.Equal(t, []string{g1.UUID, g2.UUID}, groups)

		groups, err = ds.ReadUserGroups(ctx, newID())
		require.NoError(t, err)
		require.Empty(t, groups)
	})
}

// authorizationRows collects the rows read for projectUUIDs keyed by their kind.
type authorizationRows struct {
	users  map[string][]string
	groups map[string][]string
	anyone map[string]bool
	exists map[string]bool
}

func (r *authorizationRows) VisitUserGrant(g storage.UserGrant) {
	r.users[g.ProjectUUID] = append(r.users[g.ProjectUUID], g.UserUUID)
}

func (r *authorizationRows) VisitGroupGrant(g storage.GroupGrant) {
	r.groups[g.ProjectUUID] = append(r.groups[g.ProjectUUID], g.GroupUUID)
}

func (r *authorizationRows) VisitAnyoneGrant(g storage.AnyoneGrant) {
	r.anyone[g.ProjectUUID] = true
}

func (r *authorizationRows) VisitNoGrant(g storage.NoGrant) {
	r.exists[g.ProjectUUID] = true
}

func readAuthorizations(t *testing.T, ds storage.Datastore, projectUUIDs ...string) *authorizationRows {
	t.Helper()

	rows := &authorizationRows{
		users:  map[string][]string{},
		groups: map[string][]string{},
		anyone: map[string]bool{},
		exists: map[string]bool{},
	}
	err := ds.ReadAuthorizations(context.Background(), projectUUIDs, func(row storage.AuthorizationRow) error {
		row.Accept(rows)
		return nil
	})
	require.NoError(t, err)
	return rows
}

func ReadAuthorizationsTest(t *testing.T, ds storage.Datastore) {
	ctx := context.Background()

	public := createProject(t, ds, false)
	private := createProject(t, ds, true)
	empty := createProject(t, ds, true)

	alice := createUser(t, ds, true)
	inactive := createUser(t, ds, false)
	group := createGroup(t, ds)

	var items []storage.QueueItem
	grant := func(got []storage.QueueItem, err error) {
		require.NoError(t, err)
		items = append(items, got...)
	}
	grant(ds.AddUserPermission(ctx, private.UUID, alice.UUID, storage.RoleBrowse))
	grant(ds.AddUserPermission(ctx, private.UUID, inactive.UUID, storage.RoleBrowse))
	grant(ds.AddUserPermission(ctx, private.UUID, alice.UUID, "admin"))
	grant(ds.AddGroupPermission(ctx, private.UUID, group.UUID, storage.RoleBrowse))
	grant(ds.AddGroupPermission(ctx, empty.UUID, group.UUID, "codeviewer"))
	t.Cleanup(func() {
		_ = ds.DeleteQueueItems(ctx, storage.QueueItemIDs(items)...)
	})

	missing := newID()
	rows := readAuthorizations(t, ds, public.UUID, private.UUID, empty.UUID, missing)

	t.Run("every_existing_project_has_a_baseline_row", func(t *testing.T) {
		require.Equal(t, map[string]bool{public.UUID: true, private.UUID: true, empty.UUID: true}, rows.exists)
	})

	t.Run("public_projects_are_visible_to_anyone", func(t *testing.T) {
		require.Equal(t, map[string]bool{public.UUID: true}, rows.anyone)
	})

	t.Run("only_active_users_with_browse_are_granted", func(t *testing.T) {
		require.Equal(t, map[string][]string{private.UUID: {alice.UUID}}, rows.users)
	})

	t.Run("only_browse_group_grants_are_read", func(t *testing.T) {
		require.Equal(t, map[string][]string{private.UUID: {group.UUID}}, rows.groups)
	})

	t.Run("anyone_group_grant_on_private_project", func(t *testing.T) {
		grant(ds.AddGroupPermission(ctx, empty.UUID, "", storage.RoleBrowse))
		rows := readAuthorizations(t, ds, empty.UUID)
		require.True(t, rows.anyone[empty.UUID])
	})

	t.Run("deleted_project_has_no_rows", func(t *testing.T) {
		grant(ds.DeleteProject(ctx, private.UUID))
		rows := readAuthorizations(t, ds, private.UUID)
		require.Empty(t, rows.exists)
		require.Empty(t, rows.users)
		require.Empty(t, rows.groups)
	})

	t.Run("visibility_change", func(t *testing.T) {
		grant(ds.UpdateProjectVisibility(ctx, public.UUID, true))
		rows := readAuthorizations(t, ds, public.UUID)
		require.False(t, rows.anyone[public.UUID])
		require.True(t, rows.exists[public.UUID])
	})

	t.Run("empty_input_reads_every_project", func(t *testing.T) {
		rows := readAuthorizations(t, ds)
		require.True(t, rows.exists[public.UUID])
		require.True(t, rows.exists[empty.UUID])
	})
}

func LargeInputTest(t *testing.T, ds storage.Datastore, maxParams int) {
	count := 3*maxParams + 1
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		ids = append(ids, createProject(t, ds, false).UUID)
	}

	t.Run("explicit_ids", func(t *testing.T) {
		rows := readAuthorizations(t, ds, ids...)
		require.Len(t, rows.exists, count)
		require.Len(t, rows.anyone, count)
	})

	t.Run("all_projects", func(t *testing.T) {
		rows := readAuthorizations(t, ds)
		for _, id := range ids {
			require.True(t, rows.exists[id])
		}
	})
}

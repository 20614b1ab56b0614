package sqlcommon

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/oklog/ulid/v2"

	"github.com/indexsync/indexsync/pkg/storage"
)

func newUUID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy()).String()
}

// projectQueueItems are enqueued by every mutation that changes what a project exposes.
func projectQueueItems(projectUUID string) []storage.QueueItem {
	return []storage.QueueItem{
		storage.NewQueueItem(storage.FamilyAuthorization, projectUUID, storage.KindProject, projectUUID),
		storage.NewQueueItem(storage.FamilyComponents, projectUUID, storage.KindProject, projectUUID),
		storage.NewQueueItem(storage.FamilyProjectMeasures, projectUUID, storage.KindProject, projectUUID),
	}
}

func authorizationQueueItems(projectUUID string) []storage.QueueItem {
	return []storage.QueueItem{
		storage.NewQueueItem(storage.FamilyAuthorization, projectUUID, storage.KindProject, projectUUID),
	}
}

// mutate runs write and enqueues the items it returns in the same transaction.
func (s *Datastore) mutate(ctx context.Context, write func(txn *sql.Tx) ([]storage.QueueItem, error)) ([]storage.QueueItem, error) {
	var items []storage.QueueItem
	err := s.inTx(ctx, func(txn *sql.Tx) error {
		var err error
		items, err = write(txn)
		if err != nil {
			return err
		}
		return s.insertQueueItems(ctx, txn, items)
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Datastore) projectExists(ctx context.Context, txn *sql.Tx, projectUUID string) error {
	var uuid string
	err := s.stbl.Select("uuid").
		From("projects").
		Where(sq.Eq{"uuid": projectUUID}).
		RunWith(txn).
		QueryRowContext(ctx).
		Scan(&uuid)
	if err != nil {
		return storage.NotFoundError("project", projectUUID)
	}
	return nil
}

// CreateProject see [storage.ProjectStore].CreateProject.
func (s *Datastore) CreateProject(ctx context.Context, project storage.Project) ([]storage.QueueItem, error) {
	ctx, span := startTrace(ctx, "CreateProject")
	defer span.End()

	if project.UUID == "" {
		return nil, storage.InvalidWriteInputError("project uuid", project.UUID)
	}

	return s.mutate(ctx, func(txn *sql.Tx) ([]storage.QueueItem, error) {
		_, err := s.exec(func() (sql.Result, error) {
			return s.stbl.Insert("projects").
				Columns("uuid", "kee", "name", "private").
				Values(project.UUID, project.Key, project.Name, project.Private).
				RunWith(txn).
				ExecContext(ctx)
		}, "project "+project.Key)
		if err != nil {
			return nil, err
		}
		return projectQueueItems(project.UUID), nil
	})
}

// UpdateProjectVisibility see [storage.ProjectStore].UpdateProjectVisibility.
func (s *Datastore) UpdateProjectVisibility(ctx context.Context, projectUUID string, private bool) ([]storage.QueueItem, error) {
	ctx, span := startTrace(ctx, "UpdateProjectVisibility")
	defer span.End()

	return s.mutate(ctx, func(txn *sql.Tx) ([]storage.QueueItem, error) {
		n, err := s.exec(func() (sql.Result, error) {
			return s.stbl.Update("projects").
				Set("private", private).
				Where(sq.Eq{"uuid": projectUUID}).
				RunWith(txn).
				ExecContext(ctx)
		})
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, storage.NotFoundError("project", projectUUID)
		}
		return authorizationQueueItems(projectUUID), nil
	})
}

// DeleteProject see [storage.ProjectStore].DeleteProject.
func (s *Datastore) DeleteProject(ctx context.Context, projectUUID string) ([]storage.QueueItem, error) {
	ctx, span := startTrace(ctx, "DeleteProject")
	defer span.End()

	return s.mutate(ctx, func(txn *sql.Tx) ([]storage.QueueItem, error) {
		n, err := s.exec(func() (sql.Result, error) {
			return s.stbl.Delete("projects").
				Where(sq.Eq{"uuid": projectUUID}).
				RunWith(txn).
				ExecContext(ctx)
		})
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, storage.NotFoundError("project", projectUUID)
		}

		for _, table := range []string{"user_roles", "group_roles", "components", "project_measures"} {
			_, err := s.exec(func() (sql.Result, error) {
				return s.stbl.Delete(table).
					Where(sq.Eq{"project_uuid": projectUUID}).
					RunWith(txn).
					ExecContext(ctx)
			})
			if err != nil {
				return nil, err
			}
		}
		return projectQueueItems(projectUUID), nil
	})
}

// CreateUser see [storage.ProjectStore].CreateUser.
func (s *Datastore) CreateUser(ctx context.Context, user storage.User) error {
	_, err := s.exec(func() (sql.Result, error) {
		return s.stbl.Insert("users").
			Columns("uuid", "login", "active").
			Values(user.UUID, user.Login, user.Active).
			ExecContext(ctx)
	}, "user "+user.Login)
	return err
}

// CreateGroup see [storage.ProjectStore].CreateGroup.
func (s *Datastore) CreateGroup(ctx context.Context, group storage.Group) error {
	_, err := s.exec(func() (sql.Result, error) {
		return s.stbl.Insert("user_groups").
			Columns("uuid", "name").
			Values(group.UUID, group.Name).
			ExecContext(ctx)
	}, "group "+group.Name)
	return err
}

// AddGroupMember see [storage.ProjectStore].AddGroupMember.
func (s *Datastore) AddGroupMember(ctx context.Context, groupUUID, userUUID string) error {
	_, err := s.exec(func() (sql.Result, error) {
		return s.stbl.Insert("groups_users").
			Columns("group_uuid", "user_uuid").
			Values(groupUUID, userUUID).
			ExecContext(ctx)
	}, "membership "+groupUUID+"/"+userUUID)
	return err
}

// AddUserPermission see [storage.ProjectStore].AddUserPermission.
func (s *Datastore) AddUserPermission(ctx context.Context, projectUUID, userUUID, role string) ([]storage.QueueItem, error) {
	ctx, span := startTrace(ctx, "AddUserPermission")
	defer span.End()

	return s.mutate(ctx, func(txn *sql.Tx) ([]storage.QueueItem, error) {
		if err := s.projectExists(ctx, txn, projectUUID); err != nil {
			return nil, err
		}
		_, err := s.exec(func() (sql.Result, error) {
			return s.stbl.Insert("user_roles").
				Columns("uuid", "project_uuid", "user_uuid", "role").
				Values(newUUID(), projectUUID, userUUID, role).
				RunWith(txn).
				ExecContext(ctx)
		}, "permission "+role)
		if err != nil {
			return nil, err
		}
		return authorizationQueueItems(projectUUID), nil
	})
}

// RemoveUserPermission see [storage.ProjectStore].RemoveUserPermission.
func (s *Datastore) RemoveUserPermission(ctx context.Context, projectUUID, userUUID, role string) ([]storage.QueueItem, error) {
	ctx, span := startTrace(ctx, "RemoveUserPermission")
	defer span.End()

	return s.mutate(ctx, func(txn *sql.Tx) ([]storage.QueueItem, error) {
		n, err := s.exec(func() (sql.Result, error) {
			return s.stbl.Delete("user_roles").
				Where(sq.Eq{"project_uuid": projectUUID, "user_uuid": userUUID, "role": role}).
				RunWith(txn).
				ExecContext(ctx)
		})
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, storage.NotFoundError("user permission", userUUID)
		}
		return authorizationQueueItems(projectUUID), nil
	})
}

// AddGroupPermission see [storage.ProjectStore].AddGroupPermission.
func (s *Datastore) AddGroupPermission(ctx context.Context, projectUUID, groupUUID, role string) ([]storage.QueueItem, error) {
	ctx, span := startTrace(ctx, "AddGroupPermission")
	defer span.End()

	return s.mutate(ctx, func(txn *sql.Tx) ([]storage.QueueItem, error) {
		if err := s.projectExists(ctx, txn, projectUUID); err != nil {
			return nil, err
		}

		// group_uuid is nullable, so uniqueness cannot rely on an index.
		var count int
		err := s.stbl.Select("COUNT(*)").
			From("group_roles").
			Where(sq.Eq{"project_uuid": projectUUID, "group_uuid": nullable(groupUUID), "role": role}).
			RunWith(txn).
			QueryRowContext(ctx).
			Scan(&count)
		if err != nil {
			return nil, s.handleErr(err)
		}
		if count > 0 {
			return nil, storage.ErrCollision
		}

		_, err = s.exec(func() (sql.Result, error) {
			return s.stbl.Insert("group_roles").
				Columns("uuid", "project_uuid", "group_uuid", "role").
				Values(newUUID(), projectUUID, nullable(groupUUID), role).
				RunWith(txn).
				ExecContext(ctx)
		})
		if err != nil {
			return nil, err
		}
		return authorizationQueueItems(projectUUID), nil
	})
}

// RemoveGroupPermission see [storage.ProjectStore].RemoveGroupPermission.
func (s *Datastore) RemoveGroupPermission(ctx context.Context, projectUUID, groupUUID, role string) ([]storage.QueueItem, error) {
	ctx, span := startTrace(ctx, "RemoveGroupPermission")
	defer span.End()

	return s.mutate(ctx, func(txn *sql.Tx) ([]storage.QueueItem, error) {
		n, err := s.exec(func() (sql.Result, error) {
			return s.stbl.Delete("group_roles").
				Where(sq.Eq{"project_uuid": projectUUID, "group_uuid": nullable(groupUUID), "role": role}).
				RunWith(txn).
				ExecContext(ctx)
		})
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, storage.NotFoundError("group permission", groupUUID)
		}
		return authorizationQueueItems(projectUUID), nil
	})
}

// ReadAuthorizations see [storage.ProjectStore].ReadAuthorizations.
func (s *Datastore) ReadAuthorizations(ctx context.Context, projectUUIDs []string, fn func(storage.AuthorizationRow) error) error {
	ctx, span := startTrace(ctx, "ReadAuthorizations")
	defer span.End()

	return readPartitioned(ctx, s, projectUUIDs, "projects", "uuid", s.readAuthorizationPartition, fn)
}

// readAuthorizationPartition unions the four authorization row kinds of a partition of
// projects. Grants on projects that do not exist anymore are ignored.
func (s *Datastore) readAuthorizationPartition(ctx context.Context, part []string) ([]storage.AuthorizationRow, error) {
	var result []storage.AuthorizationRow

	users := s.stbl.
		Select("ur.project_uuid", "ur.user_uuid").
		From("user_roles ur").
		Join("users u ON u.uuid = ur.user_uuid").
		Join("projects p ON p.uuid = ur.project_uuid").
		Where(sq.Eq{"ur.role": storage.RoleBrowse, "u.active": true, "ur.project_uuid": part}).
		OrderBy("ur.project_uuid", "ur.user_uuid")
	err := s.queryRows(ctx, users, func(rows *sql.Rows) error {
		var row storage.UserGrant
		if err := rows.Scan(&row.ProjectUUID, &row.UserUUID); err != nil {
			return err
		}
		result = append(result, row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	groups := s.stbl.
		Select("gr.project_uuid", "gr.group_uuid").
		From("group_roles gr").
		Join("projects p ON p.uuid = gr.project_uuid").
		Where(sq.Eq{"gr.role": storage.RoleBrowse, "gr.project_uuid": part}).
		Where(sq.NotEq{"gr.group_uuid": nil}).
		OrderBy("gr.project_uuid", "gr.group_uuid")
	err = s.queryRows(ctx, groups, func(rows *sql.Rows) error {
		var row storage.GroupGrant
		if err := rows.Scan(&row.ProjectUUID, &row.GroupUUID); err != nil {
			return err
		}
		result = append(result, row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	anyone := s.stbl.
		Select("p.uuid").
		Distinct().
		From("projects p").
		LeftJoin("group_roles gr ON gr.project_uuid = p.uuid AND gr.group_uuid IS NULL AND gr.role = ?", storage.RoleBrowse).
		Where(sq.Eq{"p.uuid": part}).
		Where(sq.Or{sq.Eq{"p.private": false}, sq.NotEq{"gr.uuid": nil}}).
		OrderBy("p.uuid")
	err = s.queryRows(ctx, anyone, func(rows *sql.Rows) error {
		var row storage.AnyoneGrant
		if err := rows.Scan(&row.ProjectUUID); err != nil {
			return err
		}
		result = append(result, row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	none := s.stbl.
		Select("uuid").
		From("projects").
		Where(sq.Eq{"uuid": part}).
		OrderBy("uuid")
	err = s.queryRows(ctx, none, func(rows *sql.Rows) error {
		var row storage.NoGrant
		if err := rows.Scan(&row.ProjectUUID); err != nil {
			return err
		}
		result = append(result, row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ReadUserGroups see [storage.ProjectStore].ReadUserGroups.
func (s *Datastore) ReadUserGroups(ctx context.Context, userUUID string) ([]string, error) {
	ctx, span := startTrace(ctx, "ReadUserGroups")
	defer span.End()

	groups := []string{}
	sb := s.stbl.
		Select("group_uuid").
		From("groups_users").
		Where(sq.Eq{"user_uuid": userUUID}).
		OrderBy("group_uuid")
	err := s.queryRows(ctx, sb, func(rows *sql.Rows) error {
		var group string
		if err := rows.Scan(&group); err != nil {
			return err
		}
		groups = append(groups, group)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

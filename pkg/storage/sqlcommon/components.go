package sqlcommon

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/indexsync/indexsync/pkg/storage"
)

var componentColumns = []string{"uuid", "project_uuid", "kee", "name", "qualifier", "path"}

func componentQueueItem(component storage.Component) storage.QueueItem {
	return storage.NewQueueItem(storage.FamilyComponents, component.UUID, storage.KindComponent, component.ProjectUUID)
}

// UpsertComponent see [storage.ComponentStore].UpsertComponent.
func (s *Datastore) UpsertComponent(ctx context.Context, component storage.Component) ([]storage.QueueItem, error) {
	ctx, span := startTrace(ctx, "UpsertComponent")
	defer span.End()

	if component.UUID == "" {
		return nil, storage.InvalidWriteInputError("component uuid", component.UUID)
	}

	return s.mutate(ctx, func(txn *sql.Tx) ([]storage.QueueItem, error) {
		if err := s.projectExists(ctx, txn, component.ProjectUUID); err != nil {
			return nil, err
		}

		_, err := s.exec(func() (sql.Result, error) {
			return s.stbl.Delete("components").
				Where(sq.Eq{"uuid": component.UUID}).
				RunWith(txn).
				ExecContext(ctx)
		})
		if err != nil {
			return nil, err
		}

		_, err = s.exec(func() (sql.Result, error) {
			return s.stbl.Insert("components").
				Columns(componentColumns...).
				Values(component.UUID, component.ProjectUUID, component.Key, component.Name, component.Qualifier, component.Path).
				RunWith(txn).
				ExecContext(ctx)
		}, "component "+component.Key)
		if err != nil {
			return nil, err
		}
		return []storage.QueueItem{componentQueueItem(component)}, nil
	})
}

// DeleteComponent see [storage.ComponentStore].DeleteComponent.
func (s *Datastore) DeleteComponent(ctx context.Context, componentUUID string) ([]storage.QueueItem, error) {
	ctx, span := startTrace(ctx, "DeleteComponent")
	defer span.End()

	return s.mutate(ctx, func(txn *sql.Tx) ([]storage.QueueItem, error) {
		var projectUUID string
		err := s.stbl.Select("project_uuid").
			From("components").
			Where(sq.Eq{"uuid": componentUUID}).
			RunWith(txn).
			QueryRowContext(ctx).
			Scan(&projectUUID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, storage.NotFoundError("component", componentUUID)
			}
			return nil, s.handleErr(err)
		}

		_, err = s.exec(func() (sql.Result, error) {
			return s.stbl.Delete("components").
				Where(sq.Eq{"uuid": componentUUID}).
				RunWith(txn).
				ExecContext(ctx)
		})
		if err != nil {
			return nil, err
		}
		return []storage.QueueItem{
			componentQueueItem(storage.Component{UUID: componentUUID, ProjectUUID: projectUUID}),
		}, nil
	})
}

// SetMeasure see [storage.ComponentStore].SetMeasure.
func (s *Datastore) SetMeasure(ctx context.Context, projectUUID, metric string, value float64) ([]storage.QueueItem, error) {
	ctx, span := startTrace(ctx, "SetMeasure")
	defer span.End()

	if metric == "" {
		return nil, storage.InvalidWriteInputError("metric", metric)
	}

	return s.mutate(ctx, func(txn *sql.Tx) ([]storage.QueueItem, error) {
		if err := s.projectExists(ctx, txn, projectUUID); err != nil {
			return nil, err
		}

		_, err := s.exec(func() (sql.Result, error) {
			return s.stbl.Delete("project_measures").
				Where(sq.Eq{"project_uuid": projectUUID, "metric": metric}).
				RunWith(txn).
				ExecContext(ctx)
		})
		if err != nil {
			return nil, err
		}

		_, err = s.exec(func() (sql.Result, error) {
			return s.stbl.Insert("project_measures").
				Columns("project_uuid", "metric", "value").
				Values(projectUUID, metric, value).
				RunWith(txn).
				ExecContext(ctx)
		})
		if err != nil {
			return nil, err
		}
		return []storage.QueueItem{
			storage.NewQueueItem(storage.FamilyProjectMeasures, projectUUID, storage.KindProject, projectUUID),
		}, nil
	})
}

func (s *Datastore) scanComponents(ctx context.Context, sb sq.SelectBuilder) ([]storage.Component, error) {
	var result []storage.Component
	err := s.queryRows(ctx, sb, func(rows *sql.Rows) error {
		var c storage.Component
		if err := rows.Scan(&c.UUID, &c.ProjectUUID, &c.Key, &c.Name, &c.Qualifier, &c.Path); err != nil {
			return err
		}
		result = append(result, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReadComponents see [storage.ComponentStore].ReadComponents.
func (s *Datastore) ReadComponents(ctx context.Context, projectUUIDs []string, fn func(storage.Component) error) error {
	ctx, span := startTrace(ctx, "ReadComponents")
	defer span.End()

	return readPartitioned(ctx, s, projectUUIDs, "projects", "uuid",
		func(ctx context.Context, part []string) ([]storage.Component, error) {
			sb := s.stbl.
				Select(componentColumns...).
				From("components").
				Where(sq.Eq{"project_uuid": part}).
				OrderBy("project_uuid", "uuid")
			return s.scanComponents(ctx, sb)
		}, fn)
}

// ReadComponentsByUUID see [storage.ComponentStore].ReadComponentsByUUID.
func (s *Datastore) ReadComponentsByUUID(ctx context.Context, componentUUIDs []string, fn func(storage.Component) error) error {
	ctx, span := startTrace(ctx, "ReadComponentsByUUID")
	defer span.End()

	if len(componentUUIDs) == 0 {
		return nil
	}

	return ReadLargeInputs(ctx, componentUUIDs, s.maxParams,
		func(ctx context.Context, part []string) ([]storage.Component, error) {
			sb := s.stbl.
				Select(componentColumns...).
				From("components").
				Where(sq.Eq{"uuid": part}).
				OrderBy("uuid")
			return s.scanComponents(ctx, sb)
		}, fn)
}

// ReadProjectMeasures see [storage.ComponentStore].ReadProjectMeasures.
func (s *Datastore) ReadProjectMeasures(ctx context.Context, projectUUIDs []string, fn func(storage.ProjectMeasures) error) error {
	ctx, span := startTrace(ctx, "ReadProjectMeasures")
	defer span.End()

	return readPartitioned(ctx, s, projectUUIDs, "projects", "uuid", s.readProjectMeasuresPartition, fn)
}

func (s *Datastore) readProjectMeasuresPartition(ctx context.Context, part []string) ([]storage.ProjectMeasures, error) {
	sb := s.stbl.
		Select("p.uuid", "p.kee", "p.name", "pm.metric", "pm.value").
		From("projects p").
		LeftJoin("project_measures pm ON pm.project_uuid = p.uuid").
		Where(sq.Eq{"p.uuid": part}).
		OrderBy("p.uuid", "pm.metric")

	var result []storage.ProjectMeasures
	err := s.queryRows(ctx, sb, func(rows *sql.Rows) error {
		var (
			uuid, key, name string
			metric          sql.NullString
			value           sql.NullFloat64
		)
		if err := rows.Scan(&uuid, &key, &name, &metric, &value); err != nil {
			return err
		}
		if len(result) == 0 || result[len(result)-1].ProjectUUID != uuid {
			result = append(result, storage.ProjectMeasures{
				ProjectUUID: uuid,
				Key:         key,
				Name:        name,
				Measures:    map[string]float64{},
			})
		}
		if metric.Valid {
			result[len(result)-1].Measures[metric.String] = value.Float64
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

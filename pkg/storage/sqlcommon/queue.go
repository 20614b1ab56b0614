package sqlcommon

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/indexsync/indexsync/pkg/storage"
)

var queueColumns = []string{"uuid", "doc_type", "doc_id", "doc_id_type", "doc_routing", "created_at"}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// insertQueueItems writes items as part of txn, the transaction of the mutation they reflect.
func (s *Datastore) insertQueueItems(ctx context.Context, txn *sql.Tx, items []storage.QueueItem) error {
	if len(items) == 0 {
		return nil
	}

	ib := s.stbl.Insert("es_queue").Columns(queueColumns...)
	for _, item := range items {
		ib = ib.Values(
			item.ID,
			item.DocFamily,
			item.DocID,
			nullable(item.DocIDKind),
			nullable(item.Routing),
			item.CreatedAt.UnixMilli(),
		)
	}

	_, err := s.exec(func() (sql.Result, error) {
		return ib.RunWith(txn).ExecContext(ctx)
	})
	return err
}

// InsertQueueItems see [storage.QueueStore].InsertQueueItems.
func (s *Datastore) InsertQueueItems(ctx context.Context, items ...storage.QueueItem) error {
	ctx, span := startTrace(ctx, "InsertQueueItems")
	defer span.End()

	return s.inTx(ctx, func(txn *sql.Tx) error {
		return s.insertQueueItems(ctx, txn, items)
	})
}

// SelectQueueItems see [storage.QueueStore].SelectQueueItems.
func (s *Datastore) SelectQueueItems(ctx context.Context, createdBefore time.Time, limit int) ([]storage.QueueItem, error) {
	ctx, span := startTrace(ctx, "SelectQueueItems")
	defer span.End()

	sb := s.stbl.
		Select(queueColumns...).
		From("es_queue").
		Where(sq.Lt{"created_at": createdBefore.UnixMilli()}).
		OrderBy("created_at", "uuid")
	if limit > 0 {
		sb = sb.Limit(uint64(limit))
	}

	var items []storage.QueueItem
	err := s.queryRows(ctx, sb, func(rows *sql.Rows) error {
		var (
			item      storage.QueueItem
			kind      sql.NullString
			routing   sql.NullString
			createdAt int64
		)
		if err := rows.Scan(&item.ID, &item.DocFamily, &item.DocID, &kind, &routing, &createdAt); err != nil {
			return err
		}
		item.DocIDKind = kind.String
		item.Routing = routing.String
		item.CreatedAt = time.UnixMilli(createdAt).UTC()
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteQueueItems see [storage.QueueStore].DeleteQueueItems.
func (s *Datastore) DeleteQueueItems(ctx context.Context, ids ...string) error {
	ctx, span := startTrace(ctx, "DeleteQueueItems")
	defer span.End()

	if len(ids) == 0 {
		return nil
	}

	return s.inTx(ctx, func(txn *sql.Tx) error {
		for part := range storage.Partitions(ids, s.maxParams) {
			_, err := s.exec(func() (sql.Result, error) {
				return s.stbl.Delete("es_queue").
					Where(sq.Eq{"uuid": part}).
					RunWith(txn).
					ExecContext(ctx)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// CountQueueItems see [storage.QueueStore].CountQueueItems.
func (s *Datastore) CountQueueItems(ctx context.Context) (int, error) {
	var count int
	err := s.stbl.Select("COUNT(*)").From("es_queue").QueryRowContext(ctx).Scan(&count)
	if err != nil {
		return 0, s.handleErr(err)
	}
	return count, nil
}

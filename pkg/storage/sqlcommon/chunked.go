package sqlcommon

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/indexsync/indexsync/pkg/storage"
)

// ReadLargeInputs resolves an arbitrarily large id set partition by partition. Each
// partition is fully read by read before any of its rows is handed to fn, so no
// connection is held while fn runs. The first error aborts the remaining partitions.
func ReadLargeInputs[T any](
	ctx context.Context,
	ids []string,
	size int,
	read func(ctx context.Context, part []string) ([]T, error),
	fn func(T) error,
) error {
	for part := range storage.Partitions(ids, size) {
		if err := ctx.Err(); err != nil {
			return err
		}

		rows, err := read(ctx, part)
		if err != nil {
			return err
		}

		for _, row := range rows {
			if err := fn(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// forEachPartition calls fn with bounded partitions of ids. When ids is empty every
// key of column in table is visited instead, using keyset pagination so that the
// "select all" path goes through the same bounded partitions.
func (s *Datastore) forEachPartition(
	ctx context.Context,
	ids []string,
	table, column string,
	fn func(part []string) error,
) error {
	if len(ids) > 0 {
		for part := range storage.Partitions(ids, s.maxParams) {
			if err := fn(part); err != nil {
				return err
			}
		}
		return nil
	}

	after := ""
	for {
		part := make([]string, 0, s.maxParams)
		sb := s.stbl.
			Select(column).
			From(table).
			Where(sq.Gt{column: after}).
			OrderBy(column).
			Limit(uint64(s.maxParams))
		err := s.queryRows(ctx, sb, func(rows *sql.Rows) error {
			var key string
			if err := rows.Scan(&key); err != nil {
				return err
			}
			part = append(part, key)
			return nil
		})
		if err != nil {
			return err
		}

		if len(part) == 0 {
			return nil
		}
		if err := fn(part); err != nil {
			return err
		}
		if len(part) < s.maxParams {
			return nil
		}
		after = part[len(part)-1]
	}
}

// readPartitioned combines forEachPartition with a per-partition query, emitting the
// rows of a partition only once it has been read completely.
func readPartitioned[T any](
	ctx context.Context,
	s *Datastore,
	ids []string,
	table, column string,
	read func(ctx context.Context, part []string) ([]T, error),
	fn func(T) error,
) error {
	return s.forEachPartition(ctx, ids, table, column, func(part []string) error {
		rows, err := read(ctx, part)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if err := fn(row); err != nil {
				return err
			}
		}
		return nil
	})
}

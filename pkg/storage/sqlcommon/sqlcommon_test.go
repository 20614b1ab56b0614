package sqlcommon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"

	"github.com/indexsync/indexsync/pkg/storage"
)

func TestHandleSQLError(t *testing.T) {
	t.Run("duplicate_key_value_error_with_subject_wraps_ErrCollision", func(t *testing.T) {
		err := HandleSQLError(errors.New("duplicate key value"), "project my-key")
		require.ErrorIs(t, err, storage.ErrCollision)
		require.ErrorContains(t, err, "project my-key")
	})

	t.Run("duplicate_entry_value_error_returns_collision", func(t *testing.T) {
		duplicateKeyError := &mysql.MySQLError{
			Number:  1062,
			Message: "Duplicate entry '' for key ''",
		}
		err := HandleSQLError(duplicateKeyError)
		require.ErrorIs(t, err, storage.ErrCollision)
	})

	t.Run("non_string_subject_is_ignored", func(t *testing.T) {
		err := HandleSQLError(errors.New("duplicate key value"), 42)
		require.Equal(t, storage.ErrCollision, err)
	})

	t.Run("sql.ErrNoRows_is_converted_to_storage.ErrNotFound_error", func(t *testing.T) {
		err := HandleSQLError(sql.ErrNoRows)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("other_errors_are_wrapped", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := HandleSQLError(cause)
		require.ErrorIs(t, err, cause)
		require.NotErrorIs(t, err, storage.ErrCollision)
	})
}

func TestReadLargeInputs(t *testing.T) {
	ids := make([]string, 0, 25)
	for i := 0; i < 25; i++ {
		ids = append(ids, fmt.Sprintf("id-%02d", i))
	}
	// duplicates are resolved once
	ids = append(ids, "id-03", "id-17")

	t.Run("every_id_is_read_once_in_bounded_partitions", func(t *testing.T) {
		var sizes []int
		var got []string
		err := ReadLargeInputs(context.Background(), ids, 10,
			func(_ context.Context, part []string) ([]string, error) {
				sizes = append(sizes, len(part))
				return part, nil
			},
			func(id string) error {
				got = append(got, id)
				return nil
			})
		require.NoError(t, err)
		require.Equal(t, []int{10, 10, 5}, sizes)
		require.Len(t, got, 25)
		require.Equal(t, "id-00", got[0])
		require.Equal(t, "id-24", got[24])
	})

	t.Run("read_error_aborts_remaining_partitions", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		err := ReadLargeInputs(context.Background(), ids, 10,
			func(_ context.Context, part []string) ([]string, error) {
				calls++
				if calls == 2 {
					return nil, boom
				}
				return part, nil
			},
			func(string) error { return nil })
		require.ErrorIs(t, err, boom)
		require.Equal(t, 2, calls)
	})

	t.Run("consumer_error_is_returned", func(t *testing.T) {
		stop := errors.New("stop")
		seen := 0
		err := ReadLargeInputs(context.Background(), ids, 10,
			func(_ context.Context, part []string) ([]string, error) {
				return part, nil
			},
			func(string) error {
				seen++
				if seen == 3 {
					return stop
				}
				return nil
			})
		require.ErrorIs(t, err, stop)
		require.Equal(t, 3, seen)
	})

	t.Run("cancelled_context_stops_before_reading", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := ReadLargeInputs(ctx, ids, 10,
			func(_ context.Context, part []string) ([]string, error) {
				t.Fatal("unexpected read")
				return nil, nil
			},
			func(string) error { return nil })
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("empty_input_reads_nothing", func(t *testing.T) {
		err := ReadLargeInputs(context.Background(), nil, 10,
			func(_ context.Context, part []string) ([]string, error) {
				t.Fatal("unexpected read")
				return nil, nil
			},
			func(string) error { return nil })
		require.NoError(t, err)
	})
}

package storage

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func collect(ids []string, size int) [][]string {
	var parts [][]string
	for part := range Partitions(ids, size) {
		parts = append(parts, part)
	}
	return parts
}

func TestPartitions(t *testing.T) {
	t.Run("empty_input_yields_nothing", func(t *testing.T) {
		require.Empty(t, collect(nil, 10))
	})

	t.Run("sorted_and_deduplicated", func(t *testing.T) {
		parts := collect([]string{"c", "a", "b", "a", "c"}, 2)
		require.Equal(t, [][]string{{"a", "b"}, {"c"}}, parts)
	})

	t.Run("exact_multiple_of_size", func(t *testing.T) {
		parts := collect([]string{"4", "3", "2", "1"}, 2)
		require.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, parts)
	})

	t.Run("invalid_size_uses_default", func(t *testing.T) {
		ids := make([]string, DefaultMaxParametersPerQuery+1)
		for i := range ids {
			ids[i] = fmt.Sprintf("id-%05d", i)
		}
		parts := collect(ids, 0)
		require.Len(t, parts, 2)
		require.Len(t, parts[0], DefaultMaxParametersPerQuery)
		require.Len(t, parts[1], 1)
	})

	t.Run("early_stop", func(t *testing.T) {
		seen := 0
		for range Partitions([]string{"a", "b", "c"}, 1) {
			seen++
			break
		}
		require.Equal(t, 1, seen)
	})
}

func TestPartitionsCoverInputExactly(t *testing.T) {
	for _, size := range []int{1, 3, 7, 50, 1000} {
		t.Run(fmt.Sprintf("size_%d", size), func(t *testing.T) {
			var ids []string
			for i := 0; i < 137; i++ {
				ids = append(ids, fmt.Sprintf("uuid-%d", i%101))
			}

			seen := map[string]int{}
			var flat []string
			for part := range Partitions(ids, size) {
				require.LessOrEqual(t, len(part), size)
				require.True(t, slices.IsSorted(part))
				for _, id := range part {
					seen[id]++
					flat = append(flat, id)
				}
			}

			require.Len(t, seen, 101)
			for id, n := range seen {
				require.Equal(t, 1, n, "id %s appears in more than one partition", id)
			}
			require.True(t, slices.IsSorted(flat))
		})
	}
}

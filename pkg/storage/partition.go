package storage

import (
	"iter"

	"github.com/emirpasic/gods/sets/treeset"
)

// Partitions deduplicates and sorts ids, then lazily yields consecutive partitions of at
// most size elements. The union of the partitions is exactly the input set and no id
// appears in two partitions. A size below one falls back to DefaultMaxParametersPerQuery.
func Partitions(ids []string, size int) iter.Seq[[]string] {
	if size < 1 {
		size = DefaultMaxParametersPerQuery
	}

	set := treeset.NewWithStringComparator()
	for _, id := range ids {
		set.Add(id)
	}

	return func(yield func([]string) bool) {
		part := make([]string, 0, min(size, set.Size()))
		it := set.Iterator()
		for it.Next() {
			part = append(part, it.Value().(string))
			if len(part) == size {
				if !yield(part) {
					return
				}
				part = make([]string, 0, min(size, set.Size()))
			}
		}
		if len(part) > 0 {
			yield(part)
		}
	}
}

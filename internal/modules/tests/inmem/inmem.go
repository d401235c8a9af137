// Package inmem holds map backed repositories for workflow tests. They follow
// the error contract of the Postgres repositories, unique indexes included.
package inmem

import (
	"fmt"
	"sort"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
)

func notFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, core.ErrNotFound)
}

func conflict(index string) error {
	return fmt.Errorf("%s: %w", index, core.ErrConflict)
}

func page[T any](items []T, createdAt func(T) time.Time, opts core.QueryOptions) []T {
	sort.SliceStable(items, func(i, j int) bool {
		if opts.Order == core.SortAscending {
			return createdAt(items[i]).Before(createdAt(items[j]))
		}
		return createdAt(items[i]).After(createdAt(items[j]))
	})

	if opts.Offset >= len(items) {
		return []T{}
	}

	items = items[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}

	return items
}

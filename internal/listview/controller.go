// Package listview implements the list/filter interaction shared by the
// planner, opportunities, and tutors pages: snapshot fetch, single-select
// category filter, and full re-fetch after every mutation.
package listview

import (
	"context"
	"strings"
)

// FilterAll disables filtering.
const FilterAll = "all"

// Controller drives one resource list page. It is configured with the fetch
// function and the field the filter matches on, and instantiated once per
// page.
type Controller[T any] struct {
	Fetch      func(ctx context.Context) ([]T, error)
	CategoryOf func(item T) string
}

// Load fetches the full snapshot from the backend.
func (c Controller[T]) Load(ctx context.Context) ([]T, error) {
	return c.Fetch(ctx)
}

// Visible derives the filtered view. It is pure: the input slice is never
// modified, and the same items and filter always yield the same result.
func (c Controller[T]) Visible(items []T, filter string) []T {
	if filter == "" || filter == FilterAll {
		return items
	}
	visible := make([]T, 0, len(items))
	for _, item := range items {
		if strings.EqualFold(c.CategoryOf(item), filter) {
			visible = append(visible, item)
		}
	}
	return visible
}

// Mutate runs a mutation and, when it succeeds, re-fetches the full snapshot
// so the rendered list reflects server state rather than an in-memory patch.
func (c Controller[T]) Mutate(ctx context.Context, op func(ctx context.Context) error) ([]T, error) {
	if err := op(ctx); err != nil {
		return nil, err
	}
	return c.Load(ctx)
}

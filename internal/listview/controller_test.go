package listview

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"campulse/internal/model"
)

func taskController(fetch func(ctx context.Context) ([]model.Task, error)) Controller[model.Task] {
	return Controller[model.Task]{
		Fetch:      fetch,
		CategoryOf: func(t model.Task) string { return t.TaskType },
	}
}

func TestVisibleFilterIsPureAndIdempotent(t *testing.T) {
	ctrl := taskController(nil)
	items := []model.Task{
		{ID: 1, Title: "Finish lab", TaskType: model.TaskAssignment},
		{ID: 2, Title: "Midterm", TaskType: model.TaskTest},
		{ID: 3, Title: "Essay", TaskType: model.TaskAssignment},
	}

	once := ctrl.Visible(items, model.TaskAssignment)
	// Flip away and back; an unchanged list must yield the same visible set.
	_ = ctrl.Visible(items, FilterAll)
	again := ctrl.Visible(items, model.TaskAssignment)

	if !reflect.DeepEqual(once, again) {
		t.Fatalf("filter not idempotent: %+v vs %+v", once, again)
	}
	if len(once) != 2 || once[0].ID != 1 || once[1].ID != 3 {
		t.Fatalf("unexpected visible set %+v", once)
	}
	if len(items) != 3 {
		t.Fatal("input slice was modified")
	}
}

func TestVisibleAllReturnsEverything(t *testing.T) {
	ctrl := taskController(nil)
	items := []model.Task{{ID: 1, TaskType: model.TaskClass}}
	if got := ctrl.Visible(items, FilterAll); len(got) != 1 {
		t.Fatalf("expected full list, got %+v", got)
	}
	if got := ctrl.Visible(items, ""); len(got) != 1 {
		t.Fatalf("expected full list for empty filter, got %+v", got)
	}
}

func TestVisibleMatchesCaseInsensitively(t *testing.T) {
	ctrl := Controller[model.Opportunity]{
		CategoryOf: func(o model.Opportunity) string { return o.Category },
	}
	items := []model.Opportunity{{ID: 1, Category: "Scholarship"}}
	if got := ctrl.Visible(items, "scholarship"); len(got) != 1 {
		t.Fatalf("expected case-insensitive match, got %+v", got)
	}
}

func TestMutateRefetchesSnapshot(t *testing.T) {
	fetches := 0
	ctrl := taskController(func(ctx context.Context) ([]model.Task, error) {
		fetches++
		return []model.Task{{ID: int64(fetches)}}, nil
	})

	items, err := ctrl.Mutate(context.Background(), func(ctx context.Context) error { return nil })
	if err != nil {
		t.Fatalf("mutate failed: %v", err)
	}
	if fetches != 1 {
		t.Fatalf("expected exactly one re-fetch, got %d", fetches)
	}
	if len(items) != 1 || items[0].ID != 1 {
		t.Fatalf("expected fresh snapshot, got %+v", items)
	}
}

func TestMutateSkipsRefetchOnFailure(t *testing.T) {
	fetches := 0
	ctrl := taskController(func(ctx context.Context) ([]model.Task, error) {
		fetches++
		return nil, nil
	})

	opErr := errors.New("backend said no")
	if _, err := ctrl.Mutate(context.Background(), func(ctx context.Context) error { return opErr }); !errors.Is(err, opErr) {
		t.Fatalf("expected mutation error, got %v", err)
	}
	if fetches != 0 {
		t.Fatalf("expected no re-fetch after failed mutation, got %d", fetches)
	}
}

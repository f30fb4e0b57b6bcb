package session

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryGetSetRemove(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if _, err := store.Get(ctx, "sid-1", KeyToken); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty store, got %v", err)
	}

	if err := store.Set(ctx, "sid-1", KeyToken, "tok-abc"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	val, err := store.Get(ctx, "sid-1", KeyToken)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if val != "tok-abc" {
		t.Fatalf("expected tok-abc, got %q", val)
	}

	// Sessions are isolated from each other.
	if _, err := store.Get(ctx, "sid-2", KeyToken); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other session, got %v", err)
	}

	if err := store.Remove(ctx, "sid-1", KeyToken); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := store.Get(ctx, "sid-1", KeyToken); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}

	// Removing an absent key is not an error.
	if err := store.Remove(ctx, "sid-1", KeyUser); err != nil {
		t.Fatalf("remove of absent key failed: %v", err)
	}
}

func TestContextSessionID(t *testing.T) {
	ctx := context.Background()
	if _, ok := IDFromContext(ctx); ok {
		t.Fatal("expected no session id on bare context")
	}
	ctx = WithID(ctx, "sid-9")
	sid, ok := IDFromContext(ctx)
	if !ok || sid != "sid-9" {
		t.Fatalf("expected sid-9, got %q ok=%v", sid, ok)
	}
}

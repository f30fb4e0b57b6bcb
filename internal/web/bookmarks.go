package web

import (
	"context"
	"encoding/json"
	"errors"

	"campulse/internal/session"
)

// Bookmarks are page-local optimistic state: a set of opportunity ids kept in
// the session store, flipped before the backend call and never rolled back or
// reconciled against server responses.

func loadBookmarks(ctx context.Context, store session.Store) map[int64]bool {
	sid, ok := session.IDFromContext(ctx)
	if !ok {
		return map[int64]bool{}
	}
	raw, err := store.Get(ctx, sid, session.KeyBookmarks)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			return map[int64]bool{}
		}
		return map[int64]bool{}
	}
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return map[int64]bool{}
	}
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// toggleBookmark flips id in the persisted set and reports the new state.
func toggleBookmark(ctx context.Context, store session.Store, id int64) (bool, error) {
	sid, ok := session.IDFromContext(ctx)
	if !ok {
		return false, errors.New("no browser session")
	}
	set := loadBookmarks(ctx, store)
	bookmarked := !set[id]
	if bookmarked {
		set[id] = true
	} else {
		delete(set, id)
	}
	ids := make([]int64, 0, len(set))
	for bid := range set {
		ids = append(ids, bid)
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return bookmarked, err
	}
	return bookmarked, store.Set(ctx, sid, session.KeyBookmarks, string(raw))
}

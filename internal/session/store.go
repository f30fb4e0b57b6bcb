package session

import (
	"context"
	"errors"
)

// Keys persisted per browser session. Token and user are always written and
// cleared together; bookmarks are independent page state.
const (
	KeyToken     = "campulse_token"
	KeyUser      = "campulse_user"
	KeyBookmarks = "campulse_bookmarks"
)

// CookieName carries the browser session id.
const CookieName = "campulse_session"

// ErrNotFound is returned when a key is absent for a session.
var ErrNotFound = errors.New("session: key not found")

// Store persists plain string values per browser session. Values have no
// expiry and survive restarts (for the redis and postgres backends) until
// removed by logout or a backend rejection.
type Store interface {
	Get(ctx context.Context, sid, key string) (string, error)
	Set(ctx context.Context, sid, key, value string) error
	Remove(ctx context.Context, sid, key string) error
}

type ctxKey struct{}

// WithID stashes the browser session id in the request context.
func WithID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, ctxKey{}, sid)
}

// IDFromContext returns the browser session id set by the cookie middleware.
func IDFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(ctxKey{}).(string)
	return sid, ok && sid != ""
}

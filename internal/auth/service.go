package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"campulse/internal/api"
	"campulse/internal/model"
	"campulse/internal/session"
)

// Fallback messages shown when the backend gives no usable detail.
const (
	loginFallback  = "Login failed. Please try again."
	signupFallback = "Signup failed. Please try again."
)

// Tokens reads the persisted bearer token for the browser session carried in
// the request context. It is the request-time hook the api client consults.
type Tokens struct {
	Store session.Store
}

// Token implements api.TokenSource.
func (t Tokens) Token(ctx context.Context) (string, bool) {
	sid, ok := session.IDFromContext(ctx)
	if !ok {
		return "", false
	}
	tok, err := t.Store.Get(ctx, sid, session.KeyToken)
	if err != nil {
		return "", false
	}
	return tok, true
}

// ClearCredentials returns the hook the api client fires on any 401: both
// persisted keys are dropped so the next request lands on the login page.
func ClearCredentials(store session.Store) func(ctx context.Context) {
	return func(ctx context.Context) {
		sid, ok := session.IDFromContext(ctx)
		if !ok {
			return
		}
		if err := store.Remove(ctx, sid, session.KeyToken); err != nil {
			log.Printf("session clear token failed: %v", err)
		}
		if err := store.Remove(ctx, sid, session.KeyUser); err != nil {
			log.Printf("session clear user failed: %v", err)
		}
	}
}

// Service owns the session lifecycle: resuming a persisted token on first
// contact, login, signup, and logout. One instance serves the whole process;
// tests construct isolated instances over a memory store.
type Service struct {
	store session.Store
	api   *api.Client
}

// NewService creates the session service.
func NewService(store session.Store, client *api.Client) *Service {
	return &Service{store: store, api: client}
}

// Current resolves the profile for the request's browser session. A cached
// profile is returned directly; otherwise, if a token is persisted, the
// profile is fetched from the backend and cached. Any failure of that fetch
// clears both persisted keys, so a stale token settles into a logged-out
// session exactly once.
func (s *Service) Current(ctx context.Context) (model.User, bool) {
	sid, ok := session.IDFromContext(ctx)
	if !ok {
		return model.User{}, false
	}

	if raw, err := s.store.Get(ctx, sid, session.KeyUser); err == nil {
		var user model.User
		if err := json.Unmarshal([]byte(raw), &user); err == nil {
			return user, true
		}
		// Corrupt cache; fall through to a fresh fetch.
	}

	if _, err := s.store.Get(ctx, sid, session.KeyToken); err != nil {
		return model.User{}, false
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		// The 401 hook already cleared the keys; clear here too so other
		// failures (network, 5xx) do not leave a token without a profile.
		if !errors.Is(err, api.ErrUnauthorized) {
			log.Printf("resume session failed: %v", err)
		}
		s.clear(ctx, sid)
		return model.User{}, false
	}

	s.cache(ctx, sid, user)
	return user, true
}

// Authenticated reports whether the request's session resolves to a profile.
func (s *Service) Authenticated(ctx context.Context) bool {
	_, ok := s.Current(ctx)
	return ok
}

// Login exchanges credentials for a token, persisting both the token and the
// profile. The returned error carries the backend's detail message when one
// exists, or a generic fallback.
func (s *Service) Login(ctx context.Context, email, password string) (model.User, error) {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return model.User{}, friendly(err, loginFallback)
	}
	return s.establish(ctx, resp)
}

// Signup creates an account and starts a session, symmetric to Login.
func (s *Service) Signup(ctx context.Context, input api.SignupInput) (model.User, error) {
	resp, err := s.api.Signup(ctx, input)
	if err != nil {
		return model.User{}, friendly(err, signupFallback)
	}
	return s.establish(ctx, resp)
}

// Logout clears the session synchronously. No backend call is made; the
// token simply stops being presented.
func (s *Service) Logout(ctx context.Context) {
	sid, ok := session.IDFromContext(ctx)
	if !ok {
		return
	}
	s.clear(ctx, sid)
	if err := s.store.Remove(ctx, sid, session.KeyBookmarks); err != nil {
		log.Printf("session clear bookmarks failed: %v", err)
	}
}

func (s *Service) establish(ctx context.Context, resp api.AuthResponse) (model.User, error) {
	sid, ok := session.IDFromContext(ctx)
	if !ok {
		return model.User{}, errors.New("no browser session")
	}
	if err := s.store.Set(ctx, sid, session.KeyToken, resp.AccessToken); err != nil {
		return model.User{}, err
	}
	s.cache(ctx, sid, resp.User)
	return resp.User, nil
}

func (s *Service) cache(ctx context.Context, sid string, user model.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, sid, session.KeyUser, string(raw)); err != nil {
		log.Printf("session cache user failed: %v", err)
	}
}

// clear drops token and profile together, preserving the invariant that one
// is never persisted without the other.
func (s *Service) clear(ctx context.Context, sid string) {
	if err := s.store.Remove(ctx, sid, session.KeyToken); err != nil {
		log.Printf("session clear token failed: %v", err)
	}
	if err := s.store.Remove(ctx, sid, session.KeyUser); err != nil {
		log.Printf("session clear user failed: %v", err)
	}
}

// friendly maps backend failures to the single general-purpose message shown
// on the auth forms.
func friendly(err error, fallback string) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return errors.New(apiErr.Detail)
	}
	return errors.New(fallback)
}

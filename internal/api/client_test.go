package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token(ctx context.Context) (string, bool) {
	return s.token, s.token != ""
}

func TestBearerAttachedWhenTokenPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]map[string]any{})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, WithTokenSource(staticTokens{token: "tok-123"}))
	if _, err := c.ListTasks(context.Background()); err != nil {
		t.Fatalf("list tasks failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestNoBearerWhenTokenAbsent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"access_token": "t", "user": map[string]any{"id": 1}})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, WithTokenSource(staticTokens{}))
	if _, err := c.Login(context.Background(), "a@b.com", "secret99"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected unauthenticated request, got %q", gotAuth)
	}
}

func TestUnauthorizedFiresHookFromAnyEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	hookCalls := 0
	c := New(srv.URL, time.Second,
		WithTokenSource(staticTokens{token: "expired"}),
		WithUnauthorizedHook(func(ctx context.Context) { hookCalls++ }),
	)

	ctx := context.Background()
	if _, err := c.ListTasks(ctx); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := c.ListTutors(ctx, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if hookCalls != 2 {
		t.Fatalf("expected hook fired per 401, got %d", hookCalls)
	}
}

func TestErrorCarriesBackendDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "email already registered"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Signup(context.Background(), SignupInput{Email: "a@b.com"})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Detail != "email already registered" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}

func TestFacadeRouting(t *testing.T) {
	type seen struct {
		method, path, query string
	}
	var last seen
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last = seen{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
		switch {
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/tasks/7":
			json.NewEncoder(w).Encode(map[string]any{"id": 7})
		default:
			w.Write([]byte("[]"))
		}
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	ctx := context.Background()

	done := true
	if _, err := c.UpdateTask(ctx, 7, TaskPatch{IsDone: &done}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if last.method != http.MethodPatch || last.path != "/tasks/7" {
		t.Fatalf("unexpected routing %+v", last)
	}

	if err := c.DeleteTask(ctx, 7); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if last.method != http.MethodDelete || last.path != "/tasks/7" {
		t.Fatalf("unexpected routing %+v", last)
	}

	if _, err := c.ListOpportunities(ctx, "gig"); err != nil {
		t.Fatalf("list opportunities failed: %v", err)
	}
	if last.path != "/opportunities" || last.query != "category=gig" {
		t.Fatalf("unexpected routing %+v", last)
	}

	if _, err := c.ListTutors(ctx, "CS101"); err != nil {
		t.Fatalf("list tutors failed: %v", err)
	}
	if last.query != "course_code=CS101" {
		t.Fatalf("unexpected routing %+v", last)
	}
}

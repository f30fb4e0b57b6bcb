package api

import (
	"context"
	"net/http"

	"campulse/internal/model"
)

// SignupInput is the payload for account creation.
type SignupInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Level    string `json:"level"`
	Password string `json:"password"`
}

// AuthResponse is returned by both login and signup.
type AuthResponse struct {
	AccessToken string     `json:"access_token"`
	User        model.User `json:"user"`
}

// Signup creates an account and returns the initial token and profile.
func (c *Client) Signup(ctx context.Context, input SignupInput) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", nil, input, &out)
	return out, err
}

// Login exchanges credentials for a bearer token and profile.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	body := map[string]string{"email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &out)
	return out, err
}

// CurrentUser fetches the profile for the persisted token.
func (c *Client) CurrentUser(ctx context.Context) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out)
	return out, err
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"campulse/internal/model"
)

// ListOpportunities fetches opportunities, optionally filtered by category
// on the backend side.
func (c *Client) ListOpportunities(ctx context.Context, category string) ([]model.Opportunity, error) {
	var query url.Values
	if category != "" {
		query = url.Values{"category": {category}}
	}
	var out []model.Opportunity
	err := c.do(ctx, http.MethodGet, "/opportunities", query, nil, &out)
	return out, err
}

// GetOpportunity fetches one opportunity.
func (c *Client) GetOpportunity(ctx context.Context, id int64) (model.Opportunity, error) {
	var out model.Opportunity
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/opportunities/%d", id), nil, nil, &out)
	return out, err
}

// BookmarkOpportunity toggles the server-side bookmark for an opportunity.
func (c *Client) BookmarkOpportunity(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/opportunities/%d/bookmark", id), nil, nil, nil)
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"campulse/internal/model"
)

// ListTutors fetches tutors, optionally filtered by course code on the
// backend side.
func (c *Client) ListTutors(ctx context.Context, courseCode string) ([]model.Tutor, error) {
	var query url.Values
	if courseCode != "" {
		query = url.Values{"course_code": {courseCode}}
	}
	var out []model.Tutor
	err := c.do(ctx, http.MethodGet, "/tutors", query, nil, &out)
	return out, err
}

// GetTutor fetches one tutor.
func (c *Client) GetTutor(ctx context.Context, id int64) (model.Tutor, error) {
	var out model.Tutor
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tutors/%d", id), nil, nil, &out)
	return out, err
}

package api

import (
	"context"
	"fmt"
	"net/http"

	"campulse/internal/model"
)

// TaskInput is the payload for task creation.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TaskType    string `json:"task_type"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date,omitempty"`
}

// TaskPatch is a partial update; nil fields are left untouched by the backend.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	TaskType    *string `json:"task_type,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	IsDone      *bool   `json:"is_done,omitempty"`
}

// ListTasks fetches the full task snapshot for the current user.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	err := c.do(ctx, http.MethodGet, "/tasks", nil, nil, &out)
	return out, err
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, input TaskInput) (model.Task, error) {
	var out model.Task
	err := c.do(ctx, http.MethodPost, "/tasks", nil, input, &out)
	return out, err
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, id int64, patch TaskPatch) (model.Task, error) {
	var out model.Task
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d", id), nil, patch, &out)
	return out, err
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil, nil)
}

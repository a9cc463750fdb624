package marketplace

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/proofmine/proofmine-console/pkg/types"
)

// ListTasks fetches a page of active tasks. It returns the page and the
// total count the backend reported for it.
func (c *Client) ListTasks(ctx context.Context, limit, offset int) ([]types.Task, int64, error) {
	query := url.Values{}
	query.Set("limit", fmt.Sprintf("%d", limit))
	query.Set("offset", fmt.Sprintf("%d", offset))

	var envelope types.TaskListResponse
	if err := c.getJSON(ctx, "/tasks?"+query.Encode(), &envelope); err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	c.logger.Debugf("Fetched %d tasks (total %d)", len(envelope.Tasks), envelope.Total)
	return envelope.Tasks, envelope.Total, nil
}

// GetTask fetches a single task by id. A missing task matches
// ErrTaskNotFound under errors.Is.
func (c *Client) GetTask(ctx context.Context, taskID string) (*types.Task, error) {
	if taskID == "" {
		return nil, fmt.Errorf("task id cannot be empty")
	}

	var envelope types.TaskResponse
	if err := c.getJSON(ctx, "/tasks/"+url.PathEscape(taskID), &envelope); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, apiErr.withSentinel(ErrTaskNotFound)
		}
		return nil, fmt.Errorf("failed to fetch task %s: %w", taskID, err)
	}

	return &envelope.Task, nil
}

// CreateTask posts a new task. The request is validated locally first so an
// invalid form never issues a network request.
func (c *Client) CreateTask(ctx context.Context, req *types.CreateTaskRequest) (*types.Task, error) {
	if req == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}

	var envelope types.TaskResponse
	if err := c.postJSON(ctx, "/tasks/create", req, &envelope); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	c.logger.Infof("Created task %s (%s)", envelope.Task.ID, envelope.Task.Title)
	return &envelope.Task, nil
}

package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/proofmine/proofmine-console/pkg/types"
)

// Health probes the backend. Unlike the task and submission operations the
// probe is idempotent, so it retries transient failures on its own.
func (c *Client) Health(ctx context.Context) (*types.HealthCheckResponse, error) {
	resp, err := c.httpClient.Get(ctx, c.config.BaseURL+"/health")
	if err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warnf("Failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read health response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp.StatusCode, body)
	}

	var health types.HealthCheckResponse
	if err := json.Unmarshal(body, &health); err != nil {
		return nil, fmt.Errorf("failed to unmarshal health response: %w", err)
	}

	return &health, nil
}

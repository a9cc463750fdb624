package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	httppkg "github.com/proofmine/proofmine-console/pkg/http"
	"github.com/proofmine/proofmine-console/pkg/logging"
)

// Client handles communication with the marketplace backend. Task and
// submission operations issue exactly one attempt each so a failed call can
// be retried by the user without ever duplicating a submission; only the
// health probe retries on its own.
type Client struct {
	logger     logging.Logger
	config     Config
	httpClient *httppkg.HTTPClient
}

// Config holds the configuration for the marketplace client
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// NewClient creates a new marketplace client
func NewClient(logger logging.Logger, cfg Config) (*Client, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	httpConfig := httppkg.DefaultHTTPRetryConfig()
	httpConfig.Timeout = cfg.RequestTimeout

	httpClient, err := httppkg.NewHTTPClient(httpConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &Client{
		logger:     logger,
		config:     cfg,
		httpClient: httpClient,
	}, nil
}

// BaseURL returns the backend URL the client talks to
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// getJSON issues a single-attempt GET and decodes the 200 body into out.
// A non-200 response becomes an *APIError.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	return c.decodeResponse(resp, path, out)
}

// postJSON issues a single-attempt POST with a JSON payload and decodes the
// 200 body into out
func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	return c.decodeResponse(resp, path, out)
}

func (c *Client) decodeResponse(resp *http.Response, path string, out interface{}) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warnf("Failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := newAPIError(resp.StatusCode, body)
		c.logger.Debugf("Backend rejected %s: %v", path, apiErr)
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response from %s: %w", path, err)
	}
	return nil
}

// Close closes the HTTP client
func (c *Client) Close() {
	c.httpClient.Close()
}

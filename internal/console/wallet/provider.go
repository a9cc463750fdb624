package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	httppkg "github.com/proofmine/proofmine-console/pkg/http"
	"github.com/proofmine/proofmine-console/pkg/logging"
)

// EnvironmentDescriptor describes a wallet provider environment. An
// environment groups the provider-side settings for one app.
type EnvironmentDescriptor struct {
	EnvironmentID string `json:"environment_id"`
	Name          string `json:"name"`
	// ConnectURL overrides the default hosted connect page when set
	ConnectURL string `json:"connect_url,omitempty"`
}

// ProviderClient talks to the wallet provider's public API. The descriptor
// probe is idempotent and retries on its own.
type ProviderClient struct {
	logger     logging.Logger
	authURL    string
	httpClient *httppkg.HTTPClient
}

// NewProviderClient creates a wallet provider client
func NewProviderClient(logger logging.Logger, authURL string) (*ProviderClient, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if authURL == "" {
		return nil, fmt.Errorf("auth URL cannot be empty")
	}

	// The descriptor probe runs before the connect flow starts, so a dead
	// provider must surface within a couple of seconds, not after the full
	// backoff schedule.
	httpConfig := httppkg.DefaultHTTPRetryConfig()
	httpConfig.RetryConfig.MaxRetries = 2
	httpConfig.RetryConfig.InitialDelay = 500 * time.Millisecond
	httpConfig.RetryConfig.MaxDelay = 2 * time.Second

	httpClient, err := httppkg.NewHTTPClient(httpConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &ProviderClient{
		logger:     logger,
		authURL:    strings.TrimRight(authURL, "/"),
		httpClient: httpClient,
	}, nil
}

// Descriptor fetches the environment descriptor from the provider
func (p *ProviderClient) Descriptor(ctx context.Context, environmentID string) (*EnvironmentDescriptor, error) {
	if environmentID == "" {
		return nil, fmt.Errorf("environment id cannot be empty")
	}

	resp, err := p.httpClient.Get(ctx, p.authURL+"/api/v1/environments/"+url.PathEscape(environmentID))
	if err != nil {
		return nil, fmt.Errorf("failed to reach wallet provider: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			p.logger.Warnf("Failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("wallet environment %s not found", environmentID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wallet provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	var descriptor EnvironmentDescriptor
	if err := json.Unmarshal(body, &descriptor); err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment descriptor: %w", err)
	}

	p.logger.Debugf("Wallet environment %s (%s) is reachable", descriptor.EnvironmentID, descriptor.Name)
	return &descriptor, nil
}

// ConnectURL builds the hosted connect page URL the user opens in a browser
func (p *ProviderClient) ConnectURL(descriptor *EnvironmentDescriptor, environmentID, redirectURI, state string) string {
	base := p.authURL + "/connect"
	if descriptor != nil && descriptor.ConnectURL != "" {
		base = descriptor.ConnectURL
	}

	query := url.Values{}
	query.Set("environment_id", environmentID)
	query.Set("redirect_uri", redirectURI)
	query.Set("state", state)
	return base + "?" + query.Encode()
}

// Close closes the HTTP client
func (p *ProviderClient) Close() {
	p.httpClient.Close()
}

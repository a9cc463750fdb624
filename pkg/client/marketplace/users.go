package marketplace

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/proofmine/proofmine-console/pkg/types"
)

// GetUserReputation fetches the reputation the backend tracks for a wallet.
// A wallet the backend has never seen matches ErrUserNotFound under
// errors.Is.
func (c *Client) GetUserReputation(ctx context.Context, walletAddress string) (*types.Reputation, error) {
	if walletAddress == "" {
		return nil, fmt.Errorf("wallet address cannot be empty")
	}

	var envelope types.ReputationResponse
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(walletAddress)+"/reputation", &envelope); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, apiErr.withSentinel(ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to fetch reputation for %s: %w", walletAddress, err)
	}

	return &types.Reputation{
		Wallet:              envelope.Wallet,
		ReputationScore:     envelope.ReputationScore,
		TotalTasksCompleted: envelope.TotalTasksCompleted,
		TotalRewardsEarned:  envelope.TotalRewardsEarned,
	}, nil
}

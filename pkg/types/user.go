package types

const (
	// ReputationStart is the score the backend assigns to a new wallet
	ReputationStart = 50
	ReputationMin   = 0
	ReputationMax   = 100
)

// Reputation holds a wallet's backend-computed trust metrics
type Reputation struct {
	Wallet              string
	ReputationScore     int
	TotalTasksCompleted int64
	TotalRewardsEarned  float64
}

// DefaultUsername derives the backend's fallback username for a wallet:
// "miner_" followed by the first 8 characters of the address
func DefaultUsername(walletAddress string) string {
	prefix := walletAddress
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return "miner_" + prefix
}

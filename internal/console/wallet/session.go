package wallet

import (
	"time"

	"github.com/proofmine/proofmine-console/pkg/types"
)

// Session is the one canonical record of a connected wallet. Every reader
// goes through the Manager; nothing else touches the session file.
type Session struct {
	WalletAddress string    `json:"wallet_address"`
	Email         string    `json:"email,omitempty"`
	Username      string    `json:"username,omitempty"`
	EnvironmentID string    `json:"environment_id,omitempty"`
	AuthToken     string    `json:"auth_token"`
	ConnectedAt   time.Time `json:"connected_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// IsExpired reports whether the session's token has expired. A session
// without an expiry never expires locally.
func (s *Session) IsExpired() bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(s.ExpiresAt)
}

// IsValid reports whether the session can authenticate requests
func (s *Session) IsValid() bool {
	return s.WalletAddress != "" && !s.IsExpired()
}

// DisplayName returns the username, falling back to the backend's derived
// miner name when the provider supplied none
func (s *Session) DisplayName() string {
	if s.Username != "" {
		return s.Username
	}
	return types.DefaultUsername(s.WalletAddress)
}

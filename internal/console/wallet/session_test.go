package wallet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionValidity(t *testing.T) {
	t.Run("valid until expiry", func(t *testing.T) {
		s := Session{WalletAddress: testWallet, ExpiresAt: time.Now().Add(time.Hour)}
		assert.False(t, s.IsExpired())
		assert.True(t, s.IsValid())
	})

	t.Run("expired session is invalid", func(t *testing.T) {
		s := Session{WalletAddress: testWallet, ExpiresAt: time.Now().Add(-time.Minute)}
		assert.True(t, s.IsExpired())
		assert.False(t, s.IsValid())
	})

	t.Run("no expiry never expires locally", func(t *testing.T) {
		s := Session{WalletAddress: testWallet}
		assert.False(t, s.IsExpired())
		assert.True(t, s.IsValid())
	})

	t.Run("missing wallet is invalid", func(t *testing.T) {
		s := Session{}
		assert.False(t, s.IsValid())
	})
}

func TestSessionDisplayName(t *testing.T) {
	t.Run("provider username wins", func(t *testing.T) {
		s := Session{WalletAddress: testWallet, Username: "miner42"}
		assert.Equal(t, "miner42", s.DisplayName())
	})

	t.Run("falls back to derived miner name", func(t *testing.T) {
		s := Session{WalletAddress: testWallet}
		assert.Equal(t, "miner_0x742d35", s.DisplayName())
	})
}

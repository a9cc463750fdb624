package wallet

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the shape of the wallet provider's session token. The subject
// is the wallet address; email and username are present when the user
// shared them with the provider.
type Claims struct {
	Email         string `json:"email,omitempty"`
	Username      string `json:"username,omitempty"`
	EnvironmentID string `json:"environment_id,omitempty"`
	jwt.RegisteredClaims
}

// IsExpired checks if the token is expired
func (c *Claims) IsExpired() bool {
	if c.ExpiresAt == nil {
		return false
	}
	return time.Now().After(c.ExpiresAt.Time)
}

// DecodeSessionToken decodes a provider session token without verifying its
// signature; that is the provider's and the backend's concern. The console
// reads the claims it needs and enforces expiry locally.
func DecodeSessionToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token cannot be empty")
	}

	token, _, err := new(jwt.Parser).ParseUnverified(tokenString, &Claims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no wallet address")
	}
	if !common.IsHexAddress(claims.Subject) {
		return nil, fmt.Errorf("token subject is not a wallet address: %s", claims.Subject)
	}
	if claims.IsExpired() {
		return nil, fmt.Errorf("token is expired")
	}

	return claims, nil
}

// ChecksumAddress normalizes a hex address to its EIP-55 form
func ChecksumAddress(address string) string {
	return common.HexToAddress(address).Hex()
}

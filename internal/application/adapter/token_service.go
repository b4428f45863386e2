// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// TokenClaims represents the identity resolved from an access token.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}

// TokenService verifies access tokens issued by the identity provider.
// Token issuance, sessions and password handling are outside this module.
type TokenService interface {
	// ValidateAccessToken verifies the token and returns the resolved identity.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}

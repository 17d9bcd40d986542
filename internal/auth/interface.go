package auth

import "beacon/internal/domain/models"

// JWTVerifier verifies bearer tokens for the admin API.
type JWTVerifier interface {
	// VerifyToken validates a JWT and returns its claims.
	// Invalid, expired or badly signed tokens yield domain.ErrUnauthorized.
	VerifyToken(tokenString string) (*models.AccessClaims, error)

	// Close releases any resources held by the verifier.
	Close() error
}

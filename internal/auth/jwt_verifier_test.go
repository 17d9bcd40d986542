package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"beacon/internal/domain"
	"beacon/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVerifier(t *testing.T) (*JWKSVerifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	v := newVerifier(func(*jwt.Token) (interface{}, error) {
		return &key.PublicKey, nil
	}, logger)
	return v, key
}

func sign(t *testing.T, key *rsa.PrivateKey, method jwt.SigningMethod, claims *models.AccessClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims() *models.AccessClaims {
	return &models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		PreferredUsername: "alice",
		Email:             "alice@example.com",
		Role:              "authenticated",
	}
}

func TestVerifyToken_Valid(t *testing.T) {
	v, key := testVerifier(t)

	claims, err := v.VerifyToken(sign(t, key, jwt.SigningMethodRS256, validClaims()))
	require.NoError(t, err)

	user := claims.User()
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestVerifyToken_Rejected(t *testing.T) {
	v, key := testVerifier(t)

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	noSubject := validClaims()
	noSubject.Subject = ""

	anon := validClaims()
	anon.Role = "anon"

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "expired", token: sign(t, key, jwt.SigningMethodRS256, expired)},
		{name: "missing subject", token: sign(t, key, jwt.SigningMethodRS256, noSubject)},
		{name: "anonymous role", token: sign(t, key, jwt.SigningMethodRS256, anon)},
		{name: "disallowed algorithm", token: sign(t, key, jwt.SigningMethodRS512, validClaims())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.VerifyToken(tt.token)
			assert.True(t, errors.Is(err, domain.ErrUnauthorized), "got %v", err)
		})
	}
}

func TestNewJWTVerifier_EmptyURL(t *testing.T) {
	_, err := NewJWTVerifier("", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestAccessClaims_UsernameFallback(t *testing.T) {
	c := &models.AccessClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u-9"}, Email: "bob@example.com"}
	assert.Equal(t, "bob@example.com", c.User().Username)

	c.Email = ""
	assert.Equal(t, "u-9", c.User().Username)
}

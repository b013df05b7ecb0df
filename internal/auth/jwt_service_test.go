package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapi/internal/model"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")
	userID := uuid.New()

	token, err := svc.Generate(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, model.TokenAccessAuth, claims.Access)
}

func TestTokenService_UniquePerCall(t *testing.T) {
	svc := NewTokenService("test-secret")
	userID := uuid.New()

	first, err := svc.Generate(userID)
	require.NoError(t, err)
	second, err := svc.Generate(userID)
	require.NoError(t, err)

	// Logout removes tokens by value equality, so two sessions of the same
	// user must never share a token string.
	assert.NotEqual(t, first, second)
}

func TestTokenService_Verify_Failures(t *testing.T) {
	svc := NewTokenService("test-secret")
	other := NewTokenService("other-secret")
	userID := uuid.New()

	token, err := svc.Generate(userID)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "wrong secret", token: token},
		{name: "malformed token", token: "not-a-token"},
		{name: "empty token", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := other.Verify(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestTokenService_Verify_RejectsWrongAccessTag(t *testing.T) {
	svc := NewTokenService("test-secret")

	claims := &Claims{
		UserID: uuid.New().String(),
		Access: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ID: uuid.New().String(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestTokenService_Verify_RejectsMalformedUserID(t *testing.T) {
	svc := NewTokenService("test-secret")

	claims := &Claims{
		UserID: "123",
		Access: model.TokenAccessAuth,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

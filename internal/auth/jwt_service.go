package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"todoapi/internal/model"
)

// Claims represents the payload of a session token: the owning user id and
// the fixed "auth" access tag. Tokens carry no expiry; a token dies when it
// is removed from its user's token list.
type Claims struct {
	UserID string `json:"user_id"`
	Access string `json:"access"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies session tokens with a process-wide secret.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Generate signs a new auth token for the user. Each call produces a distinct
// token string (unique jti), which logout relies on: removing one session's
// token must not invalidate the user's other sessions.
func (s *TokenService) Generate(userID uuid.UUID) (string, error) {
	claims := &Claims{
		UserID: userID.String(),
		Access: model.TokenAccessAuth,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.New().String(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the signature and payload of a token and returns its claims.
// It does not consult the database; callers decide whether the decoded user
// still exists and still holds the token.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Access != model.TokenAccessAuth {
		return nil, errors.New("unexpected access tag")
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, errors.New("malformed user id in token")
	}

	return claims, nil
}

// Package auth issues and verifies the signed session tokens used as bearer credentials.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims — стандартные утверждения JWT плюс идентификатор пользователя.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenManager mints and verifies HS256 tokens. It holds no session state:
// validity is fully determined by the signature and the expiry.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the lifetime of issued tokens.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Generate returns a signed token for userID that expires after the configured TTL.
func (m *TokenManager) Generate(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("empty user id")
	}
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Parse verifies tokenString and returns the user id it carries.
// Any failure (malformed, foreign key, wrong algorithm, expired) is ErrInvalidToken.
func (m *TokenManager) Parse(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

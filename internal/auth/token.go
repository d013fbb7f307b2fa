package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenClaims represents the claims in a signed token.
type TokenClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenManager mints and verifies signed, time-limited tokens.
type TokenManager struct {
	secretKey []byte
	duration  time.Duration
}

// NewTokenManager creates a TokenManager signing with secretKey. Tokens are
// valid for duration from issuance.
func NewTokenManager(secretKey string, duration time.Duration) *TokenManager {
	return &TokenManager{
		secretKey: []byte(secretKey),
		duration:  duration,
	}
}

// Duration returns the validity window of issued tokens.
func (tm *TokenManager) Duration() time.Duration {
	return tm.duration
}

// GenerateToken creates a new signed token asserting userID.
func (tm *TokenManager) GenerateToken(userID int64) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.duration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secretKey)
}

// ValidateToken checks signature and expiry and returns the embedded claims.
// A token at or past its expiry is rejected.
func (tm *TokenManager) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tm.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

package utils

import (
	"fmt"
	"time"

	"counsel-api/core/config"
	"counsel-api/core/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenClaims struct {
	CounselorID uuid.UUID `json:"counselor_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Scope       string    `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateToken mints a signed JWT for the counselor admin surface.
func GenerateToken(counselorID uuid.UUID, email, name, scope string) (string, error) {
	cfg, ok := config.GetSafe()
	if !ok {
		return "", fmt.Errorf("config not initialized")
	}

	ttl := constants.AccessTokenTTL
	if scope == constants.ScopeTokenRefresh {
		ttl = constants.RefreshTokenTTL
	}

	now := time.Now()
	claims := TokenClaims{
		CounselorID: counselorID,
		Email:       email,
		Name:        name,
		Scope:       scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   counselorID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.App.JWTKey))
}

// ParseToken validates a signed JWT and returns its claims.
func ParseToken(tokenString string) (*TokenClaims, error) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, fmt.Errorf("config not initialized")
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.App.JWTKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

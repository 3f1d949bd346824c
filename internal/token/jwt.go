package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/studybuddy/studybuddy-server/internal/model"
)

// Claims represents JWT claims with token type. The subject is the username.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	now       func() time.Time
}

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string) model.TokenManager {
	return &JWT{secretKey: secretKey, now: time.Now}
}

const (
	accessTTL  = 12 * time.Hour
	typeAccess = "access"
)

// GenerateAccessToken creates an access token naming username.
func (j *JWT) GenerateAccessToken(username string) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTTL)),
		},
		TokenType: typeAccess,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ParseAccessToken validates and extracts the username from an access token.
func (j *JWT) ParseAccessToken(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithTimeFunc(j.now))
	if err != nil {
		return "", fmt.Errorf("failed to parse access token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("access token is invalid")
	}
	if claims.TokenType != typeAccess {
		return "", fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("access token has no subject")
	}
	return claims.Subject, nil
}

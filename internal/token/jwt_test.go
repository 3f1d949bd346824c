package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestJWT_AccessToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret")

	access, err := j.GenerateAccessToken("alice")
	require.NoError(t, err)
	got, err := j.ParseAccessToken(access)
	require.NoError(t, err)
	require.Equal(t, "alice", got)
}

func TestJWT_WrongSecret(t *testing.T) {
	access, err := NewJWT("secret").GenerateAccessToken("alice")
	require.NoError(t, err)

	_, err = NewJWT("other").ParseAccessToken(access)
	require.Error(t, err)
}

func TestJWT_TokenType_Mismatch(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
		TokenType:        "refresh",
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWT("secret").ParseAccessToken(signed)
	require.Error(t, err)
}

func TestJWT_ExpiryValidation(t *testing.T) {
	now := time.Now()
	j := &JWT{secretKey: "secret", now: func() time.Time { return now }}

	access, err := j.GenerateAccessToken("alice")
	require.NoError(t, err)
	_, err = j.ParseAccessToken(access)
	require.NoError(t, err)

	now = now.Add(accessTTL + time.Minute)
	_, err = j.ParseAccessToken(access)
	require.Error(t, err)
}

func TestJWT_Garbage(t *testing.T) {
	_, err := NewJWT("secret").ParseAccessToken("not-a-token")
	require.Error(t, err)
}

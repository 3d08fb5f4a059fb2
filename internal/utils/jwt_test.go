package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseClaims(t *testing.T, token, secret string) jwt.MapClaims {
	t.Helper()
	tok, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)
	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestNewAccessTokenClaims(t *testing.T) {
	mid := uint64(12)
	at, err := NewAccessToken("s3cret", 5, "MEMBER", &mid, 15)
	require.NoError(t, err)

	claims := parseClaims(t, at.Token, "s3cret")
	assert.Equal(t, float64(5), claims["sub"])
	assert.Equal(t, "MEMBER", claims["role"])
	assert.Equal(t, float64(12), claims["member_id"])
	assert.InDelta(t, time.Now().UTC().Add(15*time.Minute).Unix(), claims["exp"].(float64), 5)
}

func TestNewAccessTokenWithoutMemberID(t *testing.T) {
	at, err := NewAccessToken("s3cret", 1, "ADMIN", nil, 15)
	require.NoError(t, err)

	claims := parseClaims(t, at.Token, "s3cret")
	_, present := claims["member_id"]
	assert.False(t, present, "staff tokens carry no member_id claim")
}

func TestNewRefreshToken(t *testing.T) {
	rt, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96)
	assert.True(t, rt.Exp.After(time.Now().UTC().Add(6*24*time.Hour)))

	other, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.NotEqual(t, rt.Raw, other.Raw)
}

func TestHashRefreshRawIsStable(t *testing.T) {
	h1 := HashRefreshRaw("abc")
	h2 := HashRefreshRaw("abc")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, HashRefreshRaw("abd"))
}

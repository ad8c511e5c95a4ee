package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessToken(t *testing.T) {
	tok, err := NewAccessToken("s3cret", "u-1", "ORGANIZER", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Exp, 5*time.Second)

	parsed, err := jwt.Parse(tok.Token, func(*jwt.Token) (interface{}, error) { return []byte("s3cret"), nil })
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "u-1", claims["sub"])
	assert.Equal(t, "ORGANIZER", claims["role"])
}

func TestNewAccessTokenWithoutRole(t *testing.T) {
	tok, err := NewAccessToken("s3cret", "u-1", "", time.Minute)
	require.NoError(t, err)
	parsed, err := jwt.Parse(tok.Token, func(*jwt.Token) (interface{}, error) { return []byte("s3cret"), nil })
	require.NoError(t, err)
	_, has := parsed.Claims.(jwt.MapClaims)["role"]
	assert.False(t, has)
}

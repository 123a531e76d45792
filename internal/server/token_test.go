package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	signed, err := generateToken("vetfinder-test", "u1", time.Hour, "key")
	require.NoError(t, err)

	uid, err := parseToken(signed, "key", "vetfinder-test")
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)
}

func TestToken_WrongKeyRejected(t *testing.T) {
	signed, err := generateToken("vetfinder-test", "u1", time.Hour, "key")
	require.NoError(t, err)

	_, err = parseToken(signed, "other-key", "vetfinder-test")
	require.Error(t, err)
}

func TestToken_WrongIssuerRejected(t *testing.T) {
	signed, err := generateToken("someone-else", "u1", time.Hour, "key")
	require.NoError(t, err)

	_, err = parseToken(signed, "key", "vetfinder-test")
	require.Error(t, err)
}

func TestToken_ExpiredRejected(t *testing.T) {
	signed, err := generateToken("vetfinder-test", "u1", -time.Minute, "key")
	require.NoError(t, err)

	_, err = parseToken(signed, "key", "vetfinder-test")
	require.Error(t, err)
}

func TestToken_InvalidParams(t *testing.T) {
	_, err := generateToken("", "u1", time.Hour, "key")
	require.Error(t, err)

	_, err = generateToken("iss", "", time.Hour, "key")
	require.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	token, err := parseBearerToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = parseBearerToken("abc")
	require.ErrorIs(t, err, ErrInvalidAuthorizationHeader)

	_, err = parseBearerToken("Bearer ")
	require.Error(t, err)
}

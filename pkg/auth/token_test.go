package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/glambook/glambook-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "glambook-test",
	ExpirationMinutes: 60,
}

func TestMintAndParseRoundTrip(t *testing.T) {
	signed, err := MintAccessToken(testJWTConfig, time.Now(), AccessTokenPayload{
		VendorID: 22,
		Email:    "A@X.com",
		Role:     RoleVendor,
	})
	require.NoError(t, err)

	claims, err := ParseAccessToken(testJWTConfig, signed)
	require.NoError(t, err)
	assert.Equal(t, uint64(22), claims.VendorID)
	assert.Equal(t, "a@x.com", claims.Email, "email is normalized at mint time")
	assert.Equal(t, RoleVendor, claims.Role)
	assert.Equal(t, "22", claims.Subject)
}

func TestMintRejectsInvalidPayload(t *testing.T) {
	_, err := MintAccessToken(testJWTConfig, time.Now(), AccessTokenPayload{Email: "a@x.com"})
	require.Error(t, err, "vendor id required")

	_, err = MintAccessToken(testJWTConfig, time.Now(), AccessTokenPayload{VendorID: 1})
	require.Error(t, err, "email required")

	_, err = MintAccessToken(testJWTConfig, time.Now(), AccessTokenPayload{VendorID: 1, Email: "a@x.com", Role: "owner"})
	require.Error(t, err, "unknown role")
}

func TestParseRejectsExpiredToken(t *testing.T) {
	signed, err := MintAccessToken(testJWTConfig, time.Now().Add(-2*time.Hour), AccessTokenPayload{
		VendorID: 7,
		Email:    "b@y.com",
	})
	require.NoError(t, err)

	_, err = ParseAccessToken(testJWTConfig, signed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	other := testJWTConfig
	other.Issuer = "someone-else"
	signed, err := MintAccessToken(other, time.Now(), AccessTokenPayload{VendorID: 7, Email: "b@y.com"})
	require.NoError(t, err)

	_, err = ParseAccessToken(testJWTConfig, signed)
	require.Error(t, err)
}

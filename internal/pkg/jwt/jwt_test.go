package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken("member-1", "MV-10001", "secret", 15)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "member-1", claims.MemberID)
	assert.Equal(t, "MV-10001", claims.MemberNumber)
	assert.Equal(t, "motorvault", claims.Issuer)
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken("member-1", "MV-10001", "secret", 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateExpiredToken(t *testing.T) {
	token, err := GenerateAccessToken("member-1", "MV-10001", "secret", -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateGarbage(t *testing.T) {
	_, err := ValidateAccessToken("not-a-token", "secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

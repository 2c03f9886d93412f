package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtTestSecret = "jwt-test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(7, "user@example.com", "agent", jwtTestSecret, 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, jwtTestSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "agent", claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(7, "user@example.com", "user", jwtTestSecret, 60)
	require.NoError(t, err)

	_, err = ValidateToken(token, "another-secret")
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken(7, "user@example.com", "user", jwtTestSecret, -1)
	require.NoError(t, err)

	_, err = ValidateToken(token, jwtTestSecret)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", jwtTestSecret)
	assert.Error(t, err)
}

func TestGenerateAndValidateRefreshToken(t *testing.T) {
	token, err := GenerateRefreshToken(9, jwtTestSecret, 30)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, jwtTestSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.UserID)
}

func TestValidateRefreshToken_WrongSecret(t *testing.T) {
	token, err := GenerateRefreshToken(9, jwtTestSecret, 30)
	require.NoError(t, err)

	_, err = ValidateRefreshToken(token, "another-secret")
	assert.Error(t, err)
}

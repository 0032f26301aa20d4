package utils

import (
	"testing"

	"lce-project/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("u1", "user@lloyds.in", models.LevelL1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "user@lloyds.in", claims.Email)
	assert.Equal(t, models.LevelL1, claims.Level)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	require.Error(t, err)

	token, err := GenerateToken("u1", "user@lloyds.in", models.LevelL1)
	require.NoError(t, err)
	_, err = ValidateToken(token + "tampered")
	require.Error(t, err)
}

func TestPasscodeHashing(t *testing.T) {
	hash, err := HashPasscode("1234")
	require.NoError(t, err)
	assert.NotEqual(t, "1234", hash)
	assert.True(t, CheckPasscode(hash, "1234"))
	assert.False(t, CheckPasscode(hash, "4321"))
}

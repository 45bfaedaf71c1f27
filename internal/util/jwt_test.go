package util

import (
	"testing"
	"time"

	"tiku_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{
		Username: "student01",
		Role:     model.Student,
	}
	user.ID = 42
	secret := "test-secret-for-jwt-roundtrip-checks"

	token, err := GenerateJWT(user, secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "student01", claims.Username)
	assert.Equal(t, model.Student, claims.Role)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	user := &model.User{Username: "u", Role: model.Student}
	user.ID = 1

	token, err := GenerateJWT(user, "correct-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "wrong-secret")
	assert.Error(t, err)
}

func TestParseJWT_Expired(t *testing.T) {
	user := &model.User{Username: "u", Role: model.Student}
	user.ID = 1

	token, err := GenerateJWT(user, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret")
	assert.Error(t, err)
}

package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "healthledger/pkg/domain-errors"
)

func newTestService() *Service {
	return NewService("test-signing-key", "healthledger", "healthledger-api")
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateAccessToken("dr-bob", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "dr-bob", claims.PersonID)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateAccessToken("dr-bob", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
}

func TestValidateTokenSignedWithOtherKey(t *testing.T) {
	svc := newTestService()
	other := NewService("a-different-key", "healthledger", "healthledger-api")

	token, err := other.GenerateAccessToken("dr-bob", time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
}

func TestValidateGarbageToken(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
}

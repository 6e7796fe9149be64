package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndValidate(t *testing.T) {
	manager, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	user := &User{ID: "user-1", Email: "ana@example.com", IsAdmin: true}

	token, expiresAt, err := manager.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	issuer, err := NewTokenManager("secret-a", time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenManager("secret-b", time.Hour)
	require.NoError(t, err)

	token, _, err := issuer.Issue(&User{ID: "user-1"})
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	var unauthorized UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	manager, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = manager.Validate("not.a.token")
	assert.Error(t, err)
	_, err = manager.Validate("")
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	manager, err := NewTokenManager("test-secret", time.Nanosecond)
	require.NoError(t, err)

	token, _, err := manager.Issue(&User{ID: "user-1"})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = manager.Validate(token)
	assert.Error(t, err)
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	assert.Error(t, err)
}

package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_IssueAndValidate(t *testing.T) {
	manager := NewJWTManager("test-secret-at-least-32-characters!!", "pharmalink-backend", time.Hour)
	userID := uuid.New()

	token, expiresAt, err := manager.Issue(userID, identity.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, identity.RoleAdmin, claims.Role)
}

func TestJWTManager_Validate_WrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-one-that-is-long-enough-xxxx", "pharmalink-backend", time.Hour)
	verifier := NewJWTManager("secret-two-that-is-long-enough-yyyy", "pharmalink-backend", time.Hour)

	token, _, err := issuer.Issue(uuid.New(), identity.RoleSalesRep)
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestJWTManager_Validate_Expired(t *testing.T) {
	manager := NewJWTManager("test-secret-at-least-32-characters!!", "pharmalink-backend", -time.Minute)

	token, _, err := manager.Issue(uuid.New(), identity.RoleSalesRep)
	require.NoError(t, err)

	_, err = manager.Validate(token)
	assert.Error(t, err)
}

func TestJWTManager_Validate_WrongIssuer(t *testing.T) {
	issuer := NewJWTManager("test-secret-at-least-32-characters!!", "someone-else", time.Hour)
	verifier := NewJWTManager("test-secret-at-least-32-characters!!", "pharmalink-backend", time.Hour)

	token, _, err := issuer.Issue(uuid.New(), identity.RoleSalesRep)
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestJWTManager_Validate_Garbage(t *testing.T) {
	manager := NewJWTManager("test-secret-at-least-32-characters!!", "pharmalink-backend", time.Hour)
	_, err := manager.Validate("not.a.token")
	assert.Error(t, err)
}

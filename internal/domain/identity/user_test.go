package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		u, err := NewUser("Ada.Obi@example.com", "+2348012345678", "s3cretpass", "Ada", "Obi", RoleSalesRep)
		require.NoError(t, err)
		assert.Equal(t, "ada.obi@example.com", u.Email, "email should be lowercased")
		assert.True(t, u.Active)
		assert.NotEqual(t, "s3cretpass", u.PasswordHash)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		_, err := NewUser("not-an-email", "", "s3cretpass", "Ada", "Obi", RoleSalesRep)
		assert.Error(t, err)
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := NewUser("ada@example.com", "", "short", "Ada", "Obi", RoleSalesRep)
		assert.Error(t, err)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		_, err := NewUser("ada@example.com", "", "s3cretpass", "Ada", "Obi", Role("superuser"))
		assert.Error(t, err)
	})
}

func TestUser_VerifyPassword(t *testing.T) {
	u, err := NewUser("ada@example.com", "", "s3cretpass", "Ada", "Obi", RoleAdmin)
	require.NoError(t, err)

	assert.True(t, u.VerifyPassword("s3cretpass"))
	assert.False(t, u.VerifyPassword("wrongpass"))
}

func TestUser_ChangePassword(t *testing.T) {
	u, err := NewUser("ada@example.com", "", "s3cretpass", "Ada", "Obi", RoleAdmin)
	require.NoError(t, err)

	require.NoError(t, u.ChangePassword("newpassword1"))
	assert.True(t, u.VerifyPassword("newpassword1"))
	assert.False(t, u.VerifyPassword("s3cretpass"))

	assert.Error(t, u.ChangePassword("tiny"))
}

func TestUser_RecordLogin(t *testing.T) {
	u, err := NewUser("ada@example.com", "", "s3cretpass", "Ada", "Obi", RoleStoreOfficer)
	require.NoError(t, err)

	at := time.Now()
	u.RecordLogin(at)
	require.NotNil(t, u.LastLoginAt)
	assert.Equal(t, at, *u.LastLoginAt)
	assert.Equal(t, "Ada Obi", u.FullName())
}

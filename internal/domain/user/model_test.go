package user

import (
	"testing"

	"folharh/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	u, err := New("amelia", "Amélia dos Santos", RoleManager, "segredo-forte")
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "amelia", u.Username)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "segredo-forte", u.PasswordHash)

	assert.True(t, u.CheckPassword("segredo-forte"))
	assert.False(t, u.CheckPassword("errada"))
}

func TestNew_Validation(t *testing.T) {
	_, err := New("", "Nome", RoleAdmin, "segredo-forte")
	assert.Error(t, err)

	_, err = New("amelia", "Nome", RoleAdmin, "curta")
	assert.Error(t, err)
}

func TestFromEnvelope(t *testing.T) {
	env, err := storage.ParseEnvelope(`{"state":{
		"users":[{"id":"u1","username":"admin","isActive":true}],
		"currentUser":null,
		"isAuthenticated":false
	},"version":2}`)
	require.NoError(t, err)

	users, err := FromEnvelope(env)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
}

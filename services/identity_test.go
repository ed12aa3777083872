package services

import (
	"testing"

	"familygather-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveUpsertsByEmail(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.identity.Resolve(principal("sam@example.com", "Sam"))
	require.NoError(t, err)
	assert.Equal(t, "Sam", first.Name)
	assert.Empty(t, first.HashedPassword)

	again, err := env.identity.Resolve(principal("sam@example.com", "Samuel"))
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Sam", again.Name)

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

package services

import (
	"testing"

	"familygather-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleOfFailsClosed(t *testing.T) {
	env := newTestEnv(t)

	admin := principal("admin@example.com", "Admin")
	member := principal("member@example.com", "Member")
	family := env.familyWith(t, admin, member)

	assert.Equal(t, models.RoleAdmin, env.authz.RoleOf(family.ID, admin.Email))
	assert.Equal(t, models.RoleMember, env.authz.RoleOf(family.ID, member.Email))

	// No membership, no user, no family: all resolve to no role.
	assert.Empty(t, env.authz.RoleOf(family.ID, "stranger@example.com"))
	assert.Empty(t, env.authz.RoleOf(uuid.New(), admin.Email))
	assert.Empty(t, env.authz.RoleOf(uuid.New(), "nobody@example.com"))
}

func TestRequireAdminRejectsMember(t *testing.T) {
	env := newTestEnv(t)

	admin := principal("admin@example.com", "Admin")
	member := principal("member@example.com", "Member")
	family := env.familyWith(t, admin, member)

	require.NoError(t, env.authz.RequireMember(family.ID, member.Email))
	err := env.authz.RequireAdmin(family.ID, member.Email)
	assert.Equal(t, KindAuthorization, kindOf(t, err))
}

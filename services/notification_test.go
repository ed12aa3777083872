package services

import (
	"testing"

	"familygather-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationFailureNeverFailsMutation(t *testing.T) {
	env := newTestEnv(t)

	admin := principal("admin@example.com", "Admin")
	member := principal("member@example.com", "Member")
	family := env.familyWith(t, admin, member)
	event := env.eventIn(t, family, admin, "Picnic")

	env.mailer.fail = true

	rsvp, err := env.rsvps.Upsert(event.ID, member, models.RsvpYes)
	require.NoError(t, err)
	assert.Equal(t, models.RsvpYes, rsvp.Status)

	_, err = env.comments.Create(event.ID, member, "still works")
	require.NoError(t, err)
}

func TestUnconfiguredTransportIsNoop(t *testing.T) {
	env := newTestEnv(t)

	admin := principal("admin@example.com", "Admin")
	member := principal("member@example.com", "Member")
	family := env.familyWith(t, admin, member)
	event := env.eventIn(t, family, admin, "Picnic")

	// Rebuild the services over a dispatcher with no transports at all.
	dispatcher := NewDispatcher(env.db, nil, nil, env.families.log)
	events := NewEventService(env.db, env.authz, dispatcher, env.families.log)
	rsvps := NewRsvpService(env.db, env.authz, dispatcher, events)

	_, err := rsvps.Upsert(event.ID, member, models.RsvpMaybe)
	require.NoError(t, err)
	assert.Empty(t, env.mailer.all())
}

func TestMemberAddedNotifiesOnlyNewMember(t *testing.T) {
	env := newTestEnv(t)

	admin := principal("admin@example.com", "Admin")
	member := principal("member@example.com", "Member")
	family := env.familyWith(t, admin, member)

	bob, err := env.identity.Resolve(principal("bob@example.com", "Bob"))
	require.NoError(t, err)

	_, err = env.families.Invite(family.ID, bob.Email, admin)
	require.NoError(t, err)

	assert.Len(t, env.mailer.to(bob.Email), 1)
	assert.Empty(t, env.mailer.to(member.Email))
	assert.Empty(t, env.mailer.to(admin.Email))
}

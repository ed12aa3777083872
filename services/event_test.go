package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"familygather-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateEventIsMemberLevel(t *testing.T) {
	env := newTestEnv(t)

	admin := principal("admin@example.com", "Admin")
	member := principal("member@example.com", "Member")
	family := env.familyWith(t, admin, member)

	event, err := env.events.Create(family.ID, EventFields{
		Title: "Picnic",
		Host:  "Grandma",
		Date:  time.Now().Add(48 * time.Hour),
		Time:  "12:00 PM",
	}, member)
	require.NoError(t, err)
	assert.Equal(t, family.ID, event.FamilyID)
	require.NotNil(t, event.Family)
	assert.Equal(t, family.FamilyName, event.Family.FamilyName)
}

func TestCreateEventNonMemberForbidden(t *testing.T) {
	env := newTestEnv(t)

	admin := principal("admin@example.com", "Admin")
	family := env.familyWith(t, admin)

	_, err := env.events.Create(family.ID, EventFields{
		Title: "Picnic", Host: "Grandma", Date: time.Now(), Time: "noon",
	}, principal("stranger@example.com", "Stranger"))
	assert.Equal(t, KindAuthorization, kindOf(t, err))

	_, err = env.events.Create(uuid.New(), EventFields{
		Title: "Picnic", Host: "Grandma", Date: time.Now(), Time: "noon",
	}, admin)
	assert.Equal(t, KindNotFound, kindOf(t, err))
}

func TestGetEventDistinguishesForbiddenFromMissing(t *testing.T) {
	env := newTestEnv(t)

	admin := principal("admin@example.com", "Admin")
	family := env.familyWith(t, admin)
	event := env.eventIn(t, family, admin, "Picnic")

	_, err := env.events.Get(event.ID, principal("stranger@example.com", "Stranger"))
	assert.Equal(t, KindAuthorization, kindOf(t, err))

	_, err = env.events.Get(uuid.New(), admin)
	assert.Equal(t, KindNotFound, kindOf(t, err))
}

func TestUpdateEventAdminOnly(t *testing.T) {
	env := newTestEnv(t)

	admin := principal("admin@example.com", "Admin")
	member := principal("member@example.com", "Member")
	family := env.familyWith(t, admin, member)
	event := env.eventIn(t, family, admin, "Picnic")

	_, err := env.events.Update(event.ID, EventFields{
		Title: "Picnic", Host: event.Host, Date: event.Date, Time: "4:00 PM",
	}, member)
	assert.Equal(t, KindAuthorization, kindOf(t, err))
}

func TestUpdateEventNotifiesChanges(t *testing.T) {
	env := newTestEnv(t)

	admin := principal("admin@example.com", "Admin")
	memberB := principal("b@example.com", "Bea")
	memberC := principal("c@example.com", "Cal")
	family := env.familyWith(t, admin, memberB, memberC)
	event := env.eventIn(t, family, admin, "Picnic")

	updated, err := env.events.Update(event.ID, EventFields{
		Title:       event.Title,
		Host:        event.Host,
		Date:        event.Date,
		Time:        "4:00 PM",
		Description: event.Description,
	}, admin)
	require.NoError(t, err)
	assert.Equal(t, "4:00 PM", updated.Time)

	// One notice per member, none to the actor, citing the time change.
	assert.Empty(t, env.mailer.to(admin.Email))
	for _, email := range []string{memberB.Email, memberC.Email} {
		mails := env.mailer.to(email)
		require.Len(t, mails, 1, "expected exactly one update notice for %s", email)
		assert.Contains(t, mails[0].Subject, "Event Update")
		assert.Contains(t, mails[0].Body, "Time changed")
	}

	// A no-op update dispatches nothing.
	env.mailer.reset()
	_, err = env.events.Update(event.ID, EventFields{
		Title:       updated.Title,
		Host:        updated.Host,
		Date:        updated.Date,
		Time:        updated.Time,
		Description: updated.Description,
	}, admin)
	require.NoError(t, err)
	assert.Empty(t, env.mailer.all())
}

func TestDeleteEventCascades(t *testing.T) {
	env := newTestEnv(t)

	admin := principal("admin@example.com", "Admin")
	member := principal("member@example.com", "Member")
	family := env.familyWith(t, admin, member)
	event := env.eventIn(t, family, admin, "Picnic")

	_, err := env.rsvps.Upsert(event.ID, member, models.RsvpYes)
	require.NoError(t, err)
	_, err = env.comments.Create(event.ID, member, "Can't wait!")
	require.NoError(t, err)
	env.mailer.reset()

	require.NoError(t, env.events.Delete(event.ID, admin))

	var rsvps, comments int64
	env.db.Model(&models.Rsvp{}).Where("event_id = ?", event.ID).Count(&rsvps)
	env.db.Model(&models.Comment{}).Where("event_id = ?", event.ID).Count(&comments)
	assert.Zero(t, rsvps)
	assert.Zero(t, comments)

	_, err = env.events.Get(event.ID, admin)
	assert.Equal(t, KindNotFound, kindOf(t, err))

	// Exactly one cancellation notice for the member, citing the old title.
	mails := env.mailer.to(member.Email)
	require.Len(t, mails, 1)
	assert.Contains(t, mails[0].Subject, "Event Cancelled")
	assert.Contains(t, mails[0].Body, "Picnic")
	assert.Empty(t, env.mailer.to(admin.Email))
}

func TestDeleteEventMemberForbidden(t *testing.T) {
	env := newTestEnv(t)

	admin := principal("admin@example.com", "Admin")
	member := principal("member@example.com", "Member")
	family := env.familyWith(t, admin, member)
	event := env.eventIn(t, family, admin, "Picnic")

	err := env.events.Delete(event.ID, member)
	assert.Equal(t, KindAuthorization, kindOf(t, err))
}

// TestDeleteEventIsAtomic injects a failure after the RSVP and comment
// deletes, before the event row delete, and verifies the transaction rolled
// everything back.
func TestDeleteEventIsAtomic(t *testing.T) {
	env := newTestEnv(t)

	admin := principal("admin@example.com", "Admin")
	member := principal("member@example.com", "Member")
	family := env.familyWith(t, admin, member)
	event := env.eventIn(t, family, admin, "Picnic")

	_, err := env.rsvps.Upsert(event.ID, member, models.RsvpYes)
	require.NoError(t, err)
	_, err = env.comments.Create(event.ID, member, "See you there")
	require.NoError(t, err)

	const callbackName = "abort_event_delete"
	err = env.db.Callback().Delete().Before("gorm:delete").Register(callbackName, func(tx *gorm.DB) {
		if tx.Statement.Table == "events" {
			tx.AddError(errors.New("injected failure"))
		}
	})
	require.NoError(t, err)
	defer env.db.Callback().Delete().Remove(callbackName)

	err = env.events.Delete(event.ID, admin)
	require.Error(t, err)

	// Nothing was lost: the RSVP and comment deletes rolled back too.
	var rsvps, comments, events int64
	env.db.Model(&models.Rsvp{}).Where("event_id = ?", event.ID).Count(&rsvps)
	env.db.Model(&models.Comment{}).Where("event_id = ?", event.ID).Count(&comments)
	env.db.Model(&models.Event{}).Where("id = ?", event.ID).Count(&events)
	assert.EqualValues(t, 1, rsvps)
	assert.EqualValues(t, 1, comments)
	assert.EqualValues(t, 1, events)
}

func TestListByFamilyOrdersByDate(t *testing.T) {
	env := newTestEnv(t)

	admin := principal("admin@example.com", "Admin")
	family := env.familyWith(t, admin)

	later, err := env.events.Create(family.ID, EventFields{
		Title: "Reunion", Host: "Uncle Joe", Date: time.Now().Add(96 * time.Hour), Time: "noon",
	}, admin)
	require.NoError(t, err)
	sooner, err := env.events.Create(family.ID, EventFields{
		Title: "Picnic", Host: "Grandma", Date: time.Now().Add(24 * time.Hour), Time: "noon",
	}, admin)
	require.NoError(t, err)

	events, err := env.events.ListByFamily(family.ID, admin)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, sooner.ID, events[0].ID)
	assert.Equal(t, later.ID, events[1].ID)

	_, err = env.events.ListByFamily(family.ID, principal("stranger@example.com", "S"))
	assert.Equal(t, KindAuthorization, kindOf(t, err))
}

func TestDiffEventDescribesFieldChanges(t *testing.T) {
	prior := models.Event{
		Title: "Picnic",
		Host:  "Grandma",
		Date:  time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		Time:  "3:00 PM",
	}
	changes := diffEvent(prior, EventFields{
		Title: "BBQ",
		Host:  "Grandma",
		Date:  prior.Date,
		Time:  "5:00 PM",
	})
	require.Len(t, changes, 2)
	assert.True(t, strings.HasPrefix(changes[0], "Title changed"))
	assert.True(t, strings.HasPrefix(changes[1], "Time changed"))
}

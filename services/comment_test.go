package services

import (
	"testing"
	"time"

	"familygather-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRejectsBlankContent(t *testing.T) {
	env := newTestEnv(t)

	admin := principal("admin@example.com", "Admin")
	family := env.familyWith(t, admin)
	event := env.eventIn(t, family, admin, "Picnic")

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := env.comments.Create(event.ID, admin, content)
		assert.Equal(t, KindValidation, kindOf(t, err))
	}

	var count int64
	env.db.Model(&models.Comment{}).Count(&count)
	assert.Zero(t, count)
}

func TestCommentsListNewestFirst(t *testing.T) {
	env := newTestEnv(t)

	admin := principal("admin@example.com", "Admin")
	member := principal("member@example.com", "Member")
	family := env.familyWith(t, admin, member)
	event := env.eventIn(t, family, admin, "Picnic")

	older, err := env.comments.Create(event.ID, admin, "Who's bringing dessert?")
	require.NoError(t, err)
	require.NoError(t, env.db.Model(&models.Comment{}).
		Where("id = ?", older.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	newer, err := env.comments.Create(event.ID, member, "I'll bring pie")
	require.NoError(t, err)

	comments, err := env.comments.List(event.ID, member)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, newer.ID, comments[0].ID)
	assert.Equal(t, older.ID, comments[1].ID)
	assert.Equal(t, "member@example.com", comments[0].User.Email)
}

func TestCommentNotifiesOthersOnly(t *testing.T) {
	env := newTestEnv(t)

	admin := principal("admin@example.com", "Admin")
	member := principal("member@example.com", "Member")
	family := env.familyWith(t, admin, member)
	event := env.eventIn(t, family, admin, "Picnic")

	_, err := env.comments.Create(event.ID, member, "Can we move it to Sunday?")
	require.NoError(t, err)

	mails := env.mailer.to(admin.Email)
	require.Len(t, mails, 1)
	assert.Contains(t, mails[0].Body, "Can we move it to Sunday?")
	assert.Empty(t, env.mailer.to(member.Email))
}

func TestCommentNonMemberForbidden(t *testing.T) {
	env := newTestEnv(t)

	admin := principal("admin@example.com", "Admin")
	family := env.familyWith(t, admin)
	event := env.eventIn(t, family, admin, "Picnic")

	_, err := env.comments.Create(event.ID, principal("stranger@example.com", "S"), "hi")
	assert.Equal(t, KindAuthorization, kindOf(t, err))

	_, err = env.comments.List(event.ID, principal("stranger@example.com", "S"))
	assert.Equal(t, KindAuthorization, kindOf(t, err))
}

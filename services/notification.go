package services

import (
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"familygather-backend/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Mailer is the outbound email transport. A nil Mailer disables email.
type Mailer interface {
	Send(toEmail, toName, subject, htmlBody string) error
}

// Pusher is the optional push transport. A nil Pusher disables push.
type Pusher interface {
	Push(deviceToken, title, body string, data map[string]string) error
}

// Dispatcher fans notifications out to family members, excluding the acting
// user. Sends run concurrently and are awaited, but failures are only logged;
// a notification never fails the mutation that triggered it.
type Dispatcher struct {
	db     *gorm.DB
	mailer Mailer
	pusher Pusher
	log    *logrus.Logger
}

func NewDispatcher(db *gorm.DB, mailer Mailer, pusher Pusher, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{db: db, mailer: mailer, pusher: pusher, log: log}
}

// RsvpSet notifies the family that a member responded to an event.
func (d *Dispatcher) RsvpSet(event models.Event, actor models.User, status string) {
	subject := fmt.Sprintf("New RSVP for %s", event.Title)
	body := fmt.Sprintf(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>New RSVP Update</h2>
	<p>%s has responded "%s" to the event "%s".</p>
	<p>Log in to view all responses and event details.</p>
</div>`, html.EscapeString(actor.Name), status, html.EscapeString(event.Title))

	pushBody := fmt.Sprintf("%s responded %s to %s", actor.Name, status, event.Title)
	d.fanOut(event.FamilyID, actor.Email, subject, body, pushBody, map[string]string{
		"type":    "rsvp",
		"eventId": event.ID.String(),
	})
}

// CommentAdded notifies the family about a new comment on an event.
func (d *Dispatcher) CommentAdded(event models.Event, actor models.User, content string) {
	subject := fmt.Sprintf("New Comment on %s", event.Title)
	body := fmt.Sprintf(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>New Comment</h2>
	<p>%s commented on the event "%s":</p>
	<blockquote style="border-left: 4px solid #e5e7eb; margin: 1.5em 0; padding-left: 1em;">
		%s
	</blockquote>
	<p>Log in to view all comments and respond.</p>
</div>`, html.EscapeString(actor.Name), html.EscapeString(event.Title), html.EscapeString(content))

	pushBody := fmt.Sprintf("%s commented on %s", actor.Name, event.Title)
	d.fanOut(event.FamilyID, actor.Email, subject, body, pushBody, map[string]string{
		"type":    "comment",
		"eventId": event.ID.String(),
	})
}

// EventUpdated notifies the family with the list of changed fields.
func (d *Dispatcher) EventUpdated(event models.Event, actorEmail string, changes []string) {
	items := make([]string, 0, len(changes))
	for _, change := range changes {
		items = append(items, "<li>"+html.EscapeString(change)+"</li>")
	}

	subject := fmt.Sprintf("Event Update: %s", event.Title)
	body := fmt.Sprintf(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>Event Update</h2>
	<p>The event "%s" has been updated:</p>
	<ul style="margin: 1.5em 0;">%s</ul>
	<p>Log in to view the complete event details.</p>
</div>`, html.EscapeString(event.Title), strings.Join(items, ""))

	pushBody := fmt.Sprintf("The event %s has been updated", event.Title)
	d.fanOut(event.FamilyID, actorEmail, subject, body, pushBody, map[string]string{
		"type":    "event_updated",
		"eventId": event.ID.String(),
	})
}

// EventDeleted notifies the family that an event was cancelled. Title and
// date come from the caller, captured before the rows were deleted.
func (d *Dispatcher) EventDeleted(familyID uuid.UUID, actorEmail, title string, date time.Time) {
	subject := fmt.Sprintf("Event Cancelled: %s", title)
	body := fmt.Sprintf(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>Event Cancelled</h2>
	<p>The event "%s" scheduled for %s has been cancelled.</p>
	<p>Contact the event organizer for more information.</p>
</div>`, html.EscapeString(title), date.Format("January 2, 2006"))

	pushBody := fmt.Sprintf("The event %s has been cancelled", title)
	d.fanOut(familyID, actorEmail, subject, body, pushBody, map[string]string{
		"type": "event_deleted",
	})
}

// MemberAdded notifies only the newly added member.
func (d *Dispatcher) MemberAdded(family models.Family, actor, newMember models.User) {
	subject := fmt.Sprintf("You've been added to %s", family.FamilyName)
	body := fmt.Sprintf(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>Welcome to %s</h2>
	<p>%s added you to the family "%s".</p>
	<p>Log in to see upcoming events and RSVP.</p>
</div>`, html.EscapeString(family.FamilyName), html.EscapeString(actor.Name), html.EscapeString(family.FamilyName))

	pushBody := fmt.Sprintf("%s added you to %s", actor.Name, family.FamilyName)
	d.deliver(newMember, subject, body, pushBody, map[string]string{
		"type":     "member_added",
		"familyId": family.ID.String(),
	})
}

// InvitationIssued emails an invite link to an address with no account.
func (d *Dispatcher) InvitationIssued(email, inviterName, familyName, inviteLink string) {
	if d.mailer == nil {
		return
	}

	subject := fmt.Sprintf("%s invited you to join %s", inviterName, familyName)
	body := fmt.Sprintf(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>You're invited!</h2>
	<p>%s invited you to join the family "%s".</p>
	<p><a href="%s">Accept the invitation</a>. The link expires in 7 days.</p>
</div>`, html.EscapeString(inviterName), html.EscapeString(familyName), inviteLink)

	if err := d.mailer.Send(email, "", subject, body); err != nil {
		d.log.WithError(err).WithField("recipient", email).Warn("Failed to send invitation email")
	}
}

// fanOut sends to every family member except the actor.
func (d *Dispatcher) fanOut(familyID uuid.UUID, actorEmail, subject, htmlBody, pushBody string, data map[string]string) {
	if d.mailer == nil && d.pusher == nil {
		return
	}

	var members []models.FamilyMember
	if err := d.db.Where("family_id = ?", familyID).Preload("User").Find(&members).Error; err != nil {
		d.log.WithError(err).Warn("Failed to resolve notification recipients")
		return
	}

	var wg sync.WaitGroup
	for _, member := range members {
		if member.User.Email == "" || member.User.Email == actorEmail {
			continue
		}
		wg.Add(1)
		go func(user models.User) {
			defer wg.Done()
			d.deliver(user, subject, htmlBody, pushBody, data)
		}(member.User)
	}
	wg.Wait()
}

func (d *Dispatcher) deliver(user models.User, subject, htmlBody, pushBody string, data map[string]string) {
	if d.mailer != nil {
		if err := d.mailer.Send(user.Email, user.Name, subject, htmlBody); err != nil {
			d.log.WithError(err).WithField("recipient", user.Email).Warn("Failed to send notification email")
		}
	}
	if d.pusher != nil && user.FCMToken != "" {
		if err := d.pusher.Push(user.FCMToken, subject, pushBody, data); err != nil {
			d.log.WithError(err).WithField("recipient", user.Email).Warn("Failed to send push notification")
		}
	}
}

package services

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"familygather-backend/database"
	"familygather-backend/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// fakeMailer records sends; with fail set it simulates a dead transport.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (m *fakeMailer) Send(toEmail, toName, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("transport down")
	}
	m.sent = append(m.sent, sentMail{To: toEmail, Subject: subject, Body: htmlBody})
	return nil
}

func (m *fakeMailer) all() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sentMail, len(m.sent))
	copy(out, m.sent)
	return out
}

func (m *fakeMailer) to(email string) []sentMail {
	var out []sentMail
	for _, s := range m.all() {
		if s.To == email {
			out = append(out, s)
		}
	}
	return out
}

func (m *fakeMailer) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
}

type testEnv struct {
	db       *gorm.DB
	mailer   *fakeMailer
	authz    *Authorizer
	identity *IdentityService
	families *FamilyService
	events   *EventService
	rsvps    *RsvpService
	comments *CommentService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	log := logrus.New()
	log.SetOutput(io.Discard)

	mailer := &fakeMailer{}
	authz := NewAuthorizer(db)
	dispatcher := NewDispatcher(db, mailer, nil, log)
	events := NewEventService(db, authz, dispatcher, log)

	return &testEnv{
		db:       db,
		mailer:   mailer,
		authz:    authz,
		identity: NewIdentityService(db),
		families: NewFamilyService(db, authz, dispatcher, log),
		events:   events,
		rsvps:    NewRsvpService(db, authz, dispatcher, events),
		comments: NewCommentService(db, authz, dispatcher, events),
	}
}

func principal(email, name string) Principal {
	return Principal{Email: email, Name: name}
}

// familyWith creates a family for admin and adds the extra members.
func (e *testEnv) familyWith(t *testing.T, admin Principal, members ...Principal) models.Family {
	t.Helper()
	family, err := e.families.Create("Test Family", admin)
	require.NoError(t, err)

	for _, p := range members {
		user, err := resolveUser(e.db, p)
		require.NoError(t, err)
		require.NoError(t, e.db.Create(&models.FamilyMember{
			FamilyID: family.ID,
			UserID:   user.ID,
			Role:     models.RoleMember,
		}).Error)
	}
	e.mailer.reset()
	return family
}

func (e *testEnv) eventIn(t *testing.T, family models.Family, creator Principal, title string) models.Event {
	t.Helper()
	event, err := e.events.Create(family.ID, EventFields{
		Title: title,
		Host:  "Grandma",
		Date:  time.Now().Add(72 * time.Hour),
		Time:  "3:00 PM",
	}, creator)
	require.NoError(t, err)
	e.mailer.reset()
	return event
}

func kindOf(t *testing.T, err error) Kind {
	t.Helper()
	require.Error(t, err)
	return KindOf(err)
}

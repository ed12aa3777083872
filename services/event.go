package services

import (
	"errors"
	"fmt"
	"time"

	"familygather-backend/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EventFields are the mutable fields of an event, already parsed.
type EventFields struct {
	Title       string
	Host        string
	Date        time.Time
	Time        string
	Description string
}

type EventService struct {
	db         *gorm.DB
	authz      *Authorizer
	dispatcher *Dispatcher
	log        *logrus.Logger
}

func NewEventService(db *gorm.DB, authz *Authorizer, dispatcher *Dispatcher, log *logrus.Logger) *EventService {
	return &EventService{db: db, authz: authz, dispatcher: dispatcher, log: log}
}

// Create creates an event in a family. Creation is member-level; only update
// and delete are admin-only.
func (s *EventService) Create(familyID uuid.UUID, fields EventFields, principal Principal) (models.Event, error) {
	var family models.Family
	if err := s.db.First(&family, "id = ?", familyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Event{}, ErrNotFound("Family not found")
		}
		return models.Event{}, ErrInternal("Failed to look up family", err)
	}

	if err := s.authz.RequireMember(familyID, principal.Email); err != nil {
		return models.Event{}, err
	}

	event := models.Event{
		FamilyID:    familyID,
		Title:       fields.Title,
		Host:        fields.Host,
		Date:        fields.Date,
		Time:        fields.Time,
		Description: fields.Description,
	}
	if err := s.db.Create(&event).Error; err != nil {
		return models.Event{}, ErrInternal("Failed to create event", err)
	}

	return s.load(event.ID)
}

// Get returns an event with its family and RSVPs. Member only.
func (s *EventService) Get(eventID uuid.UUID, principal Principal) (models.Event, error) {
	event, err := s.find(eventID)
	if err != nil {
		return models.Event{}, err
	}

	if err := s.authz.RequireMember(event.FamilyID, principal.Email); err != nil {
		return models.Event{}, err
	}

	return s.load(eventID)
}

// ListByFamily returns a family's events ordered by date. Member only.
func (s *EventService) ListByFamily(familyID uuid.UUID, principal Principal) ([]models.Event, error) {
	if err := s.authz.RequireMember(familyID, principal.Email); err != nil {
		return nil, err
	}

	var events []models.Event
	err := s.db.Where("family_id = ?", familyID).
		Order("date ASC").
		Preload("Rsvps.User").
		Find(&events).Error
	if err != nil {
		return nil, ErrInternal("Failed to list events", err)
	}
	return events, nil
}

// Update replaces the event's fields. Admin only. A human-readable change
// list is dispatched to the other family members when anything changed.
func (s *EventService) Update(eventID uuid.UUID, fields EventFields, principal Principal) (models.Event, error) {
	event, err := s.find(eventID)
	if err != nil {
		return models.Event{}, err
	}

	if !s.authz.IsAdmin(event.FamilyID, principal.Email) {
		return models.Event{}, ErrForbidden("Only family admins can update events")
	}

	changes := diffEvent(event, fields)

	event.Title = fields.Title
	event.Host = fields.Host
	event.Date = fields.Date
	event.Time = fields.Time
	event.Description = fields.Description
	if err := s.db.Save(&event).Error; err != nil {
		return models.Event{}, ErrInternal("Failed to update event", err)
	}

	if len(changes) > 0 {
		s.dispatcher.EventUpdated(event, principal.Email, changes)
	}

	return s.load(eventID)
}

// Delete removes the event and its RSVPs and comments in one transaction, so
// a failure mid-delete leaves no orphaned rows. Admin only.
func (s *EventService) Delete(eventID uuid.UUID, principal Principal) error {
	event, err := s.find(eventID)
	if err != nil {
		return err
	}

	if !s.authz.IsAdmin(event.FamilyID, principal.Email) {
		return ErrForbidden("Only family admins can delete events")
	}

	// Captured before deletion for the cancellation notice.
	title, date, familyID := event.Title, event.Date, event.FamilyID

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&models.Rsvp{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", eventID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Event{}, "id = ?", eventID).Error
	})
	if err != nil {
		return ErrInternal("Failed to delete event", err)
	}

	s.dispatcher.EventDeleted(familyID, principal.Email, title, date)
	return nil
}

// find loads the bare event, distinguishing not-found from lookup failure.
func (s *EventService) find(eventID uuid.UUID) (models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Event{}, ErrNotFound("Event not found")
		}
		return models.Event{}, ErrInternal("Failed to look up event", err)
	}
	return event, nil
}

// load returns the event with family and RSVP users attached.
func (s *EventService) load(eventID uuid.UUID) (models.Event, error) {
	var event models.Event
	err := s.db.Preload("Family").Preload("Rsvps.User").First(&event, "id = ?", eventID).Error
	if err != nil {
		return models.Event{}, ErrInternal("Failed to load event", err)
	}
	return event, nil
}

func diffEvent(prior models.Event, fields EventFields) []string {
	var changes []string
	if prior.Title != fields.Title {
		changes = append(changes, fmt.Sprintf("Title changed from %q to %q", prior.Title, fields.Title))
	}
	if prior.Host != fields.Host {
		changes = append(changes, fmt.Sprintf("Host changed from %q to %q", prior.Host, fields.Host))
	}
	if !prior.Date.Equal(fields.Date) {
		changes = append(changes, fmt.Sprintf("Date changed from %s to %s",
			prior.Date.Format("January 2, 2006"), fields.Date.Format("January 2, 2006")))
	}
	if prior.Time != fields.Time {
		changes = append(changes, fmt.Sprintf("Time changed from %q to %q", prior.Time, fields.Time))
	}
	if prior.Description != fields.Description {
		changes = append(changes, "Description was updated")
	}
	return changes
}

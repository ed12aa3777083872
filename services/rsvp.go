package services

import (
	"time"

	"familygather-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RsvpService struct {
	db         *gorm.DB
	authz      *Authorizer
	dispatcher *Dispatcher
	events     *EventService
}

func NewRsvpService(db *gorm.DB, authz *Authorizer, dispatcher *Dispatcher, events *EventService) *RsvpService {
	return &RsvpService{db: db, authz: authz, dispatcher: dispatcher, events: events}
}

// Upsert records one RSVP per (event, user) pair, overwriting the status on
// repeat calls. Each call dispatches a notification; there is no dedup.
func (s *RsvpService) Upsert(eventID uuid.UUID, principal Principal, status string) (models.Rsvp, error) {
	if !models.ValidRsvpStatus(status) {
		return models.Rsvp{}, ErrValidation("Status must be one of YES, NO, MAYBE")
	}

	event, err := s.events.find(eventID)
	if err != nil {
		return models.Rsvp{}, err
	}

	if err := s.authz.RequireMember(event.FamilyID, principal.Email); err != nil {
		return models.Rsvp{}, err
	}

	user, err := resolveUser(s.db, principal)
	if err != nil {
		return models.Rsvp{}, err
	}

	rsvp := models.Rsvp{
		EventID: eventID,
		UserID:  user.ID,
		Status:  status,
	}
	// Concurrent upserts for the same pair are serialized by the unique
	// (event_id, user_id) constraint at the store.
	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}),
	}).Create(&rsvp).Error
	if err != nil {
		return models.Rsvp{}, ErrInternal("Failed to save RSVP", err)
	}

	var saved models.Rsvp
	if err := s.db.Preload("User").
		Where("event_id = ? AND user_id = ?", eventID, user.ID).
		First(&saved).Error; err != nil {
		return models.Rsvp{}, ErrInternal("Failed to load RSVP", err)
	}

	s.dispatcher.RsvpSet(event, user, status)
	return saved, nil
}

// List returns all RSVPs for an event. Member only.
func (s *RsvpService) List(eventID uuid.UUID, principal Principal) ([]models.Rsvp, error) {
	event, err := s.events.find(eventID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.RequireMember(event.FamilyID, principal.Email); err != nil {
		return nil, err
	}

	var rsvps []models.Rsvp
	if err := s.db.Preload("User").Where("event_id = ?", eventID).Find(&rsvps).Error; err != nil {
		return nil, ErrInternal("Failed to list RSVPs", err)
	}
	return rsvps, nil
}

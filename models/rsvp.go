package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RsvpYes   = "YES"
	RsvpNo    = "NO"
	RsvpMaybe = "MAYBE"
)

// Rsvp holds one response per (event, user) pair; repeat responses
// overwrite the status.
type Rsvp struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_event_user" json:"eventId"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_event_user" json:"userId"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status    string    `gorm:"not null;size:10" json:"status"` // YES, NO, MAYBE
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Rsvp) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func ValidRsvpStatus(status string) bool {
	switch status {
	case RsvpYes, RsvpNo, RsvpMaybe:
		return true
	}
	return false
}

type RsvpRequest struct {
	Status string `json:"status" binding:"required"`
}

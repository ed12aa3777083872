package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FamilyID    uuid.UUID `gorm:"type:uuid;index" json:"familyId"`
	Family      *Family   `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	Title       string    `gorm:"not null;size:255" json:"title"`
	Host        string    `gorm:"not null;size:100" json:"host"` // display name, not a user reference
	Date        time.Time `json:"date"`
	Time        string    `gorm:"size:50" json:"time"`
	Description string    `json:"description,omitempty"`
	Rsvps       []Rsvp    `gorm:"foreignKey:EventID" json:"rsvps,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Request structs
type CreateEventRequest struct {
	FamilyID    string `json:"familyId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Host        string `json:"host" binding:"required"`
	Date        string `json:"date" binding:"required"` // RFC3339
	Time        string `json:"time" binding:"required"`
	Description string `json:"description"`
}

type UpdateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Host        string `json:"host" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Description string `json:"description"`
}

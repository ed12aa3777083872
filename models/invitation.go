package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invitation is a pending token-based invite for an email with no account yet.
// Re-inviting the same email rotates token and expiry.
type Invitation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FamilyID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_invitation_family_email" json:"familyId"`
	Family    Family    `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	Email     string    `gorm:"size:255;uniqueIndex:idx_invitation_family_email" json:"email"`
	Token     string    `gorm:"uniqueIndex;not null;size:64" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

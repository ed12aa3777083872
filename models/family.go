package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

type Family struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FamilyName  string         `gorm:"not null;size:100" json:"familyName"`
	AdminUserID uuid.UUID      `gorm:"type:uuid" json:"adminUserId"`
	Members     []FamilyMember `gorm:"foreignKey:FamilyID" json:"members,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (f *Family) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type FamilyMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FamilyID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_family_user" json:"familyId"`
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_family_user" json:"userId"`
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role     string    `gorm:"not null;size:20" json:"role"` // ADMIN, MEMBER
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

func (m *FamilyMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Request structs
type CreateFamilyRequest struct {
	FamilyName string `json:"familyName" binding:"required"`
}

type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type AcceptInviteRequest struct {
	Token string `json:"token" binding:"required"`
}

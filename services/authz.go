package services

import (
	"familygather-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Authorizer derives the membership role of a principal within a family.
// Every event/RSVP/comment/invitation operation goes through it before
// touching data. It fails closed: a missing family, missing user or missing
// membership all come back as no role.
type Authorizer struct {
	db *gorm.DB
}

func NewAuthorizer(db *gorm.DB) *Authorizer {
	return &Authorizer{db: db}
}

// RoleOf returns ADMIN, MEMBER, or "" when the principal has no membership.
func (a *Authorizer) RoleOf(familyID uuid.UUID, email string) string {
	var member models.FamilyMember
	err := a.db.
		Joins("JOIN users ON users.id = family_members.user_id").
		Where("family_members.family_id = ? AND users.email = ?", familyID, email).
		First(&member).Error
	if err != nil {
		// Not-found and lookup failures alike deny access.
		return ""
	}
	return member.Role
}

func (a *Authorizer) IsMember(familyID uuid.UUID, email string) bool {
	return a.RoleOf(familyID, email) != ""
}

func (a *Authorizer) IsAdmin(familyID uuid.UUID, email string) bool {
	return a.RoleOf(familyID, email) == models.RoleAdmin
}

func (a *Authorizer) RequireMember(familyID uuid.UUID, email string) error {
	if !a.IsMember(familyID, email) {
		return ErrForbidden("You must be a family member to perform this action")
	}
	return nil
}

func (a *Authorizer) RequireAdmin(familyID uuid.UUID, email string) error {
	if !a.IsAdmin(familyID, email) {
		return ErrForbidden("Only family admins can perform this action")
	}
	return nil
}

package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"familygather-backend/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const invitationTTL = 7 * 24 * time.Hour

type FamilyService struct {
	db         *gorm.DB
	authz      *Authorizer
	dispatcher *Dispatcher
	log        *logrus.Logger
}

func NewFamilyService(db *gorm.DB, authz *Authorizer, dispatcher *Dispatcher, log *logrus.Logger) *FamilyService {
	return &FamilyService{db: db, authz: authz, dispatcher: dispatcher, log: log}
}

// Create creates a family and its creator's ADMIN membership as one atomic
// unit.
func (s *FamilyService) Create(name string, principal Principal) (models.Family, error) {
	var family models.Family

	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := resolveUser(tx, principal)
		if err != nil {
			return err
		}

		family = models.Family{
			FamilyName:  name,
			AdminUserID: user.ID,
		}
		if err := tx.Create(&family).Error; err != nil {
			return ErrInternal("Failed to create family", err)
		}

		member := models.FamilyMember{
			FamilyID: family.ID,
			UserID:   user.ID,
			Role:     models.RoleAdmin,
		}
		if err := tx.Create(&member).Error; err != nil {
			return ErrInternal("Failed to create family membership", err)
		}
		return nil
	})
	if err != nil {
		return models.Family{}, err
	}

	s.db.Preload("Members.User").First(&family, family.ID)
	return family, nil
}

// InviteResult describes the outcome of an invite: either the user was added
// directly, or a token-bearing link was issued for an email with no account.
type InviteResult struct {
	Message    string `json:"message"`
	InviteLink string `json:"inviteLink,omitempty"`
}

// Invite adds an existing user directly as MEMBER, or issues (or rotates) a
// token invitation for an email with no account. Admin only.
func (s *FamilyService) Invite(familyID uuid.UUID, email string, principal Principal) (InviteResult, error) {
	var family models.Family
	if err := s.db.First(&family, "id = ?", familyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InviteResult{}, ErrNotFound("Family not found")
		}
		return InviteResult{}, ErrInternal("Failed to look up family", err)
	}

	if !s.authz.IsAdmin(familyID, principal.Email) {
		return InviteResult{}, ErrForbidden("Only family admins can send invites")
	}

	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		if s.authz.IsMember(familyID, existing.Email) {
			return InviteResult{}, ErrConflict("User is already a member of this family")
		}
		member := models.FamilyMember{
			FamilyID: familyID,
			UserID:   existing.ID,
			Role:     models.RoleMember,
		}
		if err := s.db.Create(&member).Error; err != nil {
			return InviteResult{}, ErrInternal("Failed to add member", err)
		}

		actor, _ := resolveUser(s.db, principal)
		s.dispatcher.MemberAdded(family, actor, existing)
		return InviteResult{Message: "Member added successfully"}, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		token, err := newInviteToken()
		if err != nil {
			return InviteResult{}, ErrInternal("Failed to generate invitation token", err)
		}

		invitation := models.Invitation{
			FamilyID:  familyID,
			Email:     email,
			Token:     token,
			ExpiresAt: time.Now().Add(invitationTTL),
		}
		// Re-inviting the same email rotates token and expiry.
		err = s.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "family_id"}, {Name: "email"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"token":      invitation.Token,
				"expires_at": invitation.ExpiresAt,
				"updated_at": time.Now(),
			}),
		}).Create(&invitation).Error
		if err != nil {
			return InviteResult{}, ErrInternal("Failed to create invitation", err)
		}

		inviteLink := "/invite?token=" + token
		s.dispatcher.InvitationIssued(email, principal.Name, family.FamilyName, inviteLink)
		return InviteResult{
			Message:    "Invitation sent successfully",
			InviteLink: inviteLink,
		}, nil

	default:
		return InviteResult{}, ErrInternal("Failed to look up user", err)
	}
}

// Accept consumes an invitation token: the accepting principal's email must
// match the invited email, the token must not be expired, and the token is
// single-use.
func (s *FamilyService) Accept(token string, principal Principal) (models.FamilyMember, error) {
	var invitation models.Invitation
	if err := s.db.Where("token = ?", token).First(&invitation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.FamilyMember{}, ErrValidation("Invalid invitation")
		}
		return models.FamilyMember{}, ErrInternal("Failed to look up invitation", err)
	}

	if time.Now().After(invitation.ExpiresAt) {
		return models.FamilyMember{}, ErrValidation("Invitation has expired")
	}

	if invitation.Email != principal.Email {
		return models.FamilyMember{}, ErrForbidden("This invitation was sent to a different email address")
	}

	var member models.FamilyMember
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := resolveUser(tx, principal)
		if err != nil {
			return err
		}

		member = models.FamilyMember{
			FamilyID: invitation.FamilyID,
			UserID:   user.ID,
			Role:     models.RoleMember,
		}
		if err := tx.Create(&member).Error; err != nil {
			return ErrInternal("Failed to join family", err)
		}

		if err := tx.Delete(&models.Invitation{}, "token = ?", token).Error; err != nil {
			return ErrInternal("Failed to consume invitation", err)
		}
		return nil
	})
	if err != nil {
		return models.FamilyMember{}, err
	}

	s.db.Preload("User").First(&member, member.ID)
	return member, nil
}

// ListMine returns the families the principal belongs to.
func (s *FamilyService) ListMine(principal Principal) ([]models.Family, error) {
	var families []models.Family
	err := s.db.
		Joins("JOIN family_members ON family_members.family_id = families.id").
		Joins("JOIN users ON users.id = family_members.user_id").
		Where("users.email = ?", principal.Email).
		Order("families.created_at DESC").
		Preload("Members.User").
		Find(&families).Error
	if err != nil {
		return nil, ErrInternal("Failed to list families", err)
	}
	return families, nil
}

// Get returns a family with its members. Member only.
func (s *FamilyService) Get(familyID uuid.UUID, principal Principal) (models.Family, error) {
	var family models.Family
	if err := s.db.Preload("Members.User").First(&family, "id = ?", familyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Family{}, ErrNotFound("Family not found")
		}
		return models.Family{}, ErrInternal("Failed to look up family", err)
	}

	if err := s.authz.RequireMember(familyID, principal.Email); err != nil {
		return models.Family{}, err
	}
	return family, nil
}

// newInviteToken returns a random unguessable invitation token.
func newInviteToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

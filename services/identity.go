package services

import (
	"errors"

	"familygather-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdentityService maps an authenticated principal to a persisted user record,
// creating one on first contact.
type IdentityService struct {
	db *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db}
}

func (s *IdentityService) Resolve(principal Principal) (models.User, error) {
	return resolveUser(s.db, principal)
}

// FindByEmail returns the user for an email. The raw gorm.ErrRecordNotFound
// is passed through so callers can treat a miss as bad credentials.
func (s *IdentityService) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	return user, err
}

// SetPassword attaches a password hash (and display name) to an account,
// turning an identity-provider-only account into a password account.
func (s *IdentityService) SetPassword(userID uuid.UUID, name, hashedPassword string) error {
	err := s.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"name":            name,
		"hashed_password": hashedPassword,
	}).Error
	if err != nil {
		return ErrInternal("Failed to update user", err)
	}
	return nil
}

// resolveUser upserts a user by email. Accounts created here carry an empty
// password hash (identity-provider-only accounts).
func resolveUser(db *gorm.DB, principal Principal) (models.User, error) {
	var user models.User
	err := db.Where("email = ?", principal.Email).First(&user).Error
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return user, ErrInternal("Failed to look up user", err)
	}

	user = models.User{
		Email: principal.Email,
		Name:  principal.Name,
	}
	if createErr := db.Create(&user).Error; createErr != nil {
		// Lost a create race on the unique email; re-read.
		if readErr := db.Where("email = ?", principal.Email).First(&user).Error; readErr == nil {
			return user, nil
		}
		return user, ErrInternal("Failed to create user", createErr)
	}
	return user, nil
}

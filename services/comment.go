package services

import (
	"strings"

	"familygather-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentService struct {
	db         *gorm.DB
	authz      *Authorizer
	dispatcher *Dispatcher
	events     *EventService
}

func NewCommentService(db *gorm.DB, authz *Authorizer, dispatcher *Dispatcher, events *EventService) *CommentService {
	return &CommentService{db: db, authz: authz, dispatcher: dispatcher, events: events}
}

// Create appends a comment to an event. Member only; blank content is
// rejected.
func (s *CommentService) Create(eventID uuid.UUID, principal Principal, content string) (models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, ErrValidation("Comment cannot be empty")
	}

	event, err := s.events.find(eventID)
	if err != nil {
		return models.Comment{}, err
	}

	if err := s.authz.RequireMember(event.FamilyID, principal.Email); err != nil {
		return models.Comment{}, err
	}

	user, err := resolveUser(s.db, principal)
	if err != nil {
		return models.Comment{}, err
	}

	comment := models.Comment{
		EventID: eventID,
		UserID:  user.ID,
		Content: content,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return models.Comment{}, ErrInternal("Failed to create comment", err)
	}
	comment.User = user

	s.dispatcher.CommentAdded(event, user, content)
	return comment, nil
}

// List returns an event's comments, newest first. Member only.
func (s *CommentService) List(eventID uuid.UUID, principal Principal) ([]models.Comment, error) {
	event, err := s.events.find(eventID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.RequireMember(event.FamilyID, principal.Email); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err = s.db.Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, ErrInternal("Failed to list comments", err)
	}
	return comments, nil
}

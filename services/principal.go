package services

import "github.com/google/uuid"

// Principal is the authenticated identity making a request, resolved from the
// session token.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

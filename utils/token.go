package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GenerateToken creates a session JWT for the user.
func GenerateToken(secret string, userID uuid.UUID, email, name string) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = userID.String()
	claims["email"] = email
	claims["name"] = name
	claims["exp"] = time.Now().Add(7 * 24 * time.Hour).Unix()
	return token.SignedString([]byte(secret))
}

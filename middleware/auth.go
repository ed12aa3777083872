package middleware

import (
	"fmt"
	"strings"

	"familygather-backend/services"
	"familygather-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthRequired validates the Bearer session token and stores the principal in
// the request context. Missing or invalid tokens are 401; role checks happen
// later, in the services.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			utils.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.Unauthorized(c, "Invalid token claims")
			c.Abort()
			return
		}

		idStr, _ := claims["user_id"].(string)
		userID, err := uuid.Parse(idStr)
		email, _ := claims["email"].(string)
		if err != nil || email == "" {
			utils.Unauthorized(c, "Invalid token claims")
			c.Abort()
			return
		}
		name, _ := claims["name"].(string)

		c.Set("principal", services.Principal{
			UserID: userID,
			Email:  email,
			Name:   name,
		})
		c.Next()
	}
}

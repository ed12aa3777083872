package utils

import (
	"net/http"

	"familygather-backend/services"

	"github.com/gin-gonic/gin"
)

// ErrorBody writes the API error shape.
func ErrorBody(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

func BadRequest(c *gin.Context, message string) {
	ErrorBody(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorBody(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorBody(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	ErrorBody(c, http.StatusNotFound, message)
}

func InternalError(c *gin.Context, message string) {
	ErrorBody(c, http.StatusInternalServerError, message)
}

// RespondError maps a service error to its HTTP status.
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch services.KindOf(err) {
	case services.KindAuthentication:
		status = http.StatusUnauthorized
	case services.KindAuthorization:
		status = http.StatusForbidden
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindValidation, services.KindConflict:
		status = http.StatusBadRequest
	}
	ErrorBody(c, status, services.MessageOf(err))
}

// CurrentPrincipal reads the authenticated principal set by the auth
// middleware.
func CurrentPrincipal(c *gin.Context) (services.Principal, bool) {
	value, exists := c.Get("principal")
	if !exists {
		return services.Principal{}, false
	}
	principal, ok := value.(services.Principal)
	return principal, ok
}

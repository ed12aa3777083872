package handlers

import (
	"net/http"

	"familygather-backend/models"
	"familygather-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /events/:eventId/comments
func (h *Handler) CreateComment(c *gin.Context) {
	principal, ok := utils.CurrentPrincipal(c)
	if !ok {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		utils.BadRequest(c, "Invalid event ID")
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Comment cannot be empty")
		return
	}

	comment, err := h.comments.Create(eventID, principal, req.Content)
	if err != nil {
		h.logInternal(err)
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// GET /events/:eventId/comments
func (h *Handler) GetComments(c *gin.Context) {
	principal, ok := utils.CurrentPrincipal(c)
	if !ok {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		utils.BadRequest(c, "Invalid event ID")
		return
	}

	comments, err := h.comments.List(eventID, principal)
	if err != nil {
		h.logInternal(err)
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

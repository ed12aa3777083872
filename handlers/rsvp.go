package handlers

import (
	"net/http"

	"familygather-backend/models"
	"familygather-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /events/:eventId/rsvp
func (h *Handler) CreateRsvp(c *gin.Context) {
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

	var req models.RsvpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Status is required")
		return
	}

	rsvp, err := h.rsvps.Upsert(eventID, principal, req.Status)
	if err != nil {
		h.logInternal(err)
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rsvp)
}

// GET /events/:eventId/rsvp
func (h *Handler) GetRsvps(c *gin.Context) {
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

	rsvps, err := h.rsvps.List(eventID, principal)
	if err != nil {
		h.logInternal(err)
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rsvps)
}

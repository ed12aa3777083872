package handlers

import (
	"net/http"
	"time"

	"familygather-backend/models"
	"familygather-backend/services"
	"familygather-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /events
func (h *Handler) CreateEvent(c *gin.Context) {
	principal, ok := utils.CurrentPrincipal(c)
	if !ok {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	familyID, err := uuid.Parse(req.FamilyID)
	if err != nil {
		utils.BadRequest(c, "Invalid family ID")
		return
	}

	date, err := parseEventDate(req.Date)
	if err != nil {
		utils.BadRequest(c, "Invalid date format")
		return
	}

	event, err := h.events.Create(familyID, services.EventFields{
		Title:       req.Title,
		Host:        req.Host,
		Date:        date,
		Time:        req.Time,
		Description: req.Description,
	}, principal)
	if err != nil {
		h.logInternal(err)
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GET /events?familyId=
func (h *Handler) GetEvents(c *gin.Context) {
	principal, ok := utils.CurrentPrincipal(c)
	if !ok {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	familyID, err := uuid.Parse(c.Query("familyId"))
	if err != nil {
		utils.BadRequest(c, "Family ID is required")
		return
	}

	events, err := h.events.ListByFamily(familyID, principal)
	if err != nil {
		h.logInternal(err)
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// GET /events/:eventId
func (h *Handler) GetEvent(c *gin.Context) {
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

	event, err := h.events.Get(eventID, principal)
	if err != nil {
		h.logInternal(err)
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// PUT /events/:eventId
func (h *Handler) UpdateEvent(c *gin.Context) {
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

	var req models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	date, err := parseEventDate(req.Date)
	if err != nil {
		utils.BadRequest(c, "Invalid date format")
		return
	}

	event, err := h.events.Update(eventID, services.EventFields{
		Title:       req.Title,
		Host:        req.Host,
		Date:        date,
		Time:        req.Time,
		Description: req.Description,
	}, principal)
	if err != nil {
		h.logInternal(err)
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// DELETE /events/:eventId (also POST /events/:eventId/delete)
func (h *Handler) DeleteEvent(c *gin.Context) {
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

	if err := h.events.Delete(eventID, principal); err != nil {
		h.logInternal(err)
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

func parseEventDate(value string) (time.Time, error) {
	if date, err := time.Parse(time.RFC3339, value); err == nil {
		return date, nil
	}
	return time.Parse("2006-01-02", value)
}

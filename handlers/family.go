package handlers

import (
	"net/http"

	"familygather-backend/models"
	"familygather-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /families
func (h *Handler) CreateFamily(c *gin.Context) {
	principal, ok := utils.CurrentPrincipal(c)
	if !ok {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req models.CreateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Family name is required")
		return
	}

	family, err := h.families.Create(req.FamilyName, principal)
	if err != nil {
		h.logInternal(err)
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, family)
}

// GET /families
func (h *Handler) GetFamilies(c *gin.Context) {
	principal, ok := utils.CurrentPrincipal(c)
	if !ok {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	families, err := h.families.ListMine(principal)
	if err != nil {
		h.logInternal(err)
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, families)
}

// GET /families/:familyId
func (h *Handler) GetFamily(c *gin.Context) {
	principal, ok := utils.CurrentPrincipal(c)
	if !ok {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	familyID, err := uuid.Parse(c.Param("familyId"))
	if err != nil {
		utils.BadRequest(c, "Invalid family ID")
		return
	}

	family, err := h.families.Get(familyID, principal)
	if err != nil {
		h.logInternal(err)
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, family)
}

// POST /families/:familyId/invite
func (h *Handler) InviteMember(c *gin.Context) {
	principal, ok := utils.CurrentPrincipal(c)
	if !ok {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	familyID, err := uuid.Parse(c.Param("familyId"))
	if err != nil {
		utils.BadRequest(c, "Invalid family ID")
		return
	}

	var req models.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid email address")
		return
	}

	result, err := h.families.Invite(familyID, req.Email, principal)
	if err != nil {
		h.logInternal(err)
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// POST /invite/accept
func (h *Handler) AcceptInvite(c *gin.Context) {
	principal, ok := utils.CurrentPrincipal(c)
	if !ok {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req models.AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Token is required")
		return
	}

	member, err := h.families.Accept(req.Token, principal)
	if err != nil {
		h.logInternal(err)
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Successfully joined family",
		"familyMember": member,
	})
}

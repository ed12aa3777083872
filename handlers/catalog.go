package handlers

import (
	"net/http"

	"familygather-backend/utils"

	"github.com/gin-gonic/gin"
)

// GET /recipes
func (h *Handler) GetRecipes(c *gin.Context) {
	recipes, err := h.catalog.ListRecipes(c.Request.Context())
	if err != nil {
		h.logInternal(err)
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// GET /games
func (h *Handler) GetGames(c *gin.Context) {
	games, err := h.catalog.ListGames(c.Request.Context())
	if err != nil {
		h.logInternal(err)
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

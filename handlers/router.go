package handlers

import (
	"familygather-backend/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes mounts every endpoint on the router. Auth routes are public; the
// rest require a session token.
func (h *Handler) Routes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": h.cfg.AppName})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/google", h.GoogleLogin)
		auth.GET("/google/callback", h.GoogleCallback)
	}

	api := r.Group("/")
	api.Use(middleware.AuthRequired(h.cfg.JWTSecret))
	{
		api.POST("/families", h.CreateFamily)
		api.GET("/families", h.GetFamilies)
		api.GET("/families/:familyId", h.GetFamily)
		api.POST("/families/:familyId/invite", h.InviteMember)
		api.POST("/invite/accept", h.AcceptInvite)

		api.POST("/events", h.CreateEvent)
		api.GET("/events", h.GetEvents)
		api.GET("/events/:eventId", h.GetEvent)
		api.PUT("/events/:eventId", h.UpdateEvent)
		api.DELETE("/events/:eventId", h.DeleteEvent)
		api.POST("/events/:eventId/delete", h.DeleteEvent)

		api.POST("/events/:eventId/rsvp", h.CreateRsvp)
		api.GET("/events/:eventId/rsvp", h.GetRsvps)

		api.POST("/events/:eventId/comments", h.CreateComment)
		api.GET("/events/:eventId/comments", h.GetComments)

		api.GET("/recipes", h.GetRecipes)
		api.GET("/games", h.GetGames)
	}
}

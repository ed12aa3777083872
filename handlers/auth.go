package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"familygather-backend/models"
	"familygather-backend/services"
	"familygather-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

const oauthStateCookie = "oauth_state"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// POST /auth/register
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.identity.Resolve(services.Principal{Email: email, Name: req.Name})
	if err != nil {
		h.logInternal(err)
		utils.RespondError(c, err)
		return
	}
	if user.HashedPassword != "" {
		utils.BadRequest(c, "Email already registered")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.InternalError(c, "Failed to hash password")
		return
	}

	if err := h.identity.SetPassword(user.ID, req.Name, string(hashed)); err != nil {
		h.logInternal(err)
		utils.RespondError(c, err)
		return
	}
	user.Name = req.Name

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, user.Email, user.Name)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

// POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.identity.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Unauthorized(c, "Invalid email or password")
			return
		}
		h.logInternal(err)
		utils.InternalError(c, "Internal Server Error")
		return
	}

	if user.HashedPassword == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)) != nil {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, user.Email, user.Name)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

// GET /auth/google
func (h *Handler) GoogleLogin(c *gin.Context) {
	if h.cfg.GoogleClientID == "" {
		utils.ErrorBody(c, http.StatusServiceUnavailable, "Google sign-in is not configured")
		return
	}

	state, err := randomState()
	if err != nil {
		utils.InternalError(c, "Failed to start sign-in")
		return
	}
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)

	c.Redirect(http.StatusTemporaryRedirect, h.googleConfig().AuthCodeURL(state))
}

// GET /auth/google/callback
func (h *Handler) GoogleCallback(c *gin.Context) {
	if h.cfg.GoogleClientID == "" {
		utils.ErrorBody(c, http.StatusServiceUnavailable, "Google sign-in is not configured")
		return
	}

	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		utils.BadRequest(c, "Invalid OAuth state")
		return
	}

	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "Missing authorization code")
		return
	}

	ctx := c.Request.Context()
	conf := h.googleConfig()
	oauthToken, err := conf.Exchange(ctx, code)
	if err != nil {
		utils.Unauthorized(c, "Failed to exchange authorization code")
		return
	}

	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx, oauthToken)))
	if err != nil {
		utils.InternalError(c, "Failed to reach identity provider")
		return
	}
	info, err := svc.Userinfo.Get().Do()
	if err != nil || info.Email == "" {
		utils.Unauthorized(c, "Failed to fetch user info")
		return
	}

	user, err := h.identity.Resolve(services.Principal{
		Email: strings.ToLower(info.Email),
		Name:  info.Name,
	})
	if err != nil {
		h.logInternal(err)
		utils.RespondError(c, err)
		return
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, user.Email, user.Name)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

func (h *Handler) googleConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.cfg.GoogleClientID,
		ClientSecret: h.cfg.GoogleClientSecret,
		RedirectURL:  h.cfg.AppURL + "/auth/google/callback",
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     google.Endpoint,
	}
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"stock-predictor/auth"
)

type AuthHandler struct {
	auth *auth.Service
	log  zerolog.Logger
}

func NewAuthHandler(authService *auth.Service, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: authService, log: log}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password (min 8 chars) are required"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		h.log.Error().Err(err).Msg("registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", user.ID).Msg("token issue failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Login accepts OAuth2 password-style form fields: username (the
// email) and password.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", user.ID).Msg("token issue failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

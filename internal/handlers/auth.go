package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/mizuki-dev/project-management-api/internal/errors"
	"github.com/mizuki-dev/project-management-api/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates HTTP Basic credentials and issues a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	email, password, ok := c.Request.BasicAuth()
	if !ok || email == "" || password == "" {
		apierrors.Respond(c, apierrors.Unauthorized("Credentials required."))
		return
	}

	user, err := h.authService.Authenticate(email, password)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	accessToken, err := h.authService.IssueToken(user)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": accessToken,
		"token_type":   "Bearer",
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alchemorsel/catalog/internal/infrastructure/security"
	"github.com/alchemorsel/catalog/internal/ports/inbound"
	"github.com/alchemorsel/catalog/pkg/errors"
)

const defaultLanding = "/recipes"

// AuthHandlers serves the login surface
type AuthHandlers struct {
	authService *security.AuthService
	logger      *zap.Logger
}

// NewAuthHandlers creates auth handlers
func NewAuthHandlers(authService *security.AuthService, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		logger:      logger.Named("auth-handlers"),
	}
}

// LoginPage handles GET /login
func (h *AuthHandlers) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", page(c, "Log in", gin.H{
		"Next":          security.SafeRedirect(c.Query("next"), defaultLanding),
		"LoginUsername": "",
		"Error":         "",
	}))
}

// Login handles POST /login from the HTML form
func (h *AuthHandlers) Login(c *gin.Context) {
	next := security.SafeRedirect(c.PostForm("next"), defaultLanding)

	var cmd inbound.LoginCommand
	if err := c.ShouldBind(&cmd); err != nil {
		h.renderLogin(c, http.StatusBadRequest, next, cmd.Username, "Enter a username and password.")
		return
	}

	session, err := h.authService.Login(c.Request.Context(), cmd)
	if err != nil {
		if errors.Is(err, errors.CodeInvalidCredentials) {
			h.renderLogin(c, http.StatusUnauthorized, next, cmd.Username,
				"Please enter a correct username and password.")
			return
		}
		renderErrorPage(c, h.logger, err)
		return
	}

	h.authService.SetSessionCookie(c, session)
	c.Redirect(http.StatusFound, next)
}

// Logout handles POST /logout
func (h *AuthHandlers) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), h.authService.TokenFromRequest(c)); err != nil {
		h.logger.Warn("Logout failed", zap.Error(err))
	}
	h.authService.ClearSessionCookie(c)
	c.Redirect(http.StatusFound, h.authService.LoginPath())
}

// APILogin handles POST /api/v1/auth/login and returns a bearer token
func (h *AuthHandlers) APILogin(c *gin.Context) {
	var cmd inbound.LoginCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		_ = c.Error(bindingError(err))
		return
	}

	session, err := h.authService.Login(c.Request.Context(), cmd)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// APILogout handles POST /api/v1/auth/logout
func (h *AuthHandlers) APILogout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), h.authService.TokenFromRequest(c)); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandlers) renderLogin(c *gin.Context, status int, next, username, message string) {
	c.HTML(status, "login.html", page(c, "Log in", gin.H{
		"Next":          next,
		"LoginUsername": username,
		"Error":         message,
	}))
}

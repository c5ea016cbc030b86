package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-tracker/internal/domain"
	"meal-tracker/internal/service"
)

// CookieConfig describe la cookie de sesion.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler maneja alta, login, logout y cambio de clave.
type AuthHandler struct {
	logger   *zap.Logger
	accounts *service.AccountService
	cookie   CookieConfig
}

func NewAuthHandler(logger *zap.Logger, accounts *service.AccountService, cookie CookieConfig) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "sessionid"
	}
	return &AuthHandler{logger: logger, accounts: accounts, cookie: cookie}
}

// Signup maneja POST /signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req service.Credentials
	if !bindJSON(c, h.logger, &req) {
		return
	}
	user, session, err := h.accounts.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.setSessionCookie(c, session)
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Login maneja POST /login. Solo setea la cookie si las credenciales son validas.
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.Credentials
	if !bindJSON(c, h.logger, &req) {
		return
	}
	user, session, err := h.accounts.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.setSessionCookie(c, session)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout maneja POST /logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.Name)
	if err := h.accounts.Logout(c.Request.Context(), token); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// ChangePassword maneja PUT /change-password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req service.ChangePasswordInput
	if !bindJSON(c, h.logger, &req) {
		return
	}
	if err := h.accounts.ChangePassword(c.Request.Context(), OwnerID(c), req); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, session domain.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, session.Token, 0, "/", "", h.cookie.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
}

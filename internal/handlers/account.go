// internal/handlers/account.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/perfume-store/internal/config"
	"github.com/javajoker/perfume-store/internal/i18n"
	"github.com/javajoker/perfume-store/internal/services"
	"github.com/javajoker/perfume-store/internal/session"
	"github.com/javajoker/perfume-store/internal/utils"
)

type AccountHandler struct {
	accountService *services.AccountService
	sessions       *session.Manager
	cfg            config.SessionConfig
}

func NewAccountHandler(accountService *services.AccountService, sessions *session.Manager, cfg config.SessionConfig) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		sessions:       sessions,
		cfg:            cfg,
	}
}

// GET /accounts/isauth
func (h *AccountHandler) IsAuthenticated(c *gin.Context) {
	_, ok := utils.GetUserIDFromContext(c)
	utils.SuccessResponse(c, gin.H{"is_authenticated": ok})
}

// POST /accounts/signup
func (h *AccountHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.accountService.Signup(&req)
	if err != nil {
		respondError(c, err, "user")
		return
	}

	utils.CreatedResponse(c, user)
}

// POST /accounts/login
func (h *AccountHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.accountService.Login(&req)
	if err != nil {
		respondError(c, err, "user")
		return
	}

	token, err := h.sessions.Issue(c.Request.Context(), user.ID, user.IsStaff)
	if err != nil {
		respondError(c, err, "user")
		return
	}

	h.setSessionCookie(c, token, int(h.sessions.TTL().Seconds()))

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyAuthLoginSuccess),
		"user":       user,
		"token":      token,
		"token_type": "Bearer",
		"expires_in": int(h.sessions.TTL().Seconds()),
	})
}

// POST /accounts/logout
func (h *AccountHandler) Logout(c *gin.Context) {
	if err := h.sessions.Revoke(c.Request.Context(), c.GetString("session_token")); err != nil {
		respondError(c, err, "user")
		return
	}

	h.setSessionCookie(c, "", -1)
	utils.NoContentResponse(c)
}

// GET /accounts/profile
func (h *AccountHandler) GetProfile(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)

	user, err := h.accountService.GetUser(userID)
	if err != nil {
		respondError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, user)
}

// PUT /accounts/profile
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.accountService.UpdateProfile(userID, &req)
	if err != nil {
		respondError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, user)
}

// PUT /accounts/change-password
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)

	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.accountService.ChangePassword(userID, &req)
	if err != nil {
		respondError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, user)
}

func (h *AccountHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, value, maxAge, "/", "", h.cfg.Secure, true)
}

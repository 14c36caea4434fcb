// internal/middleware/auth.go
package middleware

import (
	"errors"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/perfume-store/internal/i18n"
	"github.com/javajoker/perfume-store/internal/session"
	"github.com/javajoker/perfume-store/internal/utils"
)

// Auth resolves the session cookie (or a Bearer header carrying the same
// token) into user info on the context.
type Auth struct {
	sessions   *session.Manager
	cookieName string
}

func NewAuth(sessions *session.Manager, cookieName string) *Auth {
	return &Auth{
		sessions:   sessions,
		cookieName: cookieName,
	}
}

func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		tokens := a.tokens(c)
		if len(tokens) == 0 {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
			c.Abort()
			return
		}

		if err := a.authenticate(c, tokens); err != nil {
			if !errors.Is(err, session.ErrInvalidToken) {
				logrus.WithError(err).Error("Failed to resolve session")
			}
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens := a.tokens(c); len(tokens) > 0 {
			// Set user info in context if a token is valid
			if err := a.authenticate(c, tokens); err != nil && !errors.Is(err, session.ErrInvalidToken) {
				logrus.WithError(err).Warn("Failed to resolve session")
			}
		}
		c.Next()
	}
}

// AdminRequired must run after Required.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !utils.IsStaffFromContext(c) {
			utils.ForbiddenResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyAdminAccessDenied))
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *Auth) resolve(c *gin.Context, token string) error {
	claims, err := a.sessions.Resolve(c.Request.Context(), token)
	if err != nil {
		return err
	}

	c.Set("user_id", claims.UserID)
	c.Set("is_staff", claims.IsStaff)
	c.Set("session_token", token)
	return nil
}

// authenticate tries each token in turn; the first live session wins. A
// stale cookie does not shadow a valid Bearer header.
func (a *Auth) authenticate(c *gin.Context, tokens []string) error {
	var err error
	for _, token := range tokens {
		if err = a.resolve(c, token); err == nil {
			return nil
		}
		if !errors.Is(err, session.ErrInvalidToken) {
			return err
		}
	}
	return err
}

// tokens returns the session cookie and the "Bearer <token>" value, in that
// order, skipping empty and repeated values.
func (a *Auth) tokens(c *gin.Context) []string {
	var tokens []string
	if cookie, err := c.Cookie(a.cookieName); err == nil && cookie != "" {
		tokens = append(tokens, cookie)
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if bearer := strings.TrimSpace(parts[1]); bearer != "" && !slices.Contains(tokens, bearer) {
			tokens = append(tokens, bearer)
		}
	}
	return tokens
}

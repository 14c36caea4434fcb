// internal/middleware/middleware_test.go
package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/perfume-store/internal/config"
	"github.com/javajoker/perfume-store/internal/i18n"
	"github.com/javajoker/perfume-store/internal/models"
	"github.com/javajoker/perfume-store/internal/session"
	"github.com/javajoker/perfume-store/internal/testutil"
	"github.com/javajoker/perfume-store/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := i18n.Initialize("en", ""); err != nil {
		panic(err)
	}
}

func perform(r http.Handler, method, path string, body []byte, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, m := range mutate {
		m(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	limits := NewRateLimits(config.RateLimitConfig{
		Enabled:       true,
		GeneralPerSec: 1,
		GeneralBurst:  10,
		AuthPerMinute: 1,
		AuthBurst:     2,
	})

	r := gin.New()
	r.POST("/login", limits.Auth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(r, "POST", "/login", nil).Code)
	assert.Equal(t, http.StatusOK, perform(r, "POST", "/login", nil).Code)

	w := perform(r, "POST", "/login", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body["success"].(bool))

	// other clients have their own bucket
	w = perform(r, "POST", "/login", nil, func(req *http.Request) { req.RemoteAddr = "10.0.0.2:1234" })
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitsDisabled(t *testing.T) {
	limits := NewRateLimits(config.RateLimitConfig{Enabled: false, AuthBurst: 1})

	r := gin.New()
	r.POST("/login", limits.Auth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, perform(r, "POST", "/login", nil).Code)
	}
}

func TestRateLimiterSweep(t *testing.T) {
	rl := NewRateLimiter(1, 1, time.Minute)
	rl.getVisitor("1.2.3.4")
	require.Len(t, rl.visitors, 1)

	rl.sweep(time.Now())
	assert.Len(t, rl.visitors, 1)

	rl.sweep(time.Now().Add(2 * time.Minute))
	assert.Empty(t, rl.visitors)
}

func TestNegotiateLanguage(t *testing.T) {
	supported := []string{"az", "en"}
	assert.Equal(t, "en", negotiate("fr-FR,de;q=0.8", "en", supported))
	assert.Equal(t, "en", negotiate("en-US,en;q=0.9", "az", supported))
	assert.Equal(t, "az", negotiate("AZ-az,en;q=0.8", "en", supported))
	assert.Equal(t, "az", negotiate("ru,az_AZ;q=0.5", "en", supported))
	assert.Equal(t, "en", negotiate("az", "en", []string{"en"}))
	assert.Equal(t, "en", negotiate("", "en", supported))
}

func TestI18nMiddlewareSetsLanguage(t *testing.T) {
	r := gin.New()
	r.Use(I18nMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, utils.GetLangFromContext(c)) })

	w := perform(r, "GET", "/", nil, func(req *http.Request) { req.Header.Set("Accept-Language", "xx") })
	assert.Equal(t, "en", w.Body.String())
	assert.Equal(t, "en", w.Header().Get("Content-Language"))

	w = perform(r, "GET", "/?lang=AZ", nil, func(req *http.Request) { req.Header.Set("Accept-Language", "en") })
	assert.Equal(t, "az", w.Body.String())
	assert.Equal(t, "az", w.Header().Get("Content-Language"))
}

func TestRequestIDPropagates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := perform(r, "GET", "/", nil, func(req *http.Request) { req.Header.Set("X-Request-ID", "abc-123") })
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc-123", w.Body.String())

	w = perform(r, "GET", "/", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRecoveryReturnsEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := perform(r, "GET", "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body["success"].(bool))
}

func TestAuthMiddleware(t *testing.T) {
	sessions := session.NewManager(session.NewMemoryStore(), "secret", time.Hour)
	auth := NewAuth(sessions, "sessionid")

	r := gin.New()
	r.GET("/private", auth.Required(), func(c *gin.Context) {
		id, _ := utils.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "is_staff": utils.IsStaffFromContext(c)})
	})
	r.GET("/admin", auth.Required(), AdminRequired(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/public", auth.Optional(), func(c *gin.Context) {
		_, ok := utils.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})

	token, err := sessions.Issue(context.Background(), 5, false)
	require.NoError(t, err)

	withCookie := func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "sessionid", Value: token}) }
	withBearer := func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) }

	assert.Equal(t, http.StatusUnauthorized, perform(r, "GET", "/private", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, "GET", "/private", nil, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer nope")
	}).Code)

	w := perform(r, "GET", "/private", nil, withCookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":5,"is_staff":false}`, w.Body.String())

	assert.Equal(t, http.StatusOK, perform(r, "GET", "/private", nil, withBearer).Code)
	assert.Equal(t, http.StatusForbidden, perform(r, "GET", "/admin", nil, withCookie).Code)

	assert.JSONEq(t, `{"authenticated":true}`, perform(r, "GET", "/public", nil, withCookie).Body.String())
	assert.JSONEq(t, `{"authenticated":false}`, perform(r, "GET", "/public", nil).Body.String())

	staff, err := sessions.Issue(context.Background(), 6, true)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, perform(r, "GET", "/admin", nil, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "sessionid", Value: staff})
	}).Code)

	require.NoError(t, sessions.Revoke(context.Background(), token))
	assert.Equal(t, http.StatusUnauthorized, perform(r, "GET", "/private", nil, withCookie).Code)

	// a revoked cookie falls through to a live Bearer token
	fresh, err := sessions.Issue(context.Background(), 7, false)
	require.NoError(t, err)
	w = perform(r, "GET", "/private", nil, withCookie, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+fresh)
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7,"is_staff":false}`, w.Body.String())
	assert.Equal(t, http.StatusUnauthorized, perform(r, "GET", "/private", nil, withCookie, withBearer).Code)
}

func TestAuditLoggerRecordsWrites(t *testing.T) {
	db := testutil.NewDB(t)
	audit := NewAuditLogger(db)

	r := gin.New()
	r.Use(RequestID())
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uint(9))
		c.Next()
	})
	r.Use(audit.Middleware())
	r.POST("/api/admin/orders/:id/complete", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/api/orders", func(c *gin.Context) { c.Status(http.StatusOK) })

	body := []byte(`{"note":"gift","password":"hunter22","nested":{"old_password":"x"}}`)
	perform(r, "POST", "/api/admin/orders/12/complete", body)
	perform(r, "GET", "/api/orders", nil)
	audit.Wait()

	var logs []models.AuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)

	entry := logs[0]
	assert.Equal(t, "POST /api/admin/orders/:id/complete", entry.Action)
	assert.Equal(t, "orders", entry.ResourceType)
	require.NotNil(t, entry.ResourceID)
	assert.Equal(t, uint(12), *entry.ResourceID)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, uint(9), *entry.UserID)
	assert.Equal(t, http.StatusOK, entry.Status)
	assert.NotEmpty(t, entry.RequestID)
	assert.Equal(t, "gift", entry.NewValues["note"])
	assert.Equal(t, "[REDACTED]", entry.NewValues["password"])
	nested, ok := entry.NewValues["nested"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "[REDACTED]", nested["old_password"])
}

func TestExtractResourceType(t *testing.T) {
	assert.Equal(t, "favorites", extractResourceType("/api/favorites/3"))
	assert.Equal(t, "products", extractResourceType("/api/admin/products/3/image"))
	assert.Equal(t, "unknown", extractResourceType("/"))
}

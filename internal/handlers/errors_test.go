// internal/handlers/errors_test.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/perfume-store/internal/i18n"
	"github.com/javajoker/perfume-store/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
	logrus.SetLevel(logrus.FatalLevel)
}

func respond(t *testing.T, err error, resource string) (int, map[string]interface{}) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	respondError(c, err, resource)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRespondErrorStatuses(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		resource string
		status   int
		code     string
	}{
		{"field errors", services.FieldErrors{"email": "bad"}, "user", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"credentials", services.ErrInvalidCredentials, "user", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"not found", services.ErrNotFound, "order", http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("load: %w", services.ErrNotFound), "order", http.StatusNotFound, "NOT_FOUND"},
		{"email taken", services.ErrEmailTaken, "user", http.StatusConflict, "CONFLICT"},
		{"slug taken", services.ErrSlugTaken, "brand", http.StatusConflict, "CONFLICT"},
		{"duplicate favorite", services.ErrDuplicateFavorite, "favorite", http.StatusConflict, "CONFLICT"},
		{"already completed", services.ErrOrderAlreadyCompleted, "order", http.StatusConflict, "CONFLICT"},
		{"unknown product", services.ErrUnknownProduct, "favorite", http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{"bad page", services.ErrInvalidPage, "product", http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{"payments off", services.ErrPaymentsDisabled, "order", http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"bad file", fmt.Errorf("%w: not an image", services.ErrInvalidFile), "product", http.StatusBadRequest, "BAD_REQUEST"},
		{"unexpected", errors.New("boom"), "order", http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := respond(t, tt.err, tt.resource)
			assert.Equal(t, tt.status, status)
			assert.False(t, body["success"].(bool))
			assert.Equal(t, tt.code, body["error"].(map[string]interface{})["code"])
		})
	}
}

func TestRespondErrorUnknownProductDetails(t *testing.T) {
	_, body := respond(t, services.ErrUnknownProduct, "order")
	details := body["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Equal(t, i18n.T("en", i18n.KeyOrderUnknownProduct), details["product_id"])
}

func TestRespondBindError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(`{"product_id":"abc"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req services.CreateFavoriteRequest
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)
	respondBindError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"product_id"`)
}

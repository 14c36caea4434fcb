// internal/handlers/errors.go
package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/perfume-store/internal/i18n"
	"github.com/javajoker/perfume-store/internal/services"
	"github.com/javajoker/perfume-store/internal/utils"
)

// respondError maps service errors onto the response envelope. resource
// picks the "<resource>.not_found" message.
func respondError(c *gin.Context, err error, resource string) {
	lang := utils.GetLangFromContext(c)

	var fieldErrs services.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		utils.ValidationErrorResponse(c, translateFields(lang, fieldErrs))

	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))

	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, resource)

	case errors.Is(err, services.ErrEmailTaken):
		msg := i18n.T(lang, i18n.KeyAuthEmailTaken)
		utils.ConflictResponse(c, msg, gin.H{"email": msg})

	case errors.Is(err, services.ErrSlugTaken):
		msg := i18n.T(lang, i18n.KeyCatalogSlugTaken)
		utils.ConflictResponse(c, msg, gin.H{"slug": msg})

	case errors.Is(err, services.ErrDuplicateFavorite):
		msg := i18n.T(lang, i18n.KeyFavoriteExists)
		utils.ConflictResponse(c, msg, gin.H{"product_id": msg})

	case errors.Is(err, services.ErrOrderAlreadyCompleted):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyOrderAlreadyCompleted), nil)

	case errors.Is(err, services.ErrUnknownProduct):
		key := i18n.KeyOrderUnknownProduct
		if resource == "favorite" {
			key = i18n.KeyFavoriteUnknownProduct
		}
		msg := i18n.T(lang, key)
		utils.UnprocessableResponse(c, msg, gin.H{"product_id": msg})

	case errors.Is(err, services.ErrInvalidPage):
		msg := i18n.T(lang, i18n.KeyCatalogBadPage)
		utils.UnprocessableResponse(c, msg, gin.H{"page": msg})

	case errors.Is(err, services.ErrPaymentsDisabled):
		utils.ServiceUnavailableResponse(c, i18n.T(lang, i18n.KeyPaymentDisabled))

	case errors.Is(err, services.ErrInvalidFile):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyStorageInvalidFile, err.Error()), gin.H{"image": err.Error()})

	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString("request_id"),
		}).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

// translateFields runs every message through i18n; messages that are not
// translation keys come back unchanged.
func translateFields(lang string, fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for field, msg := range fields {
		out[field] = i18n.T(lang, msg)
	}
	return out
}

// respondBindError reports a body that could not be decoded.
func respondBindError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		utils.ValidationErrorResponse(c, map[string]string{
			typeErr.Field: "Expected a value of type " + typeErr.Type.String() + ".",
		})
		return
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || strings.Contains(err.Error(), "EOF") {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "JSON"), gin.H{"body": err.Error()})
		return
	}

	utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), gin.H{"body": err.Error()})
}

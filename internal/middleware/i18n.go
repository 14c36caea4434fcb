// internal/middleware/i18n.go
package middleware

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/perfume-store/internal/i18n"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.DefaultLanguage()
		supported := i18n.GetSupportedLanguages()

		// A ?lang= override wins over the header
		if q := strings.ToLower(c.Query("lang")); q != "" && slices.Contains(supported, q) {
			lang = q
		} else if header := c.GetHeader("Accept-Language"); header != "" {
			lang = negotiate(header, lang, supported)
		}

		c.Set("lang", lang)
		c.Header("Content-Language", lang)
		c.Next()
	}
}

// negotiate walks "az-AZ,az;q=0.9,en;q=0.8" in order and returns the first
// tag, or its base language, found in supported.
func negotiate(header, fallback string, supported []string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.Split(part, ";")[0])
		if tag == "" {
			continue
		}
		tag = strings.ToLower(tag)
		if slices.Contains(supported, tag) {
			return tag
		}
		if base := strings.SplitN(strings.ReplaceAll(tag, "_", "-"), "-", 2)[0]; slices.Contains(supported, base) {
			return base
		}
	}
	return fallback
}

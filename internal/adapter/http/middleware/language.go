package middleware

import (
	"github.com/gin-gonic/gin"

	"taskmanager/pkg/translator"
)

const langKey = "lang"

// LanguageMiddleware stores the raw Accept-Language value; the translator
// negotiates it against the loaded bundles.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader("Accept-Language")
		if lang == "" {
			lang = translator.LanguageEn
		}
		c.Set(langKey, lang)
		c.Next()
	}
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get(langKey); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}

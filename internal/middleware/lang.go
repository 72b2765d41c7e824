package middleware

import (
	"kpi-api/internal/i18n"

	"github.com/gin-gonic/gin"
)

// язык клиента кладём в контекст для переведённых сообщений
func Lang(tr *i18n.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(i18n.XLang, tr.FromRequest(c.Request))
		c.Next()
	}
}

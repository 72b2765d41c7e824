package middleware

import (
	"kpi-api/internal/apperrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ManvKey: код сотрудника запроса, для логов
const ManvKey = "manv"

type HandlerFunc func(c *gin.Context) error

// ErrorHandler превращает ошибку обработчика в {ok:false, error}
// со статусом по виду ошибки
func ErrorHandler(log *zap.Logger, h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := h(c)
		if err == nil {
			return
		}

		if apperrors.KindOf(err) == apperrors.KindBackend {
			log.Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString(RequestIDKey)),
				zap.String("manv", c.GetString(ManvKey)),
				zap.Error(err),
			)
		}
		_ = c.Error(err)
		c.AbortWithStatusJSON(apperrors.GetStatus(err), gin.H{
			"ok":    false,
			"error": apperrors.GetMessage(err),
		})
	}
}

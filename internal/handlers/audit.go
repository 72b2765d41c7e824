package handlers

import (
	"kpi-api/internal/auth"
	"kpi-api/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// auditAuth записывает исход проверки входа в журнал аудита
func (h *Handler) auditAuth(c *gin.Context, manv string, res auth.Result) {
	h.audit.Info("auth check",
		zap.String("path", c.FullPath()),
		zap.String("manv", manv),
		zap.String("outcome", string(res.Outcome)),
		zap.String("client_ip", c.ClientIP()),
		zap.String("request_id", c.GetString(middleware.RequestIDKey)),
	)
	if h.rec != nil {
		h.rec.AuthOutcome(c.FullPath(), string(res.Outcome))
	}
}

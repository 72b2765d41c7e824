package handlers

import (
	"net/http"

	"kpi-api/internal/middleware"
	"kpi-api/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) Health(c *gin.Context) error {
	return respond(c, gin.H{"ts": h.now().UnixMilli()})
}

// Ready пингует БД
func (h *Handler) Ready(c *gin.Context) error {
	if err := h.gw.Ping(c.Request.Context()); err != nil {
		h.log.Warn("readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "backend unavailable"})
		return nil
	}
	return respond(c, nil)
}

// InitParams: стартовые параметры фронтенда. userRole из сессии, без неё "viewer"
func (h *Handler) InitParams(c *gin.Context) error {
	role := models.RoleName(0)
	if u, ok := middleware.CurrentUser(c); ok {
		role = models.RoleName(u.RoleLevel)
	}
	return respond(c, gin.H{"init": gin.H{
		"today":        h.today(),
		"userRole":     role,
		"featureFlags": h.featureFlags,
		"version":      h.version,
	}})
}

package handlers

import (
	"kpi-api/internal/apperrors"
	"kpi-api/internal/auth"
	"kpi-api/internal/i18n"
	"kpi-api/internal/middleware"
	"kpi-api/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// флаг в ответе whoAmI и текст сообщения для каждого отказа
var lookupFailures = map[auth.Outcome]struct {
	flag  string
	msgID string
}{
	auth.NotFound:   {"notFound", i18n.MsgUserNotFound},
	auth.Inactive:   {"notActive", i18n.MsgUserNotActive},
	auth.InvalidPIN: {"invalidPin", i18n.MsgInvalidPIN},
	auth.PINExpired: {"pinExpired", i18n.MsgPINExpired},
}

// WhoAmI для экрана входа: отказы приходят с ok:true и описанием в user
func (h *Handler) WhoAmI(c *gin.Context) error {
	var req whoAmIRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	manv := normalizeCode(req.Manv)
	c.Set(middleware.ManvKey, manv)

	u, err := h.gw.FindUserByCode(c.Request.Context(), manv)
	if err != nil {
		return apperrors.Backend(err)
	}

	res := h.checker.Lookup(u, req.PIN)
	h.auditAuth(c, manv, res)

	if res.Outcome == auth.OK {
		return respond(c, gin.H{"user": res.View})
	}
	f := lookupFailures[res.Outcome]
	return respond(c, gin.H{"user": gin.H{
		f.flag: true,
		"msg":  h.tr.TranslateContext(c, f.msgID),
	}})
}

// CheckUserAuth: строгий вход по PIN, отказ это {ok:false, error:CODE} со статусом 200
func (h *Handler) CheckUserAuth(c *gin.Context) error {
	var req checkAuthRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	manv := normalizeCode(req.Manv)
	c.Set(middleware.ManvKey, manv)

	u, err := h.gw.FindUserByCode(c.Request.Context(), manv)
	if err != nil {
		return apperrors.Backend(err)
	}

	res := h.checker.Check(u, req.PIN)
	h.auditAuth(c, manv, res)
	if res.Outcome != auth.OK {
		return apperrors.Auth(string(res.Outcome))
	}

	su := middleware.SessionUser{ManV: res.View.ManV, RoleLevel: res.View.RoleLevel}
	if err := middleware.SaveSessionUser(c, su); err != nil {
		h.log.Warn("failed to save session", zap.String("manv", manv), zap.Error(err))
	}
	return respond(c, gin.H{"user": res.View})
}

func (h *Handler) Logout(c *gin.Context) error {
	if u, ok := middleware.CurrentUser(c); ok {
		h.audit.Info("logout", zap.String("manv", u.ManV), zap.String("role", models.RoleName(u.RoleLevel)))
	}
	if err := middleware.ClearSession(c); err != nil {
		h.log.Warn("failed to clear session", zap.Error(err))
	}
	return respond(c, nil)
}

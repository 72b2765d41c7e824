package handlers

import (
	"kpi-api/internal/apperrors"
	"kpi-api/internal/middleware"
	"kpi-api/internal/models"
	"kpi-api/internal/scope"

	"github.com/gin-gonic/gin"
)

// ListUsers: активные сотрудники, не больше database.ActiveUsersLimit
func (h *Handler) ListUsers(c *gin.Context) error {
	var req listUsersRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	items, err := h.activeUsers(c)
	if err != nil {
		return err
	}
	return respond(c, gin.H{"items": items, "total": len(items)})
}

// ListUsersInScope: тот же список, но в пределах scopeView вызывающего.
// Вызывающий это manv из тела, а если его нет, пользователь сессии
func (h *Handler) ListUsersInScope(c *gin.Context) error {
	var req listUsersRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	caller := normalizeCode(req.Manv)
	if caller == "" {
		if u, ok := middleware.CurrentUser(c); ok {
			caller = normalizeCode(u.ManV)
		}
	}
	c.Set(middleware.ManvKey, caller)

	items, err := h.activeUsers(c)
	if err != nil {
		return err
	}

	if caller != "" {
		me, err := h.gw.FindUserByCode(c.Request.Context(), caller)
		if err != nil {
			return apperrors.Backend(err)
		}
		if me != nil {
			items = scope.Filter(me.ScopeView.String(), items, models.UserListItem.Team)
		}
	}
	return respond(c, gin.H{"items": items, "total": len(items)})
}

func (h *Handler) activeUsers(c *gin.Context) ([]models.UserListItem, error) {
	users, err := h.gw.FindUsersActive(c.Request.Context())
	if err != nil {
		return nil, apperrors.Backend(err)
	}
	items := make([]models.UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, models.MapListItem(u))
	}
	return items, nil
}

func (h *Handler) Enrich(c *gin.Context) error {
	var req enrichRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	return h.enrichOne(c, req.Manv)
}

func (h *Handler) EnrichBatch(c *gin.Context) error {
	var req enrichBatchRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	var codes []string
	if req.Manvs != nil {
		codes = *req.Manvs
	}
	return h.enrichMany(c, codes)
}

// EnrichUsers смотрит на форму тела: массив "manvs" идёт в пакетный поиск,
// всё остальное в одиночный
func (h *Handler) EnrichUsers(c *gin.Context) error {
	var req enrichBatchRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.Manvs != nil {
		return h.enrichMany(c, *req.Manvs)
	}
	if normalizeCode(req.Manv) == "" {
		return apperrors.ErrManvRequired
	}
	return h.enrichOne(c, req.Manv)
}

func (h *Handler) enrichOne(c *gin.Context, raw string) error {
	manv := normalizeCode(raw)
	c.Set(middleware.ManvKey, manv)

	u, err := h.gw.FindUserByCode(c.Request.Context(), manv)
	if err != nil {
		return apperrors.Backend(err)
	}
	if u == nil {
		return apperrors.ErrUserNotFound
	}
	return respond(c, gin.H{"user": models.MapUser(*u)})
}

func (h *Handler) enrichMany(c *gin.Context, raw []string) error {
	codes := normalizeCodes(raw)
	users := make(map[string]models.UserView, len(codes))
	if len(codes) == 0 {
		return respond(c, gin.H{"users": users})
	}

	rows, err := h.gw.FindUsersByCodes(c.Request.Context(), codes)
	if err != nil {
		return apperrors.Backend(err)
	}
	for _, u := range rows {
		users[normalizeCode(u.ManV.String())] = models.MapUser(u)
	}
	return respond(c, gin.H{"users": users})
}

package handlers

import (
	"kpi-api/internal/apperrors"
	"kpi-api/internal/middleware"
	"kpi-api/internal/models"

	"github.com/gin-gonic/gin"
)

// RoundsForUser: выезды сотрудника за день, по умолчанию за сегодня
func (h *Handler) RoundsForUser(c *gin.Context) error {
	var req roundsRequest
	if err := bindRounds(c, &req); err != nil {
		return err
	}
	manv := normalizeCode(req.Manv)
	c.Set(middleware.ManvKey, manv)

	date, err := h.normalizeDate(req.Date)
	if err != nil {
		return err
	}

	rows, err := h.gw.FindRoundsForUserOnDate(c.Request.Context(), manv, date)
	if err != nil {
		return apperrors.Backend(err)
	}
	rounds := models.MapRounds(rows)
	return respond(c, gin.H{"rounds": rounds, "total": len(rounds), "date": date})
}

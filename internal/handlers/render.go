package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// respond пишет успешный ответ в общем конверте {ok: true, ...}
func respond(c *gin.Context, data gin.H) error {
	if data == nil {
		data = gin.H{}
	}
	data["ok"] = true
	c.JSON(http.StatusOK, data)
	return nil
}

package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	SessionName    = "kpi_session"
	CurrentUserKey = "CurrentUser"

	sessionManv  = "manv"
	sessionLevel = "role_level"
)

// SessionUser: кто вошёл через checkUserAuth в этом браузере
type SessionUser struct {
	ManV      string
	RoleLevel int
}

// InjectUser кладёт пользователя сессии в контекст, если он есть
func InjectUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if manv, ok := sess.Get(sessionManv).(string); ok && manv != "" {
			level, _ := sess.Get(sessionLevel).(int)
			c.Set(CurrentUserKey, SessionUser{ManV: manv, RoleLevel: level})
		}

		c.Next()
	}
}

func CurrentUser(c *gin.Context) (SessionUser, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return SessionUser{}, false
	}
	u, ok := v.(SessionUser)
	return u, ok
}

func SaveSessionUser(c *gin.Context, u SessionUser) error {
	sess := sessions.Default(c)
	sess.Set(sessionManv, u.ManV)
	sess.Set(sessionLevel, u.RoleLevel)
	c.Set(CurrentUserKey, u)
	return sess.Save()
}

func ClearSession(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	return sess.Save()
}

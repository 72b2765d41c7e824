package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kpi-api/internal/apperrors"
	"kpi-api/internal/i18n"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAPIKey(t *testing.T) {
	r := gin.New()
	r.Use(APIKey("secret"))
	r.Any("/health", okHandler)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"INVALID_API_KEY"}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("x-api-key", "wrong")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Api-Key", "secret")
	assert.Equal(t, http.StatusOK, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodOptions, "/health", nil)
	assert.Equal(t, http.StatusOK, serve(r, req).Code)
}

func TestAPIKeyDisabled(t *testing.T) {
	r := gin.New()
	r.Use(APIKey(""))
	r.GET("/health", okHandler)

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/health", nil)).Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS("https://kpi.bvx.com.vn"))
	r.POST("/whoAmI", okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/whoAmI", nil)
	req.Header.Set("Origin", "https://kpi.bvx.com.vn")
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://kpi.bvx.com.vn", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "x-api-key")
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))

	req = httptest.NewRequest(http.MethodPost, "/whoAmI", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	assert.Equal(t, "abc-123", serve(r, req).Body.String())
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))).Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge, serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"manv":"E001"}`))).Code)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"internal server error"}`, w.Body.String())
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	log := zap.NewNop()
	r.GET("/validation", ErrorHandler(log, func(c *gin.Context) error { return apperrors.ErrManvRequired }))
	r.GET("/backend", ErrorHandler(log, func(c *gin.Context) error {
		return apperrors.Backend(errors.New("password authentication failed for user kpi_user"))
	}))
	r.GET("/ok", ErrorHandler(log, func(c *gin.Context) error {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return nil
	}))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/validation", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"manv required"}`, w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/backend", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"backend unavailable"}`, w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLang(t *testing.T) {
	tr, err := i18n.New("vi")
	require.NoError(t, err)

	r := gin.New()
	r.Use(Lang(tr))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(i18n.XLang)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")
	assert.Equal(t, "en", serve(r, req).Body.String())
	assert.Equal(t, "vi", serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String())
}

func TestSessionUserRoundTrip(t *testing.T) {
	r := gin.New()
	r.Use(sessions.Sessions(SessionName, cookie.NewStore([]byte("test-secret"))))
	r.Use(InjectUser())
	r.POST("/login", func(c *gin.Context) {
		require.NoError(t, SaveSessionUser(c, SessionUser{ManV: "E001", RoleLevel: 50}))
		c.Status(http.StatusOK)
	})
	r.GET("/me", func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, u.ManV)
	})

	w := serve(r, httptest.NewRequest(http.MethodPost, "/login", nil))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	assert.Equal(t, "E001", serve(r, req).Body.String())

	assert.Equal(t, "anonymous", serve(r, httptest.NewRequest(http.MethodGet, "/me", nil)).Body.String())
}

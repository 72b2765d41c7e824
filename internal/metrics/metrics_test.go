package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kpi-api/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(config.MetricsConfig{Namespace: "kpi"})

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpReqCnt.WithLabelValues("GET", "/health", "200")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "kpi_http_requests_total")
}

func TestObserveQuery(t *testing.T) {
	m := New(config.MetricsConfig{Namespace: "kpi"})

	m.ObserveQuery("find_user_by_code", 5*time.Millisecond, nil)
	m.ObserveQuery("find_user_by_code", 5*time.Millisecond, errors.New("boom"))
	m.AuthOutcome("/checkUserAuth", "INVALID_PIN")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryCnt.WithLabelValues("find_user_by_code", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryCnt.WithLabelValues("find_user_by_code", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authCnt.WithLabelValues("/checkUserAuth", "INVALID_PIN")))
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"kpi-api/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry   *prometheus.Registry
	httpReqCnt *prometheus.CounterVec
	httpDur    *prometheus.HistogramVec
	httpInfl   *prometheus.GaugeVec
	dbQueryCnt *prometheus.CounterVec
	dbQueryDur *prometheus.HistogramVec
	authCnt    *prometheus.CounterVec
}

func New(cfg config.MetricsConfig) *Metrics {
	ns := cfg.Namespace
	buckets := cfg.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	r := prometheus.NewRegistry()
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	httpReqCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "http_requests_total"}, []string{"method", "route", "status"})
	httpDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "http_request_duration_seconds", Buckets: buckets}, []string{"method", "route", "status"})
	httpInfl := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: ns, Name: "http_requests_inflight"}, []string{"route"})
	r.MustRegister(httpReqCnt, httpDur, httpInfl)

	dbQueryCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "db_queries_total"}, []string{"op", "status"})
	dbQueryDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "db_query_duration_seconds", Buckets: buckets}, []string{"op"})
	r.MustRegister(dbQueryCnt, dbQueryDur)

	authCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "auth_checks_total"}, []string{"path", "outcome"})
	r.MustRegister(authCnt)

	return &Metrics{
		registry:   r,
		httpReqCnt: httpReqCnt,
		httpDur:    httpDur,
		httpInfl:   httpInfl,
		dbQueryCnt: dbQueryCnt,
		dbQueryDur: dbQueryDur,
		authCnt:    authCnt,
	}
}

// ObserveQuery records one gateway call.
func (m *Metrics) ObserveQuery(op string, took time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueryCnt.WithLabelValues(op, status).Inc()
	m.dbQueryDur.WithLabelValues(op).Observe(took.Seconds())
}

func (m *Metrics) AuthOutcome(path, outcome string) {
	m.authCnt.WithLabelValues(path, outcome).Inc()
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpInfl.WithLabelValues(route).Inc()
		start := time.Now()
		c.Next()
		status := strconv.Itoa(c.Writer.Status())
		m.httpReqCnt.WithLabelValues(c.Request.Method, route, status).Inc()
		m.httpDur.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		m.httpInfl.WithLabelValues(route).Dec()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

package server

import (
	"net/http"
	"strings"

	"kpi-api/internal/config"
	"kpi-api/internal/handlers"
	"kpi-api/internal/i18n"
	"kpi-api/internal/metrics"
	"kpi-api/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// исторические адреса списка пользователей, все ведут в один обработчик
var userListPaths = []string{
	"/users/list", "/listUsers", "/getUsers",
	"/users/query", "/users/search", "/users",
	"/user/list", "/user/query", "/user/search", "/user",
}

var roundsPaths = []string{"/getRoundsForUser", "/rounds/forUser", "/getRounds"}

type route struct {
	methods []string
	paths   []string
	handler middleware.HandlerFunc
}

var (
	getPost = []string{http.MethodGet, http.MethodPost}
	post    = []string{http.MethodPost}
	anyVerb = []string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodHead,
	}
)

func routes(h *handlers.Handler) []route {
	return []route{
		{anyVerb, []string{"/health"}, h.Health},
		{[]string{http.MethodGet}, []string{"/readyz"}, h.Ready},
		{getPost, []string{"/getInitParams"}, h.InitParams},
		{post, []string{"/whoAmI"}, h.WhoAmI},
		{post, []string{"/checkUserAuth"}, h.CheckUserAuth},
		{post, userListPaths, h.ListUsers},
		{post, []string{"/listUsersInScope"}, h.ListUsersInScope},
		{post, []string{"/users/enrich"}, h.Enrich},
		{post, []string{"/users/enrichBatch"}, h.EnrichBatch},
		{post, []string{"/enrichUsers"}, h.EnrichUsers},
		{getPost, roundsPaths, h.RoundsForUser},
		{anyVerb, []string{"/logout", "/signout"}, h.Logout},
	}
}

// Deps: всё, что нужно роутеру помимо конфигурации
type Deps struct {
	Handler    *handlers.Handler
	Translator *i18n.Translator
	Metrics    *metrics.Metrics // nil отключает /metrics
	Logger     *zap.Logger
}

func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	handlers.RegisterValidators()

	r := gin.New()
	r.HandleMethodNotAllowed = false

	r.Use(middleware.Recovery(deps.Logger))
	// метрики стоят до CORS и ключа: считаются и preflight, и отказы 401
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}
	// OPTIONS должен дойти до CORS даже на путях, где есть только GET/POST
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(deps.Logger),
		middleware.CORS(cfg.Server.AllowOrigin),
		middleware.APIKey(cfg.Auth.APIKey),
		middleware.BodyLimit(cfg.Server.BodyLimit),
	)
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	secret := cfg.Server.SessionSecret
	if secret == "" {
		secret = uuid.NewString()
		deps.Logger.Warn("SESSION_SECRET is not set, sessions will not survive a restart")
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessionOptions(cfg.Server.AllowOrigin))
	r.Use(sessions.Sessions(middleware.SessionName, store))
	r.Use(middleware.InjectUser())
	r.Use(middleware.Lang(deps.Translator))

	for _, rt := range routes(deps.Handler) {
		hf := middleware.ErrorHandler(deps.Logger, rt.handler)
		for _, p := range rt.paths {
			for _, m := range rt.methods {
				r.Handle(m, p, hf)
			}
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
	})

	return r
}

// фронтенд живёт на другом домене, поэтому для https нужна SameSite=None
func sessionOptions(origin string) sessions.Options {
	opts := sessions.Options{
		Path:     "/",
		MaxAge:   12 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if strings.HasPrefix(origin, "https://") {
		opts.Secure = true
		opts.SameSite = http.SameSiteNoneMode
	}
	return opts
}

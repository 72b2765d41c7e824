package handlers

import (
	"time"

	"kpi-api/internal/auth"
	"kpi-api/internal/database"
	"kpi-api/internal/i18n"

	"go.uber.org/zap"
)

// AuthRecorder считает исходы входа (metrics.Metrics)
type AuthRecorder interface {
	AuthOutcome(path, outcome string)
}

type Options struct {
	Location     *time.Location
	FeatureFlags []string
	Version      int
	Recorder     AuthRecorder
}

// общие зависимости всех обработчиков
type Handler struct {
	gw      database.Gateway
	checker *auth.Checker
	tr      *i18n.Translator
	log     *zap.Logger
	audit   *zap.Logger
	rec     AuthRecorder

	loc          *time.Location
	featureFlags []string
	version      int
	now          func() time.Time
}

func New(gw database.Gateway, checker *auth.Checker, tr *i18n.Translator, log *zap.Logger, opts Options) *Handler {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.FeatureFlags == nil {
		opts.FeatureFlags = []string{}
	}
	return &Handler{
		gw:           gw,
		checker:      checker,
		tr:           tr,
		log:          log,
		audit:        log.Named("audit"),
		rec:          opts.Recorder,
		loc:          opts.Location,
		featureFlags: opts.FeatureFlags,
		version:      opts.Version,
		now:          time.Now,
	}
}

const dateLayout = "2006-01-02"

func (h *Handler) today() string {
	return h.now().In(h.loc).Format(dateLayout)
}

package i18n

import (
	"embed"
	"fmt"
	"net/http"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

const (
	XLang  = "X-Lang"
	LangVI = "vi"
	LangEN = "en"
)

// message ids
const (
	MsgUserNotFound  = "UserNotFound"
	MsgUserNotActive = "UserNotActive"
	MsgInvalidPIN    = "InvalidPIN"
	MsgPINExpired    = "PINExpired"
)

//go:embed locales/*.toml
var locales embed.FS

var supportedLangs = []string{LangVI, LangEN}

// Translator manages the message bundle
type Translator struct {
	bundle      *i18n.Bundle
	defaultLang string
}

// New loads the embedded translations. Unknown default languages fall back to vi.
func New(defaultLang string) (*Translator, error) {
	defaultLang = normalizeLang(defaultLang, LangVI)

	bundle := i18n.NewBundle(language.Make(defaultLang))
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read translations: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		if _, err := bundle.LoadMessageFileFS(locales, "locales/"+e.Name()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", e.Name(), err)
		}
	}

	return &Translator{bundle: bundle, defaultLang: defaultLang}, nil
}

func (t *Translator) DefaultLang() string { return t.defaultLang }

// Translate returns the message for lang, or msgID if it is unknown
func (t *Translator) Translate(msgID, lang string) string {
	localizer := i18n.NewLocalizer(t.bundle, lang, t.defaultLang)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: msgID})
	if err != nil {
		return msgID
	}
	return msg
}

// TranslateContext uses the language stored on the gin context
func (t *Translator) TranslateContext(c *gin.Context, msgID string) string {
	lang := c.GetString(XLang)
	if lang == "" {
		lang = t.defaultLang
	}
	return t.Translate(msgID, lang)
}

// FromRequest reads X-Lang, then the first Accept-Language entry.
func (t *Translator) FromRequest(r *http.Request) string {
	if lang := r.Header.Get(XLang); lang != "" {
		return normalizeLang(lang, t.defaultLang)
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		first := strings.TrimSpace(strings.Split(strings.Split(accept, ",")[0], ";")[0])
		return normalizeLang(first, t.defaultLang)
	}
	return t.defaultLang
}

func normalizeLang(lang, fallback string) string {
	code := strings.ToLower(strings.TrimSpace(strings.Split(lang, "-")[0]))
	for _, s := range supportedLangs {
		if code == s {
			return code
		}
	}
	return fallback
}

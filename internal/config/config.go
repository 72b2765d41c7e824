package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort        = "8080"
	DefaultAllowOrigin = "https://kpi.bvx.com.vn"
	DefaultBodyLimit   = 2 << 20
)

type (
	Config struct {
		Server   ServerConfig   `yaml:"server"`
		Database DatabaseConfig `yaml:"database"`
		Auth     AuthConfig     `yaml:"auth"`
		Logger   LoggerConfig   `yaml:"logger"`
		Metrics  MetricsConfig  `yaml:"metrics"`
		App      AppConfig      `yaml:"app"`
	}

	ServerConfig struct {
		Port            string        `yaml:"port"`
		AllowOrigin     string        `yaml:"allow_origin"`
		SessionSecret   string        `yaml:"session_secret"`
		BodyLimit       int64         `yaml:"body_limit"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	}

	// DatabaseConfig: либо готовый DSN, либо набор PG* переменных
	DatabaseConfig struct {
		DSN             string        `yaml:"dsn"`
		Host            string        `yaml:"host"`
		Port            string        `yaml:"port"`
		User            string        `yaml:"user"`
		Password        string        `yaml:"password"`
		Name            string        `yaml:"name"`
		SSLMode         string        `yaml:"ssl_mode"`
		MaxOpenConns    int           `yaml:"max_open_conns"`
		IdleTimeout     time.Duration `yaml:"idle_timeout"`
		ConnectTimeout  time.Duration `yaml:"connect_timeout"`
		QueryTimeout    time.Duration `yaml:"query_timeout"`
		ConnectAttempts int           `yaml:"connect_attempts"`
		AutoMigrate     bool          `yaml:"auto_migrate"`
	}

	AuthConfig struct {
		APIKey  string `yaml:"api_key"`
		PINMode string `yaml:"pin_mode"` // plain, bcrypt
	}

	LoggerConfig struct {
		Level      string `yaml:"level"`     // debug, info, warn, error
		Format     string `yaml:"format"`    // json, console
		Output     string `yaml:"output"`    // stdout, file
		FilePath   string `yaml:"file_path"` // при output=file
		MaxSize    int    `yaml:"max_size"`  // MB
		MaxBackups int    `yaml:"max_backups"`
		MaxAge     int    `yaml:"max_age"` // дней
		Compress   bool   `yaml:"compress"`
		Color      bool   `yaml:"color"`
		Stacktrace bool   `yaml:"stacktrace"`
	}

	MetricsConfig struct {
		Enabled   bool      `yaml:"enabled"`
		Namespace string    `yaml:"namespace"`
		Buckets   []float64 `yaml:"buckets"`
	}

	AppConfig struct {
		TimeZone     string   `yaml:"time_zone"`
		FeatureFlags []string `yaml:"feature_flags"`
		Version      int      `yaml:"version"`
		DefaultLang  string   `yaml:"default_lang"`
	}
)

// Error: одна некорректная настройка
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return "config: " + e.Field + ": " + e.Reason
}

func newError(field, reason string) *Error {
	return &Error{Field: field, Reason: reason}
}

// Load: сначала .env, потом окружение, сверху необязательный YAML.
// Путь к файлу берётся из аргумента или CONFIG_FILE
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := FromEnv()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(resolveEnv(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv собирает конфиг только из окружения и значений по умолчанию
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", getEnv("SERVER_PORT", DefaultPort)),
			AllowOrigin:     getEnv("ALLOW_ORIGIN", DefaultAllowOrigin),
			SessionSecret:   getEnv("SESSION_SECRET", ""),
			BodyLimit:       int64(getEnvInt("BODY_LIMIT", DefaultBodyLimit)),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("PGHOST", "127.0.0.1"),
			Port:            getEnv("PGPORT", "5432"),
			User:            getEnv("PGUSER", "postgres"),
			Password:        getEnv("PGPASSWORD", ""),
			Name:            getEnv("PGDATABASE", "kpi_db"),
			SSLMode:         getEnv("PGSSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			IdleTimeout:     getEnvDuration("DB_IDLE_TIMEOUT", 30*time.Second),
			ConnectTimeout:  getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
			QueryTimeout:    getEnvDuration("DB_QUERY_TIMEOUT", 10*time.Second),
			ConnectAttempts: getEnvInt("DB_CONNECT_ATTEMPTS", 10),
			AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", false),
		},
		Auth: AuthConfig{
			APIKey:  getEnv("API_KEY", ""),
			PINMode: getEnv("PIN_MODE", "plain"),
		},
		Logger: LoggerConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE", "logs/kpi-api.log"),
			MaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
			MaxAge:     getEnvInt("LOG_MAX_AGE", 7),
			Compress:   getEnvBool("LOG_COMPRESS", false),
			Color:      getEnvBool("LOG_COLOR", false),
			Stacktrace: getEnvBool("LOG_STACKTRACE", false),
		},
		Metrics: MetricsConfig{
			Enabled:   getEnvBool("METRICS_ENABLED", true),
			Namespace: getEnv("METRICS_NAMESPACE", "kpi"),
		},
		App: AppConfig{
			TimeZone:     getEnv("TIME_ZONE", "Local"),
			FeatureFlags: splitList(getEnv("FEATURE_FLAGS", "kpi-v1")),
			Version:      getEnvInt("APP_VERSION", 1),
			DefaultLang:  getEnv("DEFAULT_LANG", "vi"),
		},
	}
}

func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return newError("PORT", "must be a number")
	}
	if c.Server.BodyLimit <= 0 {
		return newError("BODY_LIMIT", "must be positive")
	}
	if c.Database.DSN == "" && c.Database.Host == "" {
		return newError("DB_DSN", "either DB_DSN or PGHOST is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return newError("DB_MAX_OPEN_CONNS", "must be positive")
	}
	if c.Database.QueryTimeout <= 0 {
		return newError("DB_QUERY_TIMEOUT", "must be positive")
	}
	if c.Database.ConnectAttempts <= 0 {
		return newError("DB_CONNECT_ATTEMPTS", "must be positive")
	}
	switch strings.ToLower(c.Auth.PINMode) {
	case "", "plain", "bcrypt":
	default:
		return newError("PIN_MODE", "must be plain or bcrypt")
	}
	switch c.Logger.Format {
	case "json", "console":
	default:
		return newError("LOG_FORMAT", "must be json or console")
	}
	switch c.Logger.Output {
	case "stdout":
	case "file":
		if c.Logger.FilePath == "" {
			return newError("LOG_FILE", "required when LOG_OUTPUT=file")
		}
	default:
		return newError("LOG_OUTPUT", "must be stdout or file")
	}
	if _, err := c.Location(); err != nil {
		return newError("TIME_ZONE", err.Error())
	}
	return nil
}

// "Local" и пустая строка означают зону процесса
func (c *Config) Location() (*time.Location, error) {
	switch c.App.TimeZone {
	case "", "Local":
		return time.Local, nil
	}
	return time.LoadLocation(c.App.TimeZone)
}

// PostgresDSN: DB_DSN как есть, иначе собираем key/value DSN из PG* переменных
func (d DatabaseConfig) PostgresDSN() string {
	if d.DSN != "" {
		return d.DSN
	}

	parts := []string{
		"host=" + quoteDSN(d.Host),
		"port=" + quoteDSN(d.Port),
		"user=" + quoteDSN(d.User),
		"dbname=" + quoteDSN(d.Name),
		"sslmode=" + quoteDSN(d.SSLMode),
	}
	if d.Password != "" {
		parts = append(parts, "password="+quoteDSN(d.Password))
	}
	if secs := int(d.ConnectTimeout / time.Second); secs > 0 {
		parts = append(parts, "connect_timeout="+strconv.Itoa(secs))
	}
	return strings.Join(parts, " ")
}

// String для логов, секреты замаскированы
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Port: %s, AllowOrigin: %s, DB: %s, APIKey: %s, SessionSecret: %s, PINMode: %s, TimeZone: %s, Log: %s/%s/%s}",
		c.Server.Port, c.Server.AllowOrigin, c.Database.masked(),
		mask(c.Auth.APIKey), mask(c.Server.SessionSecret), c.Auth.PINMode,
		c.App.TimeZone, c.Logger.Level, c.Logger.Format, c.Logger.Output,
	)
}

func (d DatabaseConfig) masked() string {
	if d.DSN != "" {
		return "*** (dsn masked) ***"
	}
	return fmt.Sprintf("%s@%s:%s/%s", d.User, d.Host, d.Port, d.Name)
}

func mask(s string) string {
	if s == "" {
		return "<unset>"
	}
	return "***"
}

func quoteDSN(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// resolveEnv подставляет ${VAR} и ${VAR:default} в YAML
func resolveEnv(content []byte) []byte {
	regex := regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

	return regex.ReplaceAllFunc(content, func(match []byte) []byte {
		matches := regex.FindSubmatch(match)
		envKey := string(matches[1])
		var defaultValue string

		if len(matches) > 2 {
			defaultValue = string(matches[2])
		}

		if value, exists := os.LookupEnv(envKey); exists {
			return []byte(value)
		}
		return []byte(defaultValue)
	})
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvDuration понимает "30s" и просто число миллисекунд, как в старом .env
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

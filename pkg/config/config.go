package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Session storage backends.
const (
	SessionBackendMemory   = "memory"
	SessionBackendRedis    = "redis"
	SessionBackendPostgres = "postgres"
)

// Data source modes for pages that can run on fixtures.
const (
	DataSourceMock = "mock"
	DataSourceLive = "live"
)

type Config struct {
	Env     string
	Port    int
	Release string

	Backend     BackendConfig
	Session     SessionConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	CORS        CORSConfig
	Log         LogConfig
	Cache       CacheConfig
	UI          UIConfig
	Sentry      SentryConfig
	DataSources map[string]string
}

// BackendConfig describes the upstream school REST API.
type BackendConfig struct {
	BaseURL        string
	LocalURL       string
	ProductionURL  string
	Timeout        time.Duration
	RefreshPath    string
	LoginPath      string
	IdempotencyTTL time.Duration
}

// SessionConfig controls the portal session cookie and its storage.
type SessionConfig struct {
	Backend      string
	CookieName   string
	CookieSecure bool
	TTL          time.Duration
	LoginPath    string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig governs caching of student self-service reads.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// UIConfig holds presentation constants shared by every page.
type UIConfig struct {
	FlashTTL time.Duration
	PageSize int
}

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.Release = v.GetString("RELEASE")

	cfg.Backend = BackendConfig{
		BaseURL:        strings.TrimRight(v.GetString("BACKEND_BASE_URL"), "/"),
		LocalURL:       strings.TrimRight(v.GetString("BACKEND_LOCAL_URL"), "/"),
		ProductionURL:  strings.TrimRight(v.GetString("BACKEND_PRODUCTION_URL"), "/"),
		Timeout:        parseDuration(v.GetString("BACKEND_TIMEOUT"), 15*time.Second),
		RefreshPath:    v.GetString("BACKEND_REFRESH_PATH"),
		LoginPath:      v.GetString("BACKEND_LOGIN_PATH"),
		IdempotencyTTL: parseDuration(v.GetString("IDEMPOTENCY_TTL"), 30*time.Second),
	}

	cfg.Session = SessionConfig{
		Backend:      strings.ToLower(v.GetString("SESSION_BACKEND")),
		CookieName:   v.GetString("SESSION_COOKIE_NAME"),
		CookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
		TTL:          parseDuration(v.GetString("SESSION_TTL"), 7*24*time.Hour),
		LoginPath:    v.GetString("LOGIN_PATH"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_CACHE"),
		TTL:     parseDuration(v.GetString("CACHE_TTL"), 30*time.Second),
	}

	pageSize := v.GetInt("PAGE_SIZE")
	if pageSize <= 0 {
		pageSize = 10
	}
	cfg.UI = UIConfig{
		FlashTTL: parseDuration(v.GetString("FLASH_TTL"), 3*time.Second),
		PageSize: pageSize,
	}

	cfg.Sentry = SentryConfig{DSN: v.GetString("SENTRY_DSN")}
	cfg.DataSources = parseDataSources(v.GetString("DATA_SOURCES"))

	return cfg
}

// BackendURL resolves the upstream base URL once: explicit override first, then the
// environment-specific default.
func (c *Config) BackendURL() string {
	if c.Backend.BaseURL != "" {
		return c.Backend.BaseURL
	}
	if c.Env == EnvProduction {
		return c.Backend.ProductionURL
	}
	return c.Backend.LocalURL
}

// DataSource reports whether a feature reads fixtures or the live backend.
func (c *Config) DataSource(feature string) string {
	if src, ok := c.DataSources[feature]; ok {
		return src
	}
	return DataSourceMock
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("RELEASE", "dev")

	v.SetDefault("BACKEND_BASE_URL", "")
	v.SetDefault("BACKEND_LOCAL_URL", "http://127.0.0.1:8000")
	v.SetDefault("BACKEND_PRODUCTION_URL", "https://eschooladmin.etbur.com")
	v.SetDefault("BACKEND_TIMEOUT", "15s")
	v.SetDefault("BACKEND_REFRESH_PATH", "/api/token/refresh/")
	v.SetDefault("BACKEND_LOGIN_PATH", "/api/login/")
	v.SetDefault("IDEMPOTENCY_TTL", "30s")

	v.SetDefault("SESSION_BACKEND", SessionBackendMemory)
	v.SetDefault("SESSION_COOKIE_NAME", "eschool_session")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("SESSION_TTL", "168h")
	v.SetDefault("LOGIN_PATH", "/login")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "eschool_portal")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("CACHE_TTL", "30s")

	v.SetDefault("FLASH_TTL", "3s")
	v.SetDefault("PAGE_SIZE", 10)

	v.SetDefault("SENTRY_DSN", "")
	v.SetDefault("DATA_SOURCES", "discipline=mock,capacity_building=mock,infrastructure=mock")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// parseDataSources reads "feature=mode" pairs; unknown modes fall back to mock.
func parseDataSources(raw string) map[string]string {
	out := make(map[string]string)
	for _, pair := range splitAndTrim(raw) {
		name, mode, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		mode = strings.ToLower(strings.TrimSpace(mode))
		if name == "" {
			continue
		}
		if mode != DataSourceLive {
			mode = DataSourceMock
		}
		out[name] = mode
	}
	return out
}

// Package config loads the quote service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds the complete application configuration.
type Config struct {
	Log      LogConfig
	Server   ServerConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Tenants  TenantsConfig
	Email    EmailConfig
	PDF      PDFConfig
}

type LogConfig struct {
	Level  string
	Pretty bool
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
	RateLimit       int
	RateWindow      time.Duration
	CORSOrigins     []string
	SwaggerUser     string
	SwaggerPass     string
	// Idempotent replays for POST, PUT and PATCH carrying an Idempotency-Key.
	EnableIdempotency   bool
	IdempotencyTTL      time.Duration
	IdempotencyCapacity int
}

// CacheConfig sizes the pricing snapshot cache.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

type AuthConfig struct {
	Enabled bool
	APIKeys map[string]bool
	// ConsoleSecret signs console tokens. Empty disables console auth.
	ConsoleSecret   string
	ConsoleTokenTTL time.Duration
}

type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

type TenantsConfig struct {
	Dir string
}

// EmailConfig holds Postmark settings. Email is disabled without a token.
type EmailConfig struct {
	PostmarkToken string
	From          string
	ReplyTo       string
	Stream        string
	APIURL        string
	Timeout       time.Duration
	// ShopEmail receives shop copies for tenants without a portal notify address.
	ShopEmail string
}

// Enabled reports whether quote emails can be sent.
func (c EmailConfig) Enabled() bool {
	return c.PostmarkToken != "" && c.From != ""
}

type PDFConfig struct {
	Enabled    bool
	ChromePath string
	Timeout    time.Duration
	// MaxConcurrent caps how many Chrome instances render at once.
	MaxConcurrent int
}

var devOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

// Load reads the configuration from the environment. A .env file in the
// working directory is read first; variables already set win over it.
// Unparsable values fall back to their defaults; settings that contradict each
// other are reported as an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}
	e := source{k}

	cfg := Config{
		Log: LogConfig{
			Level:  e.str("LOG_LEVEL", "info"),
			Pretty: e.boolean("LOG_PRETTY", false),
		},
		Server: ServerConfig{
			Port:                e.str("PORT", "8080"),
			ShutdownTimeout:     e.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
			RateLimit:           e.integer("RATE_LIMIT", 100),
			RateWindow:          e.duration("RATE_WINDOW", time.Minute),
			CORSOrigins:         append(append([]string(nil), devOrigins...), e.list("CORS_ORIGINS")...),
			SwaggerUser:         e.str("SWAGGER_USER", ""),
			SwaggerPass:         e.str("SWAGGER_PASS", ""),
			EnableIdempotency:   e.boolean("ENABLE_IDEMPOTENCY", true),
			IdempotencyTTL:      e.duration("IDEMPOTENCY_TTL", time.Hour),
			IdempotencyCapacity: e.integer("IDEMPOTENCY_CAPACITY", 10000),
		},
		Cache: CacheConfig{
			Size: e.integer("CONFIG_CACHE_SIZE", 256),
			TTL:  e.duration("CONFIG_CACHE_TTL", 5*time.Minute),
		},
		Auth: AuthConfig{
			Enabled:         e.boolean("AUTH_ENABLED", false),
			APIKeys:         e.set("API_KEYS"),
			ConsoleSecret:   e.str("CONSOLE_JWT_SECRET", ""),
			ConsoleTokenTTL: e.duration("CONSOLE_TOKEN_TTL", 12*time.Hour),
		},
		Database: DatabaseConfig{
			URI:                            e.str("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   e.str("MONGODB_DATABASE", "quote_service"),
			LogsTTL:                        e.duration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        e.boolean("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: e.integer("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: e.integer("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          e.duration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Tenants: TenantsConfig{
			Dir: e.str("TENANTS_DIR", "clients"),
		},
		Email: EmailConfig{
			PostmarkToken: e.str("POSTMARK_TOKEN", ""),
			From:          e.str("FROM_EMAIL", ""),
			ReplyTo:       e.str("REPLY_TO_EMAIL", ""),
			Stream:        e.str("POSTMARK_STREAM", "outbound"),
			APIURL:        e.str("POSTMARK_API_URL", "https://api.postmarkapp.com/email"),
			Timeout:       e.duration("EMAIL_TIMEOUT", 30*time.Second),
			ShopEmail:     e.str("SHOP_EMAIL", ""),
		},
		PDF: PDFConfig{
			Enabled:       e.boolean("PDF_ENABLED", true),
			ChromePath:    e.str("CHROME_PATH", ""),
			Timeout:       e.duration("PDF_TIMEOUT", 30*time.Second),
			MaxConcurrent: e.integer("PDF_MAX_CONCURRENT", 4),
		},
	}
	return cfg, cfg.Validate()
}

// MustLoad behaves like Load but panics on error.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate reports every setting that cannot work as configured.
func (c Config) Validate() error {
	var errs []error
	if c.Auth.Enabled && len(c.Auth.APIKeys) == 0 {
		errs = append(errs, errors.New("AUTH_ENABLED requires API_KEYS"))
	}
	if c.Auth.ConsoleSecret != "" && c.Auth.ConsoleTokenTTL <= 0 {
		errs = append(errs, errors.New("CONSOLE_TOKEN_TTL must be positive"))
	}
	if c.Cache.Size <= 0 {
		errs = append(errs, errors.New("CONFIG_CACHE_SIZE must be positive"))
	}
	if c.Server.EnableIdempotency && (c.Server.IdempotencyCapacity <= 0 || c.Server.IdempotencyTTL <= 0) {
		errs = append(errs, errors.New("IDEMPOTENCY_TTL and IDEMPOTENCY_CAPACITY must be positive"))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, errors.New("RATE_LIMIT must not be negative"))
	}
	if c.PDF.Enabled && c.PDF.MaxConcurrent <= 0 {
		errs = append(errs, errors.New("PDF_MAX_CONCURRENT must be positive"))
	}
	if c.Server.SwaggerUser != "" && c.Server.SwaggerPass == "" {
		errs = append(errs, errors.New("SWAGGER_USER requires SWAGGER_PASS"))
	}
	return errors.Join(errs...)
}

// source reads typed values out of the flattened environment.
type source struct{ k *koanf.Koanf }

func (s source) str(key, def string) string {
	if v := strings.TrimSpace(s.k.String(key)); v != "" {
		return v
	}
	return def
}

func (s source) integer(key string, def int) int {
	if i, err := strconv.Atoi(s.str(key, "")); err == nil {
		return i
	}
	return def
}

func (s source) boolean(key string, def bool) bool {
	if b, err := strconv.ParseBool(s.str(key, "")); err == nil {
		return b
	}
	return def
}

func (s source) duration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s.str(key, "")); err == nil {
		return d
	}
	return def
}

// list splits a comma separated value, dropping blanks.
func (s source) list(key string) []string {
	var out []string
	for _, part := range strings.Split(s.k.String(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (s source) set(key string) map[string]bool {
	items := s.list(key)
	if len(items) == 0 {
		return nil
	}
	out := make(map[string]bool, len(items))
	for _, item := range items {
		out[item] = true
	}
	return out
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars. It is built once
// at process start and handed to the components that need it.
type Config struct {
	AppName   string
	Version   string
	Port      string
	GRPCAddr  string
	APIPrefix string

	DatabaseURL   string
	DBMaxOpen     int
	DBMaxIdle     int
	DBMaxLifetime time.Duration

	SecretKey   string
	TokenIssuer string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	TokenLeeway time.Duration

	CORSOrigins  []string
	EnforceRBAC  bool
	MaxBodyBytes int64

	RateBurst     int
	RatePerSecond int

	RedisURL      string
	LoginAttempts int64
	LoginWindow   time.Duration

	AutoMigrate bool
	SeedOnStart bool

	SeedAdminEmail    string
	SeedAdminPassword string
	SeedAdminName     string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		AppName:   fallback(os.Getenv("APP_NAME"), "HRMS Lite"),
		Version:   fallback(os.Getenv("APP_VERSION"), "dev"),
		Port:      fallback(os.Getenv("PORT"), "8000"),
		GRPCAddr:  strings.TrimSpace(lookup("GRPC_ADDR", ":9090")),
		APIPrefix: "/" + strings.Trim(fallback(os.Getenv("API_V1_PREFIX"), "/api/v1"), "/"),

		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxOpen:     intEnv("DB_MAX_OPEN", 25),
		DBMaxIdle:     intEnv("DB_MAX_IDLE", 25),
		DBMaxLifetime: time.Duration(intEnv("DB_MAX_LIFETIME", 300)) * time.Second,

		SecretKey:   strings.TrimSpace(os.Getenv("SECRET_KEY")),
		TokenIssuer: fallback(os.Getenv("TOKEN_ISSUER"), "hrms"),
		AccessTTL:   time.Duration(intEnv("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		RefreshTTL:  time.Duration(intEnv("REFRESH_TOKEN_EXPIRE_DAYS", 7)) * 24 * time.Hour,
		TokenLeeway: time.Duration(intEnv("TOKEN_LEEWAY_SECONDS", 0)) * time.Second,

		CORSOrigins:  parseCSV(fallback(os.Getenv("CORS_ORIGINS"), "http://localhost:3000,http://127.0.0.1:3000")),
		EnforceRBAC:  boolEnv("RBAC_ENFORCE", true),
		MaxBodyBytes: int64(intEnv("MAX_BODY_BYTES", 1<<20)),

		RateBurst:     intEnv("RATE_LIMIT_BURST", 20),
		RatePerSecond: intEnv("RATE_LIMIT_RPS", 5),

		RedisURL:      strings.TrimSpace(os.Getenv("REDIS_URL")),
		LoginAttempts: int64(intEnv("LOGIN_MAX_ATTEMPTS", 10)),
		LoginWindow:   time.Duration(intEnv("LOGIN_WINDOW_SECONDS", 300)) * time.Second,

		AutoMigrate: boolEnv("AUTO_MIGRATE", false),
		SeedOnStart: boolEnv("SEED_ON_START", false),

		SeedAdminEmail:    strings.ToLower(fallback(os.Getenv("SEED_ADMIN_EMAIL"), "admin@hrms.local")),
		SeedAdminPassword: fallback(os.Getenv("SEED_ADMIN_PASSWORD"), "admin123"),
		SeedAdminName:     fallback(os.Getenv("SEED_ADMIN_NAME"), "HRMS Admin"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.SecretKey == "" {
		return Config{}, errors.New("SECRET_KEY is required")
	}
	if cfg.AccessTTL <= 0 {
		return Config{}, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if cfg.RefreshTTL <= 0 {
		return Config{}, errors.New("REFRESH_TOKEN_EXPIRE_DAYS must be positive")
	}
	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

// lookup distinguishes an unset variable from one explicitly set to empty.
func lookup(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func intEnv(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func boolEnv(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

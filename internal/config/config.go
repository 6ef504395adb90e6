// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Server settings.
	Port           string
	AllowedOrigins string

	// Storage settings.
	DatabaseURL    string
	StoreDriver    string // "postgres" or "redis"; users, companies and audit always live in Postgres.
	RedisAddr      string
	RedisDB        int
	OptionCacheTTL time.Duration
	AutoMigrate    bool

	// Secrets.
	JWTSecret   string
	NonceSecret string
	NonceTTL    time.Duration

	// ERP console settings.
	ModulesFile                     string
	MenuPosition                    int
	AdminHomeURL                    string
	CompanySwitchRequiresCapability bool

	// Logging.
	LogEnv   string
	LogLevel string
}

// Load reads configuration from the environment and validates it.
// Callers load .env files before calling Load.
func Load() (Config, error) {
	var errs []string
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	redisDB, err := envInt("REDIS_DB", 0)
	collect(err)
	cacheTTL, err := envDuration("OPTION_CACHE_TTL", 30*time.Second)
	collect(err)
	nonceTTL, err := envDuration("ERP_NONCE_TTL", 24*time.Hour)
	collect(err)
	menuPos, err := envInt("ERP_MENU_POSITION", 9999)
	collect(err)
	gate, err := envBool("ERP_COMPANY_SWITCH_REQUIRES_CAP", true)
	collect(err)
	autoMigrate, err := envBool("AUTO_MIGRATE", false)
	collect(err)

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}

	cfg := Config{
		Port:                            envStr("SERVER_PORT", "8080"),
		AllowedOrigins:                  envStr("ALLOWED_ORIGINS", ""),
		DatabaseURL:                     envStr("DATABASE_URL", ""),
		StoreDriver:                     strings.ToLower(envStr("STORE_DRIVER", "postgres")),
		RedisAddr:                       envStr("REDIS_ADDR", "localhost:6379"),
		RedisDB:                         redisDB,
		OptionCacheTTL:                  cacheTTL,
		AutoMigrate:                     autoMigrate,
		JWTSecret:                       envStr("JWT_SECRET", ""),
		NonceSecret:                     envStr("NONCE_SECRET", ""),
		NonceTTL:                        nonceTTL,
		ModulesFile:                     envStr("ERP_MODULES_FILE", "modules.yaml"),
		MenuPosition:                    menuPos,
		AdminHomeURL:                    envStr("ERP_ADMIN_HOME", "/admin/"),
		CompanySwitchRequiresCapability: gate,
		LogEnv:                          envStr("LOG_ENV", "dev"),
		LogLevel:                        envStr("LOG_LEVEL", "info"),
	}
	if cfg.NonceSecret == "" {
		cfg.NonceSecret = cfg.JWTSecret
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present and consistent.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config: DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	switch c.StoreDriver {
	case "postgres", "redis":
	default:
		return fmt.Errorf("config: STORE_DRIVER must be postgres or redis, got %q", c.StoreDriver)
	}
	if c.NonceTTL <= 0 {
		return fmt.Errorf("config: ERP_NONCE_TTL must be positive")
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a valid integer", key, v)
	}
	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s=%q is not a valid boolean", key, v)
	}
	return b, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a valid duration", key, v)
	}
	return d, nil
}

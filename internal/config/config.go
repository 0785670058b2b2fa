package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"

	// MinSecretLength is the minimum accepted SESSION_SECRET length in bytes.
	MinSecretLength = 32
)

var (
	ErrMissingSecret = errors.New("config: SESSION_SECRET is required")
	ErrShortSecret   = fmt.Errorf("config: SESSION_SECRET must be at least %d bytes", MinSecretLength)
)

type Config struct {
	AppPort string
	GinMode string

	SessionSecret  string
	SessionTTL     time.Duration
	SessionBackend string
	CookieSecure   bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CredentialsDriver string
	CredentialsDSN    string

	StaticDir string
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {

	cfg := Config{

		AppPort: withDefault(getenv("APP_PORT"), "8080"),
		GinMode: getenv("GIN_MODE"),

		SessionSecret:  getenv("SESSION_SECRET"),
		SessionBackend: withDefault(getenv("SESSION_BACKEND"), BackendMemory),

		RedisAddr:     getenv("REDIS_ADDR"),
		RedisPassword: getenv("REDIS_PASSWORD"),

		CredentialsDriver: withDefault(getenv("CREDENTIALS_DRIVER"), "postgres"),
		CredentialsDSN:    getenv("CREDENTIALS_DSN"),

		StaticDir: getenv("STATIC_DIR"),
	}

	switch {
	case cfg.SessionSecret == "":
		return Config{}, ErrMissingSecret
	case len(cfg.SessionSecret) < MinSecretLength:
		return Config{}, ErrShortSecret
	}

	ttl, err := time.ParseDuration(withDefault(getenv("SESSION_TTL"), "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("config: SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("config: SESSION_TTL must be positive, got %s", ttl)
	}
	cfg.SessionTTL = ttl

	switch cfg.SessionBackend {
	case BackendMemory:
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return Config{}, errors.New("config: REDIS_ADDR is required for the redis session backend")
		}
	default:
		return Config{}, fmt.Errorf("config: unknown SESSION_BACKEND %q", cfg.SessionBackend)
	}

	if v := getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	if v := getenv("COOKIE_SECURE"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: COOKIE_SECURE: %w", err)
		}
		cfg.CookieSecure = secure
	}

	return cfg, nil

}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

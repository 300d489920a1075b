package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment with
// an optional .env file on top.
type Config struct {
	Port   string
	DBPath string

	// SessionBackend selects the session store: "sqlite" (default)
	// or "redis".
	SessionBackend  string
	RedisAddr       string
	RedisPassword   string
	SessionLifetime time.Duration

	CORSOrigin   string
	CookieSecure bool
}

// Load reads the configuration. A missing .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:           envOr("PORT", "5000"),
		DBPath:         envOr("BOOKTRACK_DB_PATH", "./booktrack.db"),
		SessionBackend: envOr("SESSION_BACKEND", "sqlite"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		CORSOrigin:     envOr("CORS_ORIGIN", "http://localhost:3000"),
		CookieSecure:   os.Getenv("COOKIE_SECURE") == "true",
	}

	hours := envOr("SESSION_LIFETIME_HOURS", "24")
	h, err := strconv.Atoi(hours)
	if err != nil || h <= 0 {
		return cfg, fmt.Errorf("invalid SESSION_LIFETIME_HOURS: %q", hours)
	}
	cfg.SessionLifetime = time.Duration(h) * time.Hour

	switch cfg.SessionBackend {
	case "sqlite":
	case "redis":
		if cfg.RedisAddr == "" {
			return cfg, fmt.Errorf("SESSION_BACKEND=redis requires REDIS_ADDR")
		}
	default:
		return cfg, fmt.Errorf("unknown SESSION_BACKEND: %q", cfg.SessionBackend)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

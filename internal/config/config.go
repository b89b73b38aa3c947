package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr       string
	DBPath     string
	LogLevel   string
	CORSOrigin string
	Env        string
	BodyLimitMB int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:       envOr("ADDR", ":4000"),
		DBPath:     envOr("DB_PATH", "file:vocadeck.db"),
		LogLevel:   envOr("LOG_LEVEL", "INFO"),
		CORSOrigin: envOr("CORS_ORIGIN", "*"),
		Env:        envOr("ENV", "development"),
		BodyLimitMB: envIntOr("BODY_LIMIT_MB", 2),
	}
}

// Validate checks the configuration and reports every problem at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.CORSOrigin == "" {
		problems = append(problems, "CORS_ORIGIN cannot be empty")
	}
	if c.BodyLimitMB <= 0 {
		problems = append(problems, "BODY_LIMIT_MB must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
// Non-production responses may carry extra diagnostic detail.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

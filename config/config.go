// config/config.go - Environment configuration
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "dev-secret-key-change-in-production"

type Config struct {
	Port        string
	AppEnv      string
	CORSOrigins string

	JWTSecret string
	TokenTTL  time.Duration

	// Storage selects the repository backend: "postgres" or "memory".
	Storage     string
	DatabaseURL string
	DBLogLevel  string

	RateLimit RateLimit
}

// RateLimit holds the token-bucket settings for general and auth routes.
type RateLimit struct {
	Enabled         bool
	MaxRequests     int
	Window          time.Duration
	AuthMaxRequests int
	AuthWindow      time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8000"),
		AppEnv:      getEnv("APP_ENV", "development"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:8081,http://localhost:19006,http://localhost:3000"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenTTL:    time.Duration(getEnvInt("TOKEN_EXPIRE_HOURS", 24)) * time.Hour,
		Storage:     getEnv("STORAGE", "postgres"),
		DatabaseURL: databaseURL(),
		DBLogLevel:  getEnv("DB_LOG_LEVEL", "warn"),
		RateLimit: RateLimit{
			Enabled:         !isFalse(os.Getenv("RATE_LIMIT_ENABLED")),
			MaxRequests:     getEnvInt("RATE_LIMIT_MAX_REQUESTS", 100),
			Window:          time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MS", 900000)) * time.Millisecond,
			AuthMaxRequests: getEnvInt("AUTH_RATE_LIMIT_MAX", 5),
			AuthWindow:      time.Duration(getEnvInt("AUTH_RATE_LIMIT_WINDOW_MS", 300000)) * time.Millisecond,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
		}
		log.Println("Warning: JWT_SECRET not set, using development secret")
		c.JWTSecret = devJWTSecret
	}
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters long")
	}

	switch c.Storage {
	case "postgres", "memory":
	default:
		return fmt.Errorf("STORAGE must be \"postgres\" or \"memory\", got %q", c.Storage)
	}

	if c.RateLimit.Window <= 0 {
		c.RateLimit.Window = 15 * time.Minute
	}
	if c.RateLimit.AuthWindow <= 0 {
		c.RateLimit.AuthWindow = 5 * time.Minute
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = 24 * time.Hour
	}
	return nil
}

// databaseURL prefers DATABASE_URL and falls back to the individual DB_* variables.
func databaseURL() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_NAME", "rcsinavim"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
		log.Printf("Warning: %s=%q is not an integer, using %d", key, val, defaultVal)
	}
	return defaultVal
}

// isFalse reports whether val explicitly disables a flag.
func isFalse(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "false", "0", "no":
		return true
	}
	return false
}

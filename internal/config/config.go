package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP Server
	Port string

	// Device storage
	DBPath string

	// Backend API
	APIBaseURL string
	APITimeout time.Duration

	// Presentation
	DefaultLanguage string

	// Category cache
	CategoryCacheTTL  time.Duration
	CategoryCacheSize int

	LogLevel string
}

// LoadEnvFile loads a .env file for local development. A missing file is not an error.
func LoadEnvFile(paths ...string) {
	_ = godotenv.Load(paths...)
}

func Load() *Config {
	return &Config{
		Port:   getEnv("PORT", "8081"),
		DBPath: getEnv("DB_PATH", "./data/finance.db"),

		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		APITimeout: getEnvDuration("API_TIMEOUT", 10*time.Second),

		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),

		CategoryCacheTTL:  getEnvDuration("CATEGORY_CACHE_TTL", 10*time.Minute),
		CategoryCacheSize: getEnvInt("CATEGORY_CACHE_SIZE", 32),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if strings.TrimSpace(c.DBPath) == "" {
		errors = append(errors, "database path cannot be empty")
	}

	if c.APIBaseURL == "" {
		errors = append(errors, "API base URL cannot be empty")
	} else if u, err := url.Parse(c.APIBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s': %v", c.APIBaseURL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API base URL scheme '%s': must be 'http' or 'https'", u.Scheme))
	} else if u.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s': missing host", c.APIBaseURL))
	}

	if c.APITimeout < 100*time.Millisecond {
		errors = append(errors, fmt.Sprintf("invalid API timeout %v: must be at least 100ms", c.APITimeout))
	} else if c.APITimeout > 2*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid API timeout %v: must be at most 2m", c.APITimeout))
	}

	if strings.TrimSpace(c.DefaultLanguage) == "" {
		errors = append(errors, "default language cannot be empty")
	}

	if c.CategoryCacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid category cache TTL %v: must be at least 1 second", c.CategoryCacheTTL))
	}
	if c.CategoryCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid category cache size %d: must be at least 1", c.CategoryCacheSize))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

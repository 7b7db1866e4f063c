package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds the catalog client configuration
type Config struct {
	// Backend REST resource store
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Session storage driver: "file", "memory" or "redis"
	SessionStore string
	SessionFile  string

	// Redis configuration (required when SessionStore is "redis")
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	config := &Config{}

	// Backend base URL (required)
	config.APIBaseURL = os.Getenv("API_BASE_URL")
	if config.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}

	// HTTP timeout in seconds (default: 10)
	timeoutStr := os.Getenv("HTTP_TIMEOUT")
	if timeoutStr == "" {
		config.HTTPTimeout = 10 * time.Second
	} else {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %s", timeoutStr)
		}
		config.HTTPTimeout = time.Duration(seconds) * time.Second
	}

	// Session store driver (default: file)
	config.SessionStore = os.Getenv("SESSION_STORE")
	if config.SessionStore == "" {
		config.SessionStore = "file"
	}

	switch config.SessionStore {
	case "file":
		config.SessionFile = os.Getenv("SESSION_FILE")
		if config.SessionFile == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to resolve home directory for SESSION_FILE: %w", err)
			}
			config.SessionFile = filepath.Join(home, ".catalog", "session.json")
		}

	case "memory":
		// Nothing to configure

	case "redis":
		config.RedisAddr = os.Getenv("REDIS_ADDR")
		if config.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when SESSION_STORE is redis")
		}
		config.RedisPassword = os.Getenv("REDIS_PASSWORD")
		if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
			db, err := strconv.Atoi(dbStr)
			if err != nil {
				return nil, fmt.Errorf("invalid REDIS_DB: %s", dbStr)
			}
			config.RedisDB = db
		}

	default:
		return nil, fmt.Errorf("invalid SESSION_STORE: %s (must be file, memory or redis)", config.SessionStore)
	}

	// Log level (default: info)
	config.LogLevel = os.Getenv("LOG_LEVEL")
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	return config, nil
}

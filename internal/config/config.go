package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is shared by the dashboard client and the development backend.
// Each binary reads the fields it needs.
type Config struct {
	// Client
	APIBaseURL string
	APITimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Development backend
	Port         string
	StoreDriver  string // postgres or memory
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	JWTSecret    string
	JWTExpiresIn string // minutes
}

func Load() *Config {
	return &Config{
		APIBaseURL: strings.TrimRight(getenv("API_BASE_URL", "http://localhost:8000"), "/"),
		APITimeout: getDuration("API_TIMEOUT", 10*time.Second),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "console"),

		Port:         getenv("PORT", "8000"),
		StoreDriver:  strings.ToLower(getenv("STORE_DRIVER", "memory")),
		DBHost:       getenv("DB_HOST", "localhost"),
		DBPort:       getenv("DB_PORT", "5432"),
		DBUser:       getenv("DB_USER", "postgres"),
		DBPassword:   getenv("DB_PASSWORD", "postgres"),
		DBName:       getenv("DB_NAME", "hotel_db"),
		DBSSLMode:    getenv("DB_SSLMODE", "disable"),
		JWTSecret:    getenv("JWT_SECRET", "supersecret_change_me"),
		JWTExpiresIn: getenv("JWT_EXPIRES_IN", "60"),
	}
}

// TokenTTL parses JWTExpiresIn as minutes, falling back to one hour.
func (c *Config) TokenTTL() time.Duration {
	mins, err := strconv.Atoi(strings.TrimSpace(c.JWTExpiresIn))
	if err != nil || mins <= 0 {
		return 60 * time.Minute
	}
	return time.Duration(mins) * time.Minute
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("API_TIMEOUT", "")
	t.Setenv("STORE_DRIVER", "")

	cfg := Load()
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, "8000", cfg.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://rooms.example.com/")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("STORE_DRIVER", "Postgres")

	cfg := Load()
	assert.Equal(t, "https://rooms.example.com", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, "postgres", cfg.StoreDriver)
}

func TestLoadIgnoresBadDuration(t *testing.T) {
	t.Setenv("API_TIMEOUT", "soon")
	assert.Equal(t, 10*time.Second, Load().APITimeout)
}

func TestTokenTTL(t *testing.T) {
	assert.Equal(t, 15*time.Minute, (&Config{JWTExpiresIn: "15"}).TokenTTL())
	assert.Equal(t, time.Hour, (&Config{JWTExpiresIn: "abc"}).TokenTTL())
	assert.Equal(t, time.Hour, (&Config{JWTExpiresIn: "0"}).TokenTTL())
}

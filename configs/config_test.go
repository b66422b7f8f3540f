package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "REMOTE_TIMEOUT", "PUBLISH_CONCURRENCY", "SWEEP_INTERVAL"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.RemoteTimeout)
	assert.Equal(t, 10, cfg.PublishConcurrency)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REMOTE_TIMEOUT", "3s")
	t.Setenv("PUBLISH_CONCURRENCY", "4")
	t.Setenv("R2_PUBLIC_URL", "https://cdn.example.com")

	cfg := LoadConfig()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.RemoteTimeout)
	assert.Equal(t, 4, cfg.PublishConcurrency)
	assert.Equal(t, "https://cdn.example.com", cfg.R2.PublicURL)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PUBLISH_TIMEOUT", "soon")
	t.Setenv("PUBLISH_CONCURRENCY", "-2")

	cfg := LoadConfig()
	assert.Equal(t, 30*time.Second, cfg.PublishTimeout)
	assert.Equal(t, 10, cfg.PublishConcurrency)
}

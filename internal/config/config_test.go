package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "SMTP_HOST", "SMTP_PORT", "CORS_ALLOWED_ORIGINS", "REALTIME_WRITE_WAIT", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "587", cfg.SMTP.Port)
	assert.False(t, cfg.EmailEnabled())
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.RealtimeWriteWait)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_TLS", "true")
	t.Setenv("SMTP_FROM", "Taskflow <noreply@example.com>")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.EmailEnabled())
	assert.Equal(t, "465", cfg.SMTP.Port)
	assert.True(t, cfg.SMTP.TLS)
	assert.Equal(t, "Taskflow <noreply@example.com>", cfg.SMTP.From)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

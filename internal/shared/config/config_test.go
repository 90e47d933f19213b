package config_test

import (
	"testing"
	"time"

	"go-ess/internal/shared/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("UPSTREAM_TIMEOUT", "")
	t.Setenv("RESOLVE_DEBOUNCE", "")
	t.Setenv("LOCALE", "")
	t.Setenv("TIME_ZONE", "")
	t.Setenv("OUTBOX_POLL_INTERVAL", "")

	cfg := config.Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.ResolveDebounce)
	assert.Equal(t, "en-NG", cfg.Locale)
	assert.Equal(t, "paystack", cfg.Upstream.Provider)
	assert.Equal(t, "Africa/Lagos", cfg.TimeZone)
	assert.Equal(t, 3*time.Second, cfg.OutboxInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("RESOLVE_DEBOUNCE", "250ms")
	t.Setenv("CONNECT_MAX_RETRIES", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.ResolveDebounce)
	assert.Equal(t, 5, cfg.MaxRetries)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PINBOARD_TOKEN", "user:ABCDEF123456")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.pinboard.in/v1", cfg.APIBaseURL)
	assert.Equal(t, "user:ABCDEF123456", cfg.APIToken)
	assert.Equal(t, 20*time.Second, cfg.Timeout)
	assert.Equal(t, 3*time.Second, cfg.RateInterval)
	assert.Equal(t, "stdio", cfg.Transport)
	assert.Equal(t, "pinboard-mcp", cfg.ServerName)
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("PINBOARD_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PINBOARD_TOKEN")
}

func TestLoadMalformedToken(t *testing.T) {
	t.Setenv("PINBOARD_TOKEN", "justatoken")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user:TOKEN")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PINBOARD_TOKEN", "user:ABCDEF123456")
	t.Setenv("PINBOARD_API_URL", "http://localhost:9999/v1")
	t.Setenv("PINBOARD_TIMEOUT_SECONDS", "5")
	t.Setenv("PINBOARD_RATE_LIMIT_SECONDS", "0")
	t.Setenv("MCP_TRANSPORT", "http")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/v1", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, time.Duration(0), cfg.RateInterval)
	assert.Equal(t, "http", cfg.Transport)
}

func TestLoadRejectsPlainHTTPRemote(t *testing.T) {
	t.Setenv("PINBOARD_TOKEN", "user:ABCDEF123456")
	t.Setenv("PINBOARD_API_URL", "http://api.pinboard.in/v1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "https")
}

func TestLoadRejectsBadInt(t *testing.T) {
	t.Setenv("PINBOARD_TOKEN", "user:ABCDEF123456")
	t.Setenv("PINBOARD_TIMEOUT_SECONDS", "soon")

	_, err := Load()
	require.Error(t, err)
}

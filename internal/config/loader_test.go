package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	logger := zerolog.Nop()

	cfg, resolved, err := Load(&logger, path)
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
	assert.Equal(t, Default(), cfg)

	_, err = os.Stat(path)
	require.NoError(t, err, "default config file is created")
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "addr: \":9000\"\nshutdown_timeout: 10s\nrate_limit_per_minute: 30\nallowed_origins:\n  - example.com\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("DEBATE_RATE_LIMIT_PER_MINUTE", "60")
	t.Setenv("DEBATE_LOG_LEVEL", "debug")

	cfg, _, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 60, cfg.RateLimitPerMinute, "env wins over file")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, Default().ReadHeaderTimeout, cfg.ReadHeaderTimeout)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: [unterminated"), 0o600))

	_, _, err := Load(nil, path)
	require.Error(t, err)
}

func TestUpdateFromKeepsUnsetValues(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{Addr: ":1234", LogLevel: "warn"})

	assert.Equal(t, ":1234", cfg.Addr)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, Default().RateLimitPerMinute, cfg.RateLimitPerMinute)
	assert.Equal(t, Default().AllowedOrigins, cfg.AllowedOrigins)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_format: xml\nrate_limit_per_minute: -1\n"), 0o600))

	_, _, err := Load(nil, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_format")
	assert.Contains(t, err.Error(), "rate_limit_per_minute")
}

func TestValidateAcceptsDefaults(t *testing.T) {
	require.NoError(t, Default().Validate())

	cfg := Default()
	cfg.Addr = " "
	assert.ErrorContains(t, cfg.Validate(), "addr is required")
}

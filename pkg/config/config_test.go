package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv(environmentENV, "")
	t.Setenv(configFileENV, "/nonexistent/config.yaml")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "./tmp/gamedex.sqlite", cfg.DatabaseFilePath)
	assert.Equal(t, "127.0.0.1", cfg.ServerHost)
	assert.Equal(t, 3690, cfg.ServerPort)
	assert.True(t, cfg.DatabaseDebug)
	assert.Equal(t, 5*time.Second, cfg.DatabaseBusyTimeout)
}

func TestNewTestEnvironment(t *testing.T) {
	t.Setenv(environmentENV, "test")
	t.Setenv(configFileENV, "/nonexistent/config.yaml")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.DatabaseFilePath)
	assert.Zero(t, cfg.ServerPort)
}

func TestNewWithConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 4100
database:
  debug: true
  file:
    path: /data/override.sqlite
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	t.Setenv(environmentENV, "production")
	t.Setenv(configFileENV, configPath)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 4100, cfg.ServerPort)
	assert.Equal(t, "/data/override.sqlite", cfg.DatabaseFilePath)
	assert.True(t, cfg.DatabaseDebug)
}

func TestNewEnvOverridesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server:\n  port: 4100\n"), 0644))

	t.Setenv(environmentENV, "production")
	t.Setenv(configFileENV, configPath)
	t.Setenv("GAMEDEX_SERVER_PORT", "4200")
	t.Setenv("GAMEDEX_DATABASE_FILE_PATH", "/data/env.sqlite")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 4200, cfg.ServerPort)
	assert.Equal(t, "/data/env.sqlite", cfg.DatabaseFilePath)
}

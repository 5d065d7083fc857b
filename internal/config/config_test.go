package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetRegistryEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"REGISTRY_DB_PATH",
		"REGISTRY_DB_BUSY_TIMEOUT",
		"REGISTRY_DB_OP_TIMEOUT",
		"REGISTRY_LOG_LEVEL",
		"REGISTRY_LOG_DEVELOPMENT",
	} {
		// t.Setenv registers the restore; Unsetenv then clears it for this test.
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetRegistryEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "users.db", cfg.Database.Path)
	assert.Equal(t, 5*time.Second, cfg.Database.BusyTimeout)
	assert.Equal(t, 3*time.Second, cfg.Database.OpTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
}

func TestLoad_FromEnv(t *testing.T) {
	unsetRegistryEnv(t)
	t.Setenv("REGISTRY_DB_PATH", "/tmp/registry-test.db")
	t.Setenv("REGISTRY_DB_BUSY_TIMEOUT", "250ms")
	t.Setenv("REGISTRY_LOG_LEVEL", "debug")
	t.Setenv("REGISTRY_LOG_DEVELOPMENT", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/registry-test.db", cfg.Database.Path)
	assert.Equal(t, 250*time.Millisecond, cfg.Database.BusyTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
}

func TestLoad_InvalidDuration(t *testing.T) {
	unsetRegistryEnv(t)
	t.Setenv("REGISTRY_DB_OP_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{Path: "  ", OpTimeout: time.Second}}
	require.Error(t, cfg.Validate())

	cfg.Database.Path = "x.db"
	require.NoError(t, cfg.Validate())

	cfg.Database.OpTimeout = 0
	require.Error(t, cfg.Validate())

	cfg.Database.OpTimeout = time.Second
	cfg.Database.BusyTimeout = -time.Second
	require.Error(t, cfg.Validate())
}

func TestString(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Path: "x.db", BusyTimeout: time.Second, OpTimeout: 2 * time.Second},
		Log:      LogConfig{Level: "warn"},
	}
	s := cfg.String()
	assert.Contains(t, s, "x.db")
	assert.Contains(t, s, "warn")
}

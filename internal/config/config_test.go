package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv removes keys for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	unsetenv(t, "ANTHROPIC_API_KEY", "NARRATOR_URL", "NARRATOR_MODEL", "NARRATOR_MAX_TOKENS",
		"ANTHROPIC_VERSION", "LOG_LEVEL", "LOG_FILE", "SAVE_DIR")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "https://api.anthropic.com/v1/messages", cfg.NarratorURL)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.NarratorModel)
	assert.Equal(t, 1024, cfg.NarratorMaxTokens)
	assert.Equal(t, "2023-06-01", cfg.AnthropicVersion)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "dungeon.log", cfg.LogFile)
	assert.Equal(t, ".saves", cfg.SaveDir)
	assert.Empty(t, cfg.AnthropicAPIKey)
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.env")
	require.NoError(t, os.WriteFile(path, []byte("NARRATOR_MAX_TOKENS=512\nSAVE_DIR=/tmp/saves\n"), 0644))
	unsetenv(t, "NARRATOR_MAX_TOKENS", "SAVE_DIR")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.NarratorMaxTokens)
	assert.Equal(t, "/tmp/saves", cfg.SaveDir)
}

func TestLoadConfigEnvironmentWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.env")
	require.NoError(t, os.WriteFile(path, []byte("NARRATOR_MODEL=from-file\n"), 0644))
	t.Setenv("NARRATOR_MODEL", "from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.NarratorModel)
}

func TestLoadConfigRejectsBadMaxTokens(t *testing.T) {
	t.Setenv("NARRATOR_MAX_TOKENS", "0")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)

	t.Setenv("NARRATOR_MAX_TOKENS", "lots")
	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

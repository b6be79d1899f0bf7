package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NolinearTang/data-correct/pkg/errors"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", `
log:
  level: debug
  format: console
resolver:
  class:
    custom_chars: "_-."
    start_anchored: true
chatlog:
  delimiter: "\t"
  max_rounds: 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "_-.", cfg.Resolver.Class.CustomChars)
	assert.True(t, cfg.Resolver.Class.StartAnchored)
	assert.Equal(t, "\t", cfg.Chatlog.Delimiter)
	assert.Equal(t, 10, cfg.Chatlog.MaxRounds)
	// Unset keys fall back to defaults.
	assert.Equal(t, DefaultTimeLayouts, cfg.Chatlog.TimeLayouts)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultCustomChars, cfg.Resolver.Class.CustomChars)
	assert.Equal(t, DefaultChatlogMaxRounds, cfg.Chatlog.MaxRounds)
	assert.Equal(t, DefaultChatlogDelimiter, cfg.Chatlog.Delimiter)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATACORRECT_LOG_LEVEL", "warn")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", `
chatlog:
  max_rounds: -1
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestLoad_BadDelimiterRejected(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", `
chatlog:
  delimiter: "||"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestValidate_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "absent.yaml"))
	})
}

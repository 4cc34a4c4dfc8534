package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 200*time.Millisecond, cfg.PreviewDelay)
	assert.True(t, cfg.FallbackOnError)
	assert.Zero(t, cfg.HistoryLimit)
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{
		EnvLogLevel:        "debug",
		EnvLogFormat:       "text",
		EnvHistoryLimit:    "25",
		EnvPreviewDelay:    "50ms",
		EnvFallbackOnError: "false",
		EnvMetrics:         "1",
	}))
	require.NoError(t, err)
	assert.Equal(t, Config{
		LogLevel:        logrus.DebugLevel,
		LogFormat:       FormatText,
		HistoryLimit:    25,
		PreviewDelay:    50 * time.Millisecond,
		FallbackOnError: false,
		Metrics:         true,
	}, cfg)
}

func TestFromEnvRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		EnvLogLevel:        "loud",
		EnvLogFormat:       "xml",
		EnvHistoryLimit:    "-1",
		EnvPreviewDelay:    "soon",
		EnvFallbackOnError: "maybe",
		EnvMetrics:         "yes please",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := FromEnv(lookupFrom(map[string]string{key: value}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(EnvHistoryLimit+"=7\n"), 0o600))
	t.Setenv(EnvHistoryLimit, "")
	require.NoError(t, os.Unsetenv(EnvHistoryLimit))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.HistoryLimit)

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestNewLogger(t *testing.T) {
	cfg := Default()

	logger := cfg.NewLogger(false)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	logger = cfg.NewLogger(true)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

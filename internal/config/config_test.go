package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir is a stand-in for testing.T.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("LoadDefaults", func(t *testing.T) {
		chdir(t, t.TempDir())

		cfg, err := Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "localhost", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)

		assert.True(t, cfg.Metrics.Enabled)
		assert.Equal(t, "mvn", cfg.Build.Tool)
	})

	t.Run("RuntimeOverrides", func(t *testing.T) {
		chdir(t, t.TempDir())

		overrides := map[string]any{
			"server": map[string]any{
				"port": 9000,
				"host": "0.0.0.0",
			},
			"logging": map[string]any{
				"level": "debug",
			},
		}

		cfg, err := Load(ctx, overrides)
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Logging.Level)

		// Non-overridden values keep their defaults.
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.Equal(t, "mvn", cfg.Build.Tool)
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("CODESHIFT_PORT", "3000")
		t.Setenv("CODESHIFT_LOG_LEVEL", "warn")
		t.Setenv("CODESHIFT_METRICS_ENABLED", "false")
		t.Setenv("CODESHIFT_BUILD_TOOL", "gradle")

		cfg, err := Load(ctx)
		require.NoError(t, err)

		assert.Equal(t, 3000, cfg.Server.Port)
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.False(t, cfg.Metrics.Enabled)
		assert.Equal(t, "gradle", cfg.Build.Tool)
	})

	t.Run("ConfigPrecedence", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("CODESHIFT_PORT", "4000")

		overrides := map[string]any{
			"server": map[string]any{
				"port": 5000,
			},
		}

		cfg, err := Load(ctx, overrides)
		require.NoError(t, err)

		// Runtime override beats the env var.
		assert.Equal(t, 5000, cfg.Server.Port)
	})

	t.Run("ConfigFile", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "codeshift.yaml"),
			[]byte("server:\n  port: 7070\nbuild:\n  tool: gradle\n"), 0644))
		chdir(t, dir)

		cfg, err := Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, "gradle", cfg.Build.Tool)
	})
}

func TestLoad_DurationParsing(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CODESHIFT_READ_TIMEOUT", "45s")
	t.Setenv("CODESHIFT_SHUTDOWN_TIMEOUT", "5m")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Server.ShutdownTimeout)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load(context.Background(), map[string]any{
		"logging": map[string]any{"level": "loud"},
	})
	require.Error(t, err)

	_, err = Load(context.Background(), map[string]any{
		"server": map[string]any{"port": 99999},
	})
	require.Error(t, err)
}

func TestGetConfig(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	retrieved := GetConfig()
	require.NotNil(t, retrieved)
	assert.Equal(t, cfg.Server.Port, retrieved.Server.Port)
	assert.Equal(t, cfg.Logging.Level, retrieved.Logging.Level)
}

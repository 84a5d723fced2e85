package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets DK_* overrides for the duration of a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DK_DEFAULT_API_URL", "DK_LOG_LEVEL", "DK_MAX_RETRIES"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("no config.yaml returns defaults", func(t *testing.T) {
		clearEnv(t)
		s, err := Open(t.TempDir())
		require.NoError(t, err)

		cfg, err := s.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "", cfg.DefaultAPIURL)
		assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
		assert.Equal(t, DefaultMaxRetries, cfg.MaxRetries)
	})

	t.Run("full config.yaml loads all values", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		s, err := Open(dir)
		require.NoError(t, err)

		configContent := `default_api_url: https://crudcrud.com/api/abc/discounts
log_level: debug
max_retries: 2
`
		err = os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0644)
		require.NoError(t, err)

		cfg, err := s.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "https://crudcrud.com/api/abc/discounts", cfg.DefaultAPIURL)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 2, cfg.MaxRetries)
	})

	t.Run("partial config.yaml merges with defaults", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		s, err := Open(dir)
		require.NoError(t, err)

		err = os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("max_retries: 1\n"), 0644)
		require.NoError(t, err)

		cfg, err := s.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 1, cfg.MaxRetries)
		assert.Equal(t, DefaultLogLevel, cfg.LogLevel) // default
	})

	t.Run("environment overrides file", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		s, err := Open(dir)
		require.NoError(t, err)

		err = os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log_level: info\n"), 0644)
		require.NoError(t, err)
		t.Setenv("DK_LOG_LEVEL", "debug")
		t.Setenv("DK_DEFAULT_API_URL", "https://example.test/discounts")

		cfg, err := s.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "https://example.test/discounts", cfg.DefaultAPIURL)
	})

	t.Run("invalid environment override returns error", func(t *testing.T) {
		clearEnv(t)
		s, err := Open(t.TempDir())
		require.NoError(t, err)
		t.Setenv("DK_MAX_RETRIES", "many")

		_, err = s.LoadConfig()
		require.Error(t, err)
	})

	t.Run("negative retries rejected", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		s, err := Open(dir)
		require.NoError(t, err)

		err = os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("max_retries: -1\n"), 0644)
		require.NoError(t, err)

		_, err = s.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_retries")
	})

	t.Run("invalid YAML returns error with filename", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		s, err := Open(dir)
		require.NoError(t, err)

		configContent := `log_level: [invalid yaml
this is not valid
`
		err = os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0644)
		require.NoError(t, err)

		_, err = s.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config.yaml")
	})

	t.Run("empty config.yaml returns defaults", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		s, err := Open(dir)
		require.NoError(t, err)

		err = os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(""), 0644)
		require.NoError(t, err)

		cfg, err := s.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
		assert.Equal(t, DefaultMaxRetries, cfg.MaxRetries)
	})
}

func TestDefaultConfig(t *testing.T) {
	t.Run("returns expected defaults", func(t *testing.T) {
		cfg := DefaultConfig()

		assert.Equal(t, "", cfg.DefaultAPIURL)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, 0, cfg.MaxRetries)
	})
}

func TestConfigPath(t *testing.T) {
	t.Run("returns correct path", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Open(dir)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, "config.yaml"), s.ConfigPath())
	})
}

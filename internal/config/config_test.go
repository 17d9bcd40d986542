package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("TABLE_PREFIX", "")
	t.Setenv("JWKS_URL", "")
	t.Setenv("LOG_MAX_FILES", "")

	cfg := Load()

	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "dev_", cfg.TablePrefix)
	assert.Equal(t, 10, cfg.LogMaxFiles)
	assert.True(t, cfg.AuthDisabled())
}

func TestLoad_TablePrefix(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		override string
		want     string
	}{
		{name: "prod", env: "prod", want: "prod_"},
		{name: "test", env: "test", want: "test_"},
		{name: "unknown falls back to dev", env: "staging", want: "dev_"},
		{name: "override wins", env: "prod", override: "custom_", want: "custom_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENVIRONMENT", tt.env)
			t.Setenv("TABLE_PREFIX", tt.override)

			assert.Equal(t, tt.want, Load().TablePrefix)
		})
	}
}

func TestAuthDisabled_OnlyInDev(t *testing.T) {
	assert.False(t, (&Config{Environment: "prod"}).AuthDisabled())
	assert.False(t, (&Config{Environment: "dev", JWKSURL: "https://issuer/jwks.json"}).AuthDisabled())
	assert.True(t, (&Config{Environment: "dev"}).AuthDisabled())
}

func TestGetEnvInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("LOG_MAX_FILES", "abc")
	assert.Equal(t, 7, getEnvInt("LOG_MAX_FILES", 7))

	t.Setenv("LOG_MAX_FILES", "-3")
	assert.Equal(t, 7, getEnvInt("LOG_MAX_FILES", 7))

	t.Setenv("LOG_MAX_FILES", "3")
	assert.Equal(t, 3, getEnvInt("LOG_MAX_FILES", 7))
}

func TestCleanupOldLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"beacon-2025-01-01T00-00-00.000.log",
		"beacon-2025-01-02T00-00-00.000.log",
		"beacon-2025-01-03T00-00-00.000.log",
	}
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}

	require.NoError(t, cleanupOldLogs(dir, 2))

	files, err := filepath.Glob(filepath.Join(dir, logFilePattern))
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.NoFileExists(t, filepath.Join(dir, names[0]))
}

func TestNewLogger_WritesToLogDir(t *testing.T) {
	dir := t.TempDir()
	logger, closeFn, err := NewLogger(&Config{Environment: "prod", LogDir: dir, LogMaxFiles: 5})
	require.NoError(t, err)

	logger.Info("hello")
	require.NoError(t, closeFn())

	files, err := filepath.Glob(filepath.Join(dir, logFilePattern))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8002, cfg.Server.Port)
	assert.Equal(t, "/api", cfg.Server.BasePath)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, 2*time.Second, cfg.Storage.LockWait)
	assert.Equal(t, "test-secret", cfg.Auth.SecretKey)
	assert.True(t, cfg.Sweep.Enabled)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
  log_level: warn
storage:
  backend: postgres
  url: postgres://localhost/coursehub
auth:
  secret_key: yaml-secret
sweep:
  schedule: "@hourly"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Server.LogLevel)
	assert.Equal(t, "postgres", cfg.Storage.Backend)
	assert.Equal(t, "postgres://localhost/coursehub", cfg.Storage.URL)
	assert.Equal(t, "yaml-secret", cfg.Auth.SecretKey)
	assert.Equal(t, "@hourly", cfg.Sweep.Schedule)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
auth:
  secret_key: yaml-secret
`), 0o644))

	t.Setenv("PORT", "9100")
	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("STORAGE_LOCK_WAIT", "500ms")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.Auth.SecretKey)
	assert.Equal(t, 500*time.Millisecond, cfg.Storage.LockWait)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing secret",
			yaml: "storage:\n  backend: file\n  data_dir: ./data\n",
		},
		{
			name: "unknown backend",
			yaml: "storage:\n  backend: dynamo\nauth:\n  secret_key: s\n",
		},
		{
			name: "postgres without url",
			yaml: "storage:\n  backend: postgres\nauth:\n  secret_key: s\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SECRET_KEY", "")
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

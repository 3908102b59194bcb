package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/serenelab/wellspring/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, 60*time.Second, cfg.Model.Timeout())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
model:
  name: custom-model
  timeout_seconds: 5
store:
  backend: redis
  redis_addr: localhost:6379
http_addr: ":9090"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom-model", cfg.Model.Name)
	assert.Equal(t, 5*time.Second, cfg.Model.Timeout())
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "localhost:6379", cfg.Store.RedisAddr)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	// Untouched fields keep their defaults.
	assert.Equal(t, ".wellspring/bookings.json", cfg.BookingsPath)
}

func TestLoad_MalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: ["), 0644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("WELLSPRING_API_KEY", "secret")
	t.Setenv("WELLSPRING_MODEL", "env-model")
	t.Setenv("WELLSPRING_STORE_BACKEND", "memory")

	cfg := config.Default().FromEnv()
	assert.Equal(t, "secret", cfg.Model.APIKey)
	assert.Equal(t, "env-model", cfg.Model.Name)
	assert.Equal(t, "memory", cfg.Store.Backend)
}

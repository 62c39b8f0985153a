package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "info", conf.LogLevel)
	assert.Equal(t, ":8080", conf.HTTP.Addr)
	assert.Equal(t, 5*time.Second, conf.HTTP.ShutdownTimeout)
	assert.Equal(t, StoreMemory, conf.Session.Store)
	assert.Equal(t, 2*time.Hour, conf.Session.TTL)
	assert.Equal(t, "localhost:6379", conf.Redis.Addr)
	assert.False(t, conf.Telemetry.Enabled)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := `log-level: debug
http:
  addr: ":9090"
session:
  store: redis
  ttl: 30m
redis:
  addr: "redis:6379"
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("REDIS_CONNSTRING", "cache:6380")

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", conf.LogLevel)
	assert.Equal(t, ":9090", conf.HTTP.Addr)
	assert.Equal(t, StoreRedis, conf.Session.Store)
	assert.Equal(t, 30*time.Minute, conf.Session.TTL)
	assert.Equal(t, "cache:6380", conf.Redis.Addr)
}

func TestLoad_RejectsUnknownStore(t *testing.T) {
	t.Setenv("SESSION_STORE", "postgres")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestMustLoad_Panics(t *testing.T) {
	t.Setenv("SESSION_TTL", "0s")

	assert.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
	})
}

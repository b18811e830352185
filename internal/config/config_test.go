package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/glyphgrid/pkg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glyphgrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, history.DefaultPolicy, cfg.Policy())

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, DefaultPath, cfg.Store.Path)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
store:
  backend: redis
  redis:
    addr: cache:6379
    ttl: 1h
history:
  window: 250ms
  max_batch_size: 10
server:
  port: 9000
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, "glyphgrid:session:", cfg.Store.Redis.Prefix)
	assert.Equal(t, time.Hour, cfg.Store.Redis.TTL)
	assert.Equal(t, history.Policy{
		Window:       250 * time.Millisecond,
		MaxBatchSpan: history.DefaultPolicy.MaxBatchSpan,
		MaxBatchSize: 10,
	}, cfg.Policy())
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"Backend", "store:\n  backend: s3\n", "unknown store backend"},
		{"Negative", "history:\n  max_batch_size: -1\n", "negative"},
		{"KeyNotHex", "store:\n  encryption_key: zz\n", "not hex"},
		{"KeyLength", "store:\n  encryption_key: " + strings.Repeat("ab", 16) + "\n", "32 bytes"},
		{"Syntax", "store: [\n", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestStoreConfig_Key(t *testing.T) {
	key, err := StoreConfig{}.Key()
	require.NoError(t, err)
	assert.Nil(t, key)

	key, err = StoreConfig{EncryptionKey: strings.Repeat("0f", 32)}.Key()
	require.NoError(t, err)
	assert.Len(t, key, 32)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "*", cfg.Server.CORSOrigin)
	assert.Equal(t, "./data/reports", cfg.Storage.Dir)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 100, cfg.Paging.PageSize)
	assert.Equal(t, 1024, cfg.Codec.MinCompressBytes)
	assert.False(t, cfg.Codec.StrictFieldMap)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
storage:
  dir: /var/lib/reports
database:
  host: db.internal
  user: reports
  password: secret
  name: corrections
paging:
  page_size: 25
codec:
  min_compress_bytes: 4096
  strict_field_map: true
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "*", cfg.Server.CORSOrigin, "unset fields keep their defaults")
	assert.Equal(t, "/var/lib/reports", cfg.Storage.Dir)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Paging.PageSize)
	assert.Equal(t, 4096, cfg.Codec.MinCompressBytes)
	assert.True(t, cfg.Codec.StrictFieldMap)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

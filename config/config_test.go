package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fearly231/enterprise-k8s-platform/cache"
	c "github.com/fearly231/enterprise-k8s-platform/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	t.Setenv(cache.EnvRedisHost, "")
	os.Unsetenv(cache.EnvRedisHost)

	conf, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "localhost", conf.Redis.Host)
	assert.Equal(t, 6379, conf.Redis.Port)
	assert.Equal(t, "0.0.0.0:5000", conf.HTTP.Addr)
	assert.Equal(t, "hits", conf.Visit.Key)
	assert.Equal(t, 0, conf.Visit.ErrorStatus)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(cache.EnvRedisHost, "redis")

	conf, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "redis:6379", conf.Redis.Addr())
}

var confData = `
log:
  env: development
  level: debug
http:
  addr: 127.0.0.1:8080
  max_conns: 64
redis:
  host: cache.internal
  pool:
    max_active: 20
visit:
  key: visits
  error_status: 503
`

func TestLoadFile(t *testing.T) {
	t.Setenv(cache.EnvRedisHost, "")
	confFile := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(confFile, []byte(confData), 0o644))

	conf, err := Load("", "", confFile)
	require.NoError(t, err)
	assert.True(t, c.DebugEnabled())
	assert.Equal(t, "127.0.0.1:8080", conf.HTTP.Addr)
	assert.Equal(t, 64, conf.HTTP.MaxConns)
	assert.Equal(t, "cache.internal:6379", conf.Redis.Addr())
	assert.Equal(t, 20, conf.Redis.Pool.MaxActive)
	assert.Equal(t, cache.DefaultMaxIdle, conf.Redis.Pool.MaxIdle)
	assert.Equal(t, "visits", conf.Visit.Key)
	assert.Equal(t, 503, conf.Visit.ErrorStatus)

	t.Setenv(cache.EnvRedisHost, "override")
	conf, err = Load("", "", confFile)
	require.NoError(t, err)
	assert.Equal(t, "override", conf.Redis.Host)
}

func TestLoadBadFile(t *testing.T) {
	_, err := Load("", t.TempDir(), "missing.yaml")
	assert.Error(t, err)

	confFile := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(confFile, []byte("visit:\n  error_status: 7\n"), 0o644))
	_, err = Load("", "", confFile)
	assert.Error(t, err)

	_, err = Load("http: [", "")
	assert.Error(t, err)
}

var overrideData = `
http:
  addr: 127.0.0.1:9090
visit:
  key: override
`

func TestLoadFilesAndAddon(t *testing.T) {
	t.Setenv(cache.EnvRedisHost, "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yaml"), []byte(confData), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "local.yaml"), []byte(overrideData), 0o644))

	conf, err := Load("", dir, "app.yaml", "local.yaml")
	require.NoError(t, err)
	// 按字段合并,local.yaml中没有的字段保留app.yaml中的值
	assert.Equal(t, "127.0.0.1:9090", conf.HTTP.Addr)
	assert.Equal(t, 64, conf.HTTP.MaxConns)
	assert.Equal(t, "override", conf.Visit.Key)
	assert.Equal(t, 503, conf.Visit.ErrorStatus)
	assert.Equal(t, "cache.internal", conf.Redis.Host)

	conf, err = Load("visit:\n  error_status: 500\n", dir, "app.yaml", "local.yaml")
	require.NoError(t, err)
	assert.Equal(t, "override", conf.Visit.Key)
	assert.Equal(t, 500, conf.Visit.ErrorStatus)

	conf, err = Load("visit: {key: only}", "")
	require.NoError(t, err)
	assert.Equal(t, "only", conf.Visit.Key)
	assert.Equal(t, "0.0.0.0:5000", conf.HTTP.Addr)
}

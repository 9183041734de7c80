package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"FLOW_CONFIG", "FLOW_ADDR", "FLOW_ENV", "FLOW_LOG_LEVEL", "FLOW_SNAPSHOT_KEY", "FLOW_THEME_KEY",
		"FLOW_STORE", "FLOW_STORE_DIR", "DATABASE_URL", "REDIS_URL", "REDIS_PREFIX",
		"MONGO_URI", "MONGO_DATABASE", "MONGO_COLLECTION", "DYNAMODB_TABLE", "AWS_REGION",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, DriverFile, cfg.Store.Driver)
	assert.Equal(t, "flow-data", cfg.SnapshotKey)
	assert.Equal(t, "theme", cfg.ThemeKey)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("FLOW_STORE", "REDIS")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("FLOW_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Store.RedisURL)
	assert.True(t, cfg.IsProduction())
}

func TestLoadFile_TOMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "flow.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr = ":9000"
log_level = "debug"

[store]
driver = "postgres"
database_url = "postgres://file"
`), 0o644))
	t.Setenv("DATABASE_URL", "postgres://env")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "postgres://env", cfg.Store.DatabaseURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"memory", func(c *Config) { c.Store.Driver = DriverMemory }, true},
		{"postgres without url", func(c *Config) { c.Store.Driver = DriverPostgres }, false},
		{"redis without url", func(c *Config) { c.Store.Driver = DriverRedis }, false},
		{"mongo without uri", func(c *Config) { c.Store.Driver = DriverMongo }, false},
		{"dynamodb without table", func(c *Config) { c.Store.Driver = DriverDynamo }, false},
		{"unknown driver", func(c *Config) { c.Store.Driver = "sqlite" }, false},
		{"same keys", func(c *Config) { c.ThemeKey = c.SnapshotKey }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	l, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.NotNil(t, l)

	cfg.LogLevel = "loud"
	_, err = cfg.NewLogger()
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, BackendBolt, cfg.Store.Backend)
	assert.Equal(t, "en", cfg.Language)
}

func TestLoadWithoutFiles(t *testing.T) {
	t.Setenv(constants.ConfigPathEnvVar, "")
	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "sessionflow.toml", `
language = "es"

[store]
backend = "redis"
redis_addr = "cache:6379"
redis_db = 2

[log]
level = "debug"
format = "text"
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "es", cfg.Language)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "cache:6379", cfg.Store.RedisAddr)
	assert.Equal(t, 2, cfg.Store.RedisDB)
	assert.Equal(t, "sessionflow", cfg.Store.RedisPrefix, "unset keys keep their defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadPathFromEnvironment(t *testing.T) {
	path := writeFile(t, "sessionflow.toml", "[store]\nbackend = \"memory\"\n")
	t.Setenv(constants.ConfigPathEnvVar, path)

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "sessionflow.toml", "[store]\nbackend = \"bolt\"\ndatabase = \"x\"\n")
	_, err := Load(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.database")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"), "")
	assert.Error(t, err)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "sessionflow.toml", "[store]\nbackend = \"redis\"\n")
	t.Setenv("SESSIONFLOW_STORE", "memory")
	t.Setenv("SESSIONFLOW_LOG_LEVEL", "warn")

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestDotEnv(t *testing.T) {
	// godotenv never overrides variables that are already set, so register
	// cleanup for the one it will set.
	t.Setenv("SESSIONFLOW_STORE_PATH", "")
	os.Unsetenv("SESSIONFLOW_STORE_PATH")

	envFile := writeFile(t, ".env", "SESSIONFLOW_STORE_PATH=/var/lib/sessionflow/session.db\n")
	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/sessionflow/session.db", cfg.Store.Path)
}

func TestMissingDotEnvIsIgnored(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), ".env"))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"unknown backend", func(c *Config) { c.Store.Backend = "sqlite" }, `unknown store backend "sqlite"`},
		{"bolt without path", func(c *Config) { c.Store.Path = "" }, "store.path is required"},
		{"redis without addr", func(c *Config) {
			c.Store.Backend = BackendRedis
			c.Store.RedisAddr = ""
		}, "store.redis_addr is required"},
		{"negative redis db", func(c *Config) {
			c.Store.Backend = BackendRedis
			c.Store.RedisDB = -1
		}, "store.redis_db"},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, `unknown log level "verbose"`},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, `unknown log format "xml"`},
		{"bad language", func(c *Config) { c.Language = "not a tag!" }, "invalid language"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateMemoryNeedsNothing(t *testing.T) {
	cfg := Default()
	cfg.Store.Backend = BackendMemory
	cfg.Store.Path = ""
	assert.NoError(t, cfg.Validate())
}

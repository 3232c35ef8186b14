package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwantia/traverse/backend/local"
	"github.com/mwantia/traverse/backend/memory"
	"github.com/mwantia/traverse/backend/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, BackendLocal, cfg.Backend)
	assert.Equal(t, "127.0.0.1:8500", cfg.Consul.Address)
	assert.True(t, cfg.S3.UseSSL)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_MergesWithDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
backend: consul
consul:
  address: consul.service:8500
  token: secret
  prefix: traverse/
s3:
  endpoint: localhost:9000
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, BackendConsul, cfg.Backend)
	assert.Equal(t, "consul.service:8500", cfg.Consul.Address)
	assert.Equal(t, "secret", cfg.Consul.Token)
	assert.Equal(t, "traverse/", cfg.Consul.Prefix)
	assert.Equal(t, "localhost:9000", cfg.S3.Endpoint)
	assert.True(t, cfg.S3.UseSSL, "unset values keep their default")
	assert.Equal(t, ".traverse/index.db", cfg.SQLite.Path)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := writeConfig(t, "backend: [local\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_MergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	backendName := BackendMemory
	logFile := "traverse.log"

	cfg.MergeWithFlags(&backendName, nil, &logFile)

	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "traverse.log", cfg.LogFile)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{name: "defaults", modify: func(*Config) {}, valid: true},
		{name: "invalid log level", modify: func(c *Config) { c.LogLevel = "verbose" }},
		{name: "unknown backend", modify: func(c *Config) { c.Backend = "ftp" }},
		{name: "sqlite without path", modify: func(c *Config) { c.Backend = BackendSQLite; c.SQLite.Path = "" }},
		{name: "postgres without conn string", modify: func(c *Config) { c.Backend = BackendPostgres }},
		{name: "s3 without endpoint", modify: func(c *Config) { c.Backend = BackendS3; c.S3.Bucket = "b" }},
		{name: "s3 without bucket", modify: func(c *Config) { c.Backend = BackendS3; c.S3.Endpoint = "localhost:9000" }},
		{name: "postgres", modify: func(c *Config) { c.Backend = BackendPostgres; c.Postgres.ConnString = "postgres://localhost/traverse" }, valid: true},
		{name: "consul", modify: func(c *Config) { c.Backend = BackendConsul }, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestConfig_OpenLister(t *testing.T) {
	t.Run("local", func(t *testing.T) {
		lister, err := DefaultConfig().OpenLister(t.Context())
		require.NoError(t, err)
		defer lister.Close(t.Context())

		assert.IsType(t, &local.LocalBackend{}, lister)
		assert.Equal(t, "local", lister.Name())
	})

	t.Run("memory", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Backend = BackendMemory

		lister, err := cfg.OpenLister(t.Context())
		require.NoError(t, err)
		defer lister.Close(t.Context())

		assert.IsType(t, &memory.MemoryBackend{}, lister)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Backend = BackendSQLite
		cfg.SQLite.Path = filepath.Join(t.TempDir(), "index.db")

		lister, err := cfg.OpenLister(t.Context())
		require.NoError(t, err)
		defer lister.Close(t.Context())

		assert.IsType(t, &sqlite.SQLiteBackend{}, lister)
	})

	t.Run("invalid", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Backend = "ftp"

		_, err := cfg.OpenLister(t.Context())
		assert.Error(t, err)
	})
}

func TestConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer

	cfg := DefaultConfig()
	cfg.LogLevel = "info"

	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("listing %s", "/top")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "listing /top")

	cfg.LogLevel = "loud"
	_, err = cfg.NewLogger(&buf)
	assert.Error(t, err)
}

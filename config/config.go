// Package config loads the YAML configuration of the traverse cli and
// opens the listing backend it selects.
package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/mwantia/traverse/backend"
	"github.com/mwantia/traverse/backend/consul"
	"github.com/mwantia/traverse/backend/local"
	"github.com/mwantia/traverse/backend/memory"
	"github.com/mwantia/traverse/backend/postgres"
	"github.com/mwantia/traverse/backend/s3"
	"github.com/mwantia/traverse/backend/sqlite"
	"github.com/mwantia/traverse/log"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file read when no path is given.
const DefaultPath = ".traverse/config.yaml"

// Backend names accepted by Config.Backend.
const (
	BackendLocal    = "local"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendConsul   = "consul"
	BackendS3       = "s3"
)

var backends = []string{BackendLocal, BackendMemory, BackendSQLite, BackendPostgres, BackendConsul, BackendS3}

// SQLiteConfig configures the sqlite backend
type SQLiteConfig struct {
	// Path of the database file or ":memory:"
	Path string `yaml:"path"`
}

// PostgresConfig configures the postgres backend
type PostgresConfig struct {
	// ConnString is a libpq style connection string or URL
	ConnString string `yaml:"conn_string"`
}

// S3Config configures the s3 backend
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Config represents the traverse cli configuration
type Config struct {
	// LogLevel sets the logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogFile additionally writes logs into a rotated file (optional)
	LogFile string `yaml:"log_file"`

	// Backend selects the listing backend commands operate on
	Backend string `yaml:"backend"`

	SQLite   SQLiteConfig               `yaml:"sqlite"`
	Postgres PostgresConfig             `yaml:"postgres"`
	Consul   consul.ConsulBackendConfig `yaml:"consul"`
	S3       S3Config                   `yaml:"s3"`
}

// DefaultConfig returns a Config listing the local filesystem
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "warn",
		Backend:  BackendLocal,
		SQLite: SQLiteConfig{
			Path: ".traverse/index.db",
		},
		Consul: consul.ConsulBackendConfig{
			Address: "127.0.0.1:8500",
			Prefix:  "/",
		},
		S3: S3Config{
			UseSSL: true,
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// Values missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(backendName, logLevel, logFile *string) {
	if backendName != nil {
		c.Backend = *backendName
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logFile != nil {
		c.LogFile = *logFile
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if _, err := log.Parse(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}

	if !slices.Contains(backends, c.Backend) {
		return fmt.Errorf("invalid backend %q, must be one of: %v", c.Backend, backends)
	}

	switch c.Backend {
	case BackendSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("sqlite.path cannot be empty when using the sqlite backend")
		}
	case BackendPostgres:
		if c.Postgres.ConnString == "" {
			return fmt.Errorf("postgres.conn_string cannot be empty when using the postgres backend")
		}
	case BackendS3:
		if c.S3.Endpoint == "" {
			return fmt.Errorf("s3.endpoint cannot be empty when using the s3 backend")
		}
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket cannot be empty when using the s3 backend")
		}
	}

	return nil
}

// NewLogger creates the logger described by the configuration.
// Messages go to w, or only into LogFile when it is set.
func (c *Config) NewLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.Parse(c.LogLevel)
	if err != nil {
		return nil, err
	}

	if c.LogFile != "" {
		return log.NewLogger("traverse", level, c.LogFile, true), nil
	}

	return log.NewWriterLogger(w, "traverse", level), nil
}

// OpenLister creates and opens the configured backend.
// The caller is responsible for closing it.
func (c *Config) OpenLister(ctx context.Context) (backend.Lister, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	lister, err := c.newLister(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s backend: %w", c.Backend, err)
	}

	if err := lister.Open(ctx); err != nil {
		lister.Close(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("failed to open %s backend: %w", c.Backend, err)
	}

	return lister, nil
}

func (c *Config) newLister(ctx context.Context) (backend.Lister, error) {
	switch c.Backend {
	case BackendMemory:
		return memory.NewMemoryBackend(), nil
	case BackendSQLite:
		return sqlite.NewSQLiteBackend(c.SQLite.Path)
	case BackendPostgres:
		return postgres.NewPostgresBackend(ctx, c.Postgres.ConnString)
	case BackendConsul:
		consulConfig := c.Consul
		return consul.NewConsulBackend(&consulConfig)
	case BackendS3:
		return s3.NewS3Backend(c.S3.Endpoint, c.S3.Bucket, c.S3.AccessKey, c.S3.SecretKey, c.S3.UseSSL)
	default:
		return local.NewLocalBackend(), nil
	}
}

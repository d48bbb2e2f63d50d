// Package config assembles the PrimeLeads runtime configuration. Values
// resolve in order: TOML file, environment overlay file, section defaults,
// then PRIMELEADS_* variables, which always win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/database"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvPrimeLeadsConfig          = "PRIMELEADS_CONFIG"
	EnvPrimeLeadsEnv             = "PRIMELEADS_ENV"
	EnvPrimeLeadsShutdownTimeout = "PRIMELEADS_SHUTDOWN_TIMEOUT"
	EnvPrimeLeadsVersion         = "PRIMELEADS_VERSION"
)

var databaseEnv = &database.Env{
	DSN:             "PRIMELEADS_DB_DSN",
	Host:            "PRIMELEADS_DB_HOST",
	Port:            "PRIMELEADS_DB_PORT",
	Name:            "PRIMELEADS_DB_NAME",
	User:            "PRIMELEADS_DB_USER",
	Password:        "PRIMELEADS_DB_PASSWORD",
	SSLMode:         "PRIMELEADS_DB_SSL_MODE",
	MaxOpenConns:    "PRIMELEADS_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "PRIMELEADS_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "PRIMELEADS_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "PRIMELEADS_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Provider:         "PRIMELEADS_STORAGE_PROVIDER",
	Root:             "PRIMELEADS_STORAGE_ROOT",
	ContainerName:    "PRIMELEADS_STORAGE_CONTAINER_NAME",
	ConnectionString: "PRIMELEADS_STORAGE_CONNECTION_STRING",
}

// Config is the root configuration for PrimeLeads.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Agent           AgentConfig     `toml:"agent"`
	Pipeline        PipelineConfig  `toml:"pipeline"`
	Search          SearchConfig    `toml:"search"`
	RAG             RAGConfig       `toml:"rag"`
	Bot             BotConfig       `toml:"bot"`
	Metrics         MetricsConfig   `toml:"metrics"`
	Log             LogConfig       `toml:"log"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the PRIMELEADS_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvPrimeLeadsEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	return duration(c.ShutdownTimeout)
}

// Load reads the config file named by PRIMELEADS_CONFIG (config.toml when
// unset), layers the config.<env>.toml overlay found beside it, and
// finalizes every section. A missing base file is not an error.
func Load() (*Config, error) {
	base := configPath()

	cfg := &Config{}
	if err := decodeFile(base, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if env := os.Getenv(EnvPrimeLeadsEnv); env != "" {
		path := filepath.Join(filepath.Dir(base), fmt.Sprintf(OverlayConfigPattern, env))
		overlay := &Config{}
		switch err := decodeFile(path, overlay); {
		case err == nil:
			cfg.Merge(overlay)
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("overlay: %w", err)
		}
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}
	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	mergeString(&c.ShutdownTimeout, overlay.ShutdownTimeout)
	mergeString(&c.Version, overlay.Version)
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Agent.Merge(&overlay.Agent)
	c.Pipeline.Merge(&overlay.Pipeline)
	c.Search.Merge(&overlay.Search)
	c.RAG.Merge(&overlay.RAG)
	c.Bot.Merge(&overlay.Bot)
	c.Metrics.Merge(&overlay.Metrics)
	c.Log.Merge(&overlay.Log)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}

	sections := []struct {
		name     string
		finalize func() error
	}{
		{"server", c.Server.Finalize},
		{"database", func() error { return c.Database.Finalize(databaseEnv) }},
		{"storage", func() error { return c.Storage.Finalize(storageEnv) }},
		{"api", c.API.Finalize},
		{"agent", c.Agent.Finalize},
		{"pipeline", c.Pipeline.Finalize},
		{"search", c.Search.Finalize},
		{"rag", c.RAG.Finalize},
		{"bot", c.Bot.Finalize},
		{"metrics", c.Metrics.Finalize},
		{"log", c.Log.Finalize},
	}

	var errs []error
	for _, s := range sections {
		if err := s.finalize(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) loadDefaults() {
	c.ShutdownTimeout = or(c.ShutdownTimeout, "30s")
	c.Version = or(c.Version, "0.1.0")
	c.Database.Name = or(c.Database.Name, "primeleads")
	c.Database.User = or(c.Database.User, "primeleads")
}

func (c *Config) loadEnv() {
	envString(EnvPrimeLeadsShutdownTimeout, &c.ShutdownTimeout)
	envString(EnvPrimeLeadsVersion, &c.Version)
}

func (c *Config) validate() error {
	return checkDuration("shutdown_timeout", c.ShutdownTimeout)
}

// decodeFile strictly decodes path into cfg; keys that map to no field
// are rejected so typos surface at startup.
func decodeFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return fmt.Errorf("parse %s: %s", path, sme.String())
		}
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func configPath() string {
	if path := os.Getenv(EnvPrimeLeadsConfig); path != "" {
		return path
	}
	return BaseConfigFile
}

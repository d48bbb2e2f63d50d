package database

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config describes the postgres instance holding prompts, runs and the
// knowledge base. A non-empty DSN replaces the discrete connection fields.
type Config struct {
	DSN             string `toml:"dsn"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	Name            string `toml:"name"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	SSLMode         string `toml:"ssl_mode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime string `toml:"conn_max_lifetime"`
	ConnTimeout     string `toml:"conn_timeout"`
}

// Env names the environment variable for each Config field.
type Env struct {
	DSN             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    string
	MaxIdleConns    string
	ConnMaxLifetime string
	ConnTimeout     string
}

func (c *Config) ConnMaxLifetimeDuration() time.Duration {
	d, _ := time.ParseDuration(c.ConnMaxLifetime)
	return d
}

// ConnTimeoutDuration bounds how long startup keeps trying to reach postgres.
func (c *Config) ConnTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ConnTimeout)
	return d
}

// URL returns a postgres:// connection string, accepted by both the pgx
// driver and the migration tool.
func (c *Config) URL() string {
	if c.DSN != "" {
		return c.DSN
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// Finalize fills defaults, applies env overrides when env is non-nil, and validates.
func (c *Config) Finalize(env *Env) error {
	c.defaults()
	if env != nil {
		c.fromEnv(env)
	}
	return c.validate()
}

func (c *Config) Merge(o *Config) {
	mergeString(&c.DSN, o.DSN)
	mergeString(&c.Host, o.Host)
	mergeInt(&c.Port, o.Port)
	mergeString(&c.Name, o.Name)
	mergeString(&c.User, o.User)
	mergeString(&c.Password, o.Password)
	mergeString(&c.SSLMode, o.SSLMode)
	mergeInt(&c.MaxOpenConns, o.MaxOpenConns)
	mergeInt(&c.MaxIdleConns, o.MaxIdleConns)
	mergeString(&c.ConnMaxLifetime, o.ConnMaxLifetime)
	mergeString(&c.ConnTimeout, o.ConnTimeout)
}

func (c *Config) defaults() {
	mergeString(&c.Host, or(c.Host, "localhost"))
	mergeInt(&c.Port, or(c.Port, 5432))
	mergeString(&c.SSLMode, or(c.SSLMode, "disable"))
	mergeInt(&c.MaxOpenConns, or(c.MaxOpenConns, 25))
	mergeInt(&c.MaxIdleConns, or(c.MaxIdleConns, 5))
	mergeString(&c.ConnMaxLifetime, or(c.ConnMaxLifetime, "15m"))
	mergeString(&c.ConnTimeout, or(c.ConnTimeout, "10s"))
}

func (c *Config) fromEnv(env *Env) {
	envString(env.DSN, &c.DSN)
	envString(env.Host, &c.Host)
	envInt(env.Port, &c.Port)
	envString(env.Name, &c.Name)
	envString(env.User, &c.User)
	envString(env.Password, &c.Password)
	envString(env.SSLMode, &c.SSLMode)
	envInt(env.MaxOpenConns, &c.MaxOpenConns)
	envInt(env.MaxIdleConns, &c.MaxIdleConns)
	envString(env.ConnMaxLifetime, &c.ConnMaxLifetime)
	envString(env.ConnTimeout, &c.ConnTimeout)
}

func (c *Config) validate() error {
	var errs []error
	if c.DSN == "" && c.Name == "" {
		errs = append(errs, errors.New("database name required"))
	}
	if c.DSN == "" && c.User == "" {
		errs = append(errs, errors.New("database user required"))
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		errs = append(errs, fmt.Errorf("max_idle_conns %d exceeds max_open_conns %d", c.MaxIdleConns, c.MaxOpenConns))
	}
	if _, err := time.ParseDuration(c.ConnMaxLifetime); err != nil {
		errs = append(errs, fmt.Errorf("conn_max_lifetime: %w", err))
	}
	if d, err := time.ParseDuration(c.ConnTimeout); err != nil || d <= 0 {
		errs = append(errs, fmt.Errorf("conn_timeout must be a positive duration, got %q", c.ConnTimeout))
	}
	return errors.Join(errs...)
}

func or[T comparable](v, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}
	return v
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergeInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func envString(name string, dst *string) {
	if name == "" {
		return
	}
	mergeString(dst, os.Getenv(name))
}

func envInt(name string, dst *int) {
	if name == "" {
		return
	}
	if n, err := strconv.Atoi(os.Getenv(name)); err == nil {
		*dst = n
	}
}

package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

const (
	EnvServerHost            = "PRIMELEADS_SERVER_HOST"
	EnvServerPort            = "PRIMELEADS_SERVER_PORT"
	EnvServerReadTimeout     = "PRIMELEADS_SERVER_READ_TIMEOUT"
	EnvServerWriteTimeout    = "PRIMELEADS_SERVER_WRITE_TIMEOUT"
	EnvServerShutdownTimeout = "PRIMELEADS_SERVER_SHUTDOWN_TIMEOUT"
)

// ServerConfig controls the HTTP listener. The write timeout covers a full
// pipeline request, which chains three model calls, so it defaults to 15m.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	return duration(c.ReadTimeout)
}

func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	return duration(c.WriteTimeout)
}

func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return duration(c.ShutdownTimeout)
}

func (c *ServerConfig) Finalize() error {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	c.ReadTimeout = or(c.ReadTimeout, "1m")
	c.WriteTimeout = or(c.WriteTimeout, "15m")
	c.ShutdownTimeout = or(c.ShutdownTimeout, "30s")

	envString(EnvServerHost, &c.Host)
	envInt(EnvServerPort, &c.Port)
	envString(EnvServerReadTimeout, &c.ReadTimeout)
	envString(EnvServerWriteTimeout, &c.WriteTimeout)
	envString(EnvServerShutdownTimeout, &c.ShutdownTimeout)

	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}
	errs = append(errs,
		checkDuration("read_timeout", c.ReadTimeout),
		checkDuration("write_timeout", c.WriteTimeout),
		checkDuration("shutdown_timeout", c.ShutdownTimeout),
	)
	return errors.Join(errs...)
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	mergeString(&c.Host, overlay.Host)
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	mergeString(&c.ReadTimeout, overlay.ReadTimeout)
	mergeString(&c.WriteTimeout, overlay.WriteTimeout)
	mergeString(&c.ShutdownTimeout, overlay.ShutdownTimeout)
}

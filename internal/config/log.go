package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	EnvLogLevel  = "PRIMELEADS_LOG_LEVEL"
	EnvLogFormat = "PRIMELEADS_LOG_FORMAT"
)

// LogConfig selects the slog handler the service writes with. Format is
// text for terminals or json for log shippers.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

func (c *LogConfig) Finalize() error {
	c.Level = or(c.Level, "info")
	c.Format = or(c.Format, "text")
	envString(EnvLogLevel, &c.Level)
	envString(EnvLogFormat, &c.Format)
	c.Level = strings.ToLower(c.Level)
	c.Format = strings.ToLower(c.Format)

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return fmt.Errorf("invalid level %q", c.Level)
	}
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("invalid format %q: want text or json", c.Format)
	}
	return nil
}

func (c *LogConfig) Merge(overlay *LogConfig) {
	mergeString(&c.Level, overlay.Level)
	mergeString(&c.Format, overlay.Format)
}

// Logger builds a logger writing to w. Unset or invalid values fall back
// to info-level text.
func (c *LogConfig) Logger(w io.Writer) *slog.Logger {
	var lvl slog.Level
	_ = lvl.UnmarshalText([]byte(c.Level))
	opts := &slog.HandlerOptions{Level: lvl}

	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

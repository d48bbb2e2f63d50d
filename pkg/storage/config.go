package storage

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	ProviderLocal = "local"
	ProviderAzure = "azure"
)

// Config picks where rendered PDF reports and exported lead lists are kept.
// Local writes under Root; azure writes to a blob container.
type Config struct {
	Provider         string `toml:"provider"`
	Root             string `toml:"root"`
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
}

// Env names override variables; empty names are ignored.
type Env struct {
	Provider         string
	Root             string
	ContainerName    string
	ConnectionString string
}

func (c *Config) fields() []*string {
	return []*string{&c.Provider, &c.Root, &c.ContainerName, &c.ConnectionString}
}

func (c *Config) Finalize(env *Env) error {
	if c.Provider == "" {
		c.Provider = ProviderLocal
	}
	if c.Root == "" {
		c.Root = "outputs"
	}
	if c.ContainerName == "" {
		c.ContainerName = "artifacts"
	}

	if env != nil {
		names := []string{env.Provider, env.Root, env.ContainerName, env.ConnectionString}
		for i, f := range c.fields() {
			if names[i] == "" {
				continue
			}
			if v := os.Getenv(names[i]); v != "" {
				*f = v
			}
		}
	}
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))

	switch c.Provider {
	case ProviderLocal:
		if c.Root == "" {
			return errors.New("root required for local storage")
		}
	case ProviderAzure:
		var errs []error
		if c.ContainerName == "" {
			errs = append(errs, errors.New("container_name required"))
		}
		if c.ConnectionString == "" {
			errs = append(errs, errors.New("connection_string required"))
		}
		return errors.Join(errs...)
	default:
		return fmt.Errorf("unknown storage provider %q", c.Provider)
	}
	return nil
}

// Merge copies every non-empty overlay field onto c.
func (c *Config) Merge(overlay *Config) {
	src := overlay.fields()
	for i, f := range c.fields() {
		if v := *src[i]; v != "" {
			*f = v
		}
	}
}

package openapi

import "os"

const (
	defaultTitle       = "PrimeLeads API"
	defaultDescription = "Lead generation and recruiting automation: growth reports, ICP and persona synthesis, LinkedIn search queries, candidate scoring, and knowledge-base chat."
)

// Config is the document metadata exposed at /openapi.json.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// ConfigEnv names override variables; empty names are ignored.
type ConfigEnv struct {
	Title       string
	Description string
}

func (c *Config) Finalize(env *ConfigEnv) error {
	if c.Title == "" {
		c.Title = defaultTitle
	}
	if c.Description == "" {
		c.Description = defaultDescription
	}
	if env != nil {
		override(env.Title, &c.Title)
		override(env.Description, &c.Description)
	}
	return nil
}

func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
}

// Info builds the document's info object for the given release.
func (c *Config) Info(version string) Info {
	return Info{Title: c.Title, Version: version, Description: c.Description}
}

func override(name string, dst *string) {
	if name == "" {
		return
	}
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

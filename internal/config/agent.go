package config

import (
	"fmt"
	"maps"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentName         = "PRIMELEADS_AGENT_NAME"
	EnvAgentProviderName = "PRIMELEADS_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "PRIMELEADS_AGENT_BASE_URL"
	EnvAgentModelName    = "PRIMELEADS_AGENT_MODEL_NAME"
	EnvAgentToken        = "PRIMELEADS_AGENT_TOKEN"
	EnvAgentDeployment   = "PRIMELEADS_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion   = "PRIMELEADS_AGENT_API_VERSION"
	EnvAgentAuthType     = "PRIMELEADS_AGENT_AUTH_TYPE"
)

// providers that run locally and need no credentials
var keylessProviders = map[string]bool{
	"ollama": true,
}

// AgentConfig describes the LLM provider used by every generation stage.
// Options are passed through to the go-agents provider (token, deployment,
// api_version, auth_type).
type AgentConfig struct {
	Name     string         `toml:"name"`
	Provider string         `toml:"provider"`
	BaseURL  string         `toml:"base_url"`
	Model    string         `toml:"model"`
	Options  map[string]any `toml:"options"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AgentConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. Options are merged key by key.
func (c *AgentConfig) Merge(overlay *AgentConfig) {
	if overlay.Name != "" {
		c.Name = overlay.Name
	}
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if len(overlay.Options) > 0 {
		if c.Options == nil {
			c.Options = make(map[string]any, len(overlay.Options))
		}
		maps.Copy(c.Options, overlay.Options)
	}
}

// Agent converts the settings into a go-agents AgentConfig, starting from the
// go-agents defaults.
func (c *AgentConfig) Agent() gaconfig.AgentConfig {
	cfg := gaconfig.DefaultAgentConfig()

	if c.Name != "" {
		cfg.Name = c.Name
	}
	if cfg.Provider == nil {
		cfg.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Provider != "" {
		cfg.Provider.Name = c.Provider
	}
	if c.BaseURL != "" {
		cfg.Provider.BaseURL = c.BaseURL
	}

	options := make(map[string]any, len(cfg.Provider.Options)+len(c.Options))
	maps.Copy(options, cfg.Provider.Options)
	maps.Copy(options, c.Options)
	cfg.Provider.Options = options

	if cfg.Model == nil {
		cfg.Model = &gaconfig.ModelConfig{}
	}
	if c.Model != "" {
		cfg.Model.Name = c.Model
	}

	return cfg
}

func (c *AgentConfig) loadDefaults() {
	if c.Name == "" {
		c.Name = "primeleads"
	}
	if c.Provider == "" {
		c.Provider = "ollama"
	}
	if c.BaseURL == "" && c.Provider == "ollama" {
		c.BaseURL = "http://localhost:11434"
	}
	if c.Model == "" {
		c.Model = "llama3.1:8b"
	}
	if c.Options == nil {
		c.Options = make(map[string]any)
	}
}

func (c *AgentConfig) loadEnv() {
	envString(EnvAgentName, &c.Name)
	envString(EnvAgentProviderName, &c.Provider)
	envString(EnvAgentBaseURL, &c.BaseURL)
	envString(EnvAgentModelName, &c.Model)

	option := func(name, key string) {
		var v string
		envString(name, &v)
		if v != "" {
			c.Options[key] = v
		}
	}

	option(EnvAgentToken, "token")
	option(EnvAgentDeployment, "deployment")
	option(EnvAgentAPIVersion, "api_version")
	option(EnvAgentAuthType, "auth_type")
}

func (c *AgentConfig) validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider required (%s)", EnvAgentProviderName)
	}
	if c.Model == "" {
		return fmt.Errorf("model required (%s)", EnvAgentModelName)
	}
	if !keylessProviders[c.Provider] {
		if tok, _ := c.Options["token"].(string); tok == "" {
			return fmt.Errorf("token required for provider %s (%s)", c.Provider, EnvAgentToken)
		}
	}
	return nil
}

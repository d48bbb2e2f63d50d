package config

import "fmt"

const (
	EnvSearchAPIKey   = "PRIMELEADS_SEARCH_API_KEY"
	EnvSearchEngineID = "PRIMELEADS_SEARCH_ENGINE_ID"
	EnvSearchSite     = "PRIMELEADS_SEARCH_SITE"
	EnvSearchPages    = "PRIMELEADS_SEARCH_PAGES"
	EnvSearchPageSize = "PRIMELEADS_SEARCH_PAGE_SIZE"
)

// SearchConfig holds the Google Custom Search credentials and paging.
// The key and engine ID are checked when the searcher is constructed, so
// commands that never search can run without them.
type SearchConfig struct {
	APIKey   string `toml:"api_key"`
	EngineID string `toml:"engine_id"`
	Site     string `toml:"site"`
	Pages    int    `toml:"pages"`
	PageSize int    `toml:"page_size"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *SearchConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *SearchConfig) Merge(overlay *SearchConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.EngineID != "" {
		c.EngineID = overlay.EngineID
	}
	if overlay.Site != "" {
		c.Site = overlay.Site
	}
	if overlay.Pages != 0 {
		c.Pages = overlay.Pages
	}
	if overlay.PageSize != 0 {
		c.PageSize = overlay.PageSize
	}
}

func (c *SearchConfig) loadDefaults() {
	if c.Site == "" {
		c.Site = "linkedin.com/in"
	}
	if c.Pages == 0 {
		c.Pages = 2
	}
	if c.PageSize == 0 {
		c.PageSize = 10
	}
}

func (c *SearchConfig) loadEnv() {
	envString(EnvSearchAPIKey, &c.APIKey)
	envString(EnvSearchEngineID, &c.EngineID)
	envString(EnvSearchSite, &c.Site)
	envInt(EnvSearchPages, &c.Pages)
	envInt(EnvSearchPageSize, &c.PageSize)
}

func (c *SearchConfig) validate() error {
	if c.Pages < 1 {
		return fmt.Errorf("pages must be positive")
	}
	if c.PageSize < 1 || c.PageSize > 10 {
		return fmt.Errorf("page_size must be between 1 and 10, got %d", c.PageSize)
	}
	return nil
}

package config

import (
	"fmt"
	"time"
)

const (
	EnvPipelineDefaultURLFile = "PRIMELEADS_PIPELINE_DEFAULT_URL_FILE"
	EnvPipelineGrowthRetries  = "PRIMELEADS_PIPELINE_GROWTH_RETRIES"
	EnvPipelineICPRetries     = "PRIMELEADS_PIPELINE_ICP_RETRIES"
	EnvPipelineQueryRetries   = "PRIMELEADS_PIPELINE_QUERY_RETRIES"
	EnvPipelineSearchRetries  = "PRIMELEADS_PIPELINE_SEARCH_RETRIES"
	EnvPipelineHotThreshold   = "PRIMELEADS_PIPELINE_HOT_THRESHOLD"
	EnvPipelineWarmThreshold  = "PRIMELEADS_PIPELINE_WARM_THRESHOLD"
	EnvPipelineMaxCandidates  = "PRIMELEADS_PIPELINE_MAX_CANDIDATES"
	EnvPipelineScoringWorkers = "PRIMELEADS_PIPELINE_SCORING_WORKERS"
	EnvPipelineStageTimeout   = "PRIMELEADS_PIPELINE_STAGE_TIMEOUT"
)

// PipelineConfig holds the tunables of the lead and recruiting pipelines.
// Thresholds and required key lists are carried as configuration because
// their values are business choices rather than derived rules.
//
// Retry counts are pointers so that an explicit 0 in a file disables
// retries instead of falling back to the default. Read them through the
// *RetryCount accessors.
type PipelineConfig struct {
	DefaultURLFile     string   `toml:"default_url_file"`
	GrowthRetries      *int     `toml:"growth_retries"`
	ICPRetries         *int     `toml:"icp_retries"`
	QueryRetries       *int     `toml:"query_retries"`
	SearchRetries      *int     `toml:"search_retries"`
	GrowthRequiredKeys []string `toml:"growth_required_keys"`
	ICPRequiredKeys    []string `toml:"icp_required_keys"`
	HotThreshold       float64  `toml:"hot_threshold"`
	WarmThreshold      float64  `toml:"warm_threshold"`
	MaxCandidates      int      `toml:"max_candidates"`
	ScoringWorkers     int      `toml:"scoring_workers"`
	StageTimeout       string   `toml:"stage_timeout"`
}

// StageTimeoutDuration bounds a single model call inside a stage.
func (c *PipelineConfig) StageTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.StageTimeout)
	return d
}

func (c *PipelineConfig) GrowthRetryCount() int {
	return count(c.GrowthRetries)
}

func (c *PipelineConfig) ICPRetryCount() int {
	return count(c.ICPRetries)
}

func (c *PipelineConfig) QueryRetryCount() int {
	return count(c.QueryRetries)
}

// SearchRetryCount is how many times a failed candidate search is repeated
// before the query is given up.
func (c *PipelineConfig) SearchRetryCount() int {
	return count(c.SearchRetries)
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *PipelineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *PipelineConfig) Merge(overlay *PipelineConfig) {
	if overlay.DefaultURLFile != "" {
		c.DefaultURLFile = overlay.DefaultURLFile
	}
	for _, r := range []struct{ dst, src **int }{
		{&c.GrowthRetries, &overlay.GrowthRetries},
		{&c.ICPRetries, &overlay.ICPRetries},
		{&c.QueryRetries, &overlay.QueryRetries},
		{&c.SearchRetries, &overlay.SearchRetries},
	} {
		if *r.src != nil {
			*r.dst = *r.src
		}
	}
	if overlay.GrowthRequiredKeys != nil {
		c.GrowthRequiredKeys = overlay.GrowthRequiredKeys
	}
	if overlay.ICPRequiredKeys != nil {
		c.ICPRequiredKeys = overlay.ICPRequiredKeys
	}
	if overlay.HotThreshold != 0 {
		c.HotThreshold = overlay.HotThreshold
	}
	if overlay.WarmThreshold != 0 {
		c.WarmThreshold = overlay.WarmThreshold
	}
	if overlay.MaxCandidates != 0 {
		c.MaxCandidates = overlay.MaxCandidates
	}
	if overlay.ScoringWorkers != 0 {
		c.ScoringWorkers = overlay.ScoringWorkers
	}
	if overlay.StageTimeout != "" {
		c.StageTimeout = overlay.StageTimeout
	}
}

func (c *PipelineConfig) loadDefaults() {
	if c.DefaultURLFile == "" {
		c.DefaultURLFile = "data/sample_website_url.txt"
	}
	defaultCount(&c.GrowthRetries, 1)
	defaultCount(&c.ICPRetries, 2)
	defaultCount(&c.QueryRetries, 2)
	defaultCount(&c.SearchRetries, 2)
	if len(c.GrowthRequiredKeys) == 0 {
		c.GrowthRequiredKeys = []string{
			"Introduction",
			"Company Offerings & Value Propositions",
			"Competitive Review and Comparison",
		}
	}
	if len(c.ICPRequiredKeys) == 0 {
		c.ICPRequiredKeys = []string{"b2bICPTable", "buyerPersonasTable"}
	}
	if c.HotThreshold == 0 {
		c.HotThreshold = 8
	}
	if c.WarmThreshold == 0 {
		c.WarmThreshold = 5
	}
	if c.MaxCandidates == 0 {
		c.MaxCandidates = 25
	}
	if c.ScoringWorkers == 0 {
		c.ScoringWorkers = 4
	}
	if c.StageTimeout == "" {
		c.StageTimeout = "3m"
	}
}

func (c *PipelineConfig) loadEnv() {
	envString(EnvPipelineDefaultURLFile, &c.DefaultURLFile)
	envCount(EnvPipelineGrowthRetries, &c.GrowthRetries)
	envCount(EnvPipelineICPRetries, &c.ICPRetries)
	envCount(EnvPipelineQueryRetries, &c.QueryRetries)
	envCount(EnvPipelineSearchRetries, &c.SearchRetries)
	envFloat(EnvPipelineHotThreshold, &c.HotThreshold)
	envFloat(EnvPipelineWarmThreshold, &c.WarmThreshold)
	envInt(EnvPipelineMaxCandidates, &c.MaxCandidates)
	envInt(EnvPipelineScoringWorkers, &c.ScoringWorkers)
	envString(EnvPipelineStageTimeout, &c.StageTimeout)
}

func (c *PipelineConfig) validate() error {
	if c.GrowthRetryCount() < 0 || c.ICPRetryCount() < 0 || c.QueryRetryCount() < 0 || c.SearchRetryCount() < 0 {
		return fmt.Errorf("retries must not be negative")
	}
	if c.WarmThreshold >= c.HotThreshold {
		return fmt.Errorf("warm_threshold (%v) must be below hot_threshold (%v)", c.WarmThreshold, c.HotThreshold)
	}
	if c.MaxCandidates < 1 {
		return fmt.Errorf("max_candidates must be positive")
	}
	if c.ScoringWorkers < 1 {
		return fmt.Errorf("scoring_workers must be positive")
	}
	if _, err := time.ParseDuration(c.StageTimeout); err != nil {
		return fmt.Errorf("invalid stage_timeout: %w", err)
	}
	return nil
}

func count(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func defaultCount(dst **int, v int) {
	if *dst == nil {
		*dst = &v
	}
}

func envCount(name string, dst **int) {
	n := count(*dst)
	envInt(name, &n)
	*dst = &n
}

package config

const (
	EnvMetricsEnabled   = "PRIMELEADS_METRICS_ENABLED"
	EnvMetricsPath      = "PRIMELEADS_METRICS_PATH"
	EnvMetricsNamespace = "PRIMELEADS_METRICS_NAMESPACE"
)

// MetricsConfig controls the Prometheus exporter.
type MetricsConfig struct {
	Enabled   bool   `toml:"enabled"`
	Path      string `toml:"path"`
	Namespace string `toml:"namespace"`
}

// Finalize applies defaults and environment variable overrides.
func (c *MetricsConfig) Finalize() error {
	if c.Path == "" {
		c.Path = "/metrics"
	}
	if c.Namespace == "" {
		c.Namespace = "primeleads"
	}
	envBool(EnvMetricsEnabled, &c.Enabled)
	envString(EnvMetricsPath, &c.Path)
	envString(EnvMetricsNamespace, &c.Namespace)
	return nil
}

// Merge overwrites fields from overlay. Enabled always applies.
func (c *MetricsConfig) Merge(overlay *MetricsConfig) {
	c.Enabled = overlay.Enabled
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
	if overlay.Namespace != "" {
		c.Namespace = overlay.Namespace
	}
}

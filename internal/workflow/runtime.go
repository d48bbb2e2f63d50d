package workflow

import (
	"log/slog"
	"time"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/llm"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/metrics"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/prompts"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/reports"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and Domain systems.
// Metrics may be nil. Now defaults to time.Now.
type Runtime struct {
	LLM      llm.Client
	Prompts  prompts.Source
	Reports  *reports.Writer
	Pipeline config.PipelineConfig
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	Now      func() time.Time
}

func (rt *Runtime) now() time.Time {
	if rt.Now != nil {
		return rt.Now()
	}
	return time.Now()
}

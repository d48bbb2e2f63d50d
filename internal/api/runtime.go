package api

import (
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/infrastructure"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/pagination"
)

// Runtime is the API's view of the process: shared infrastructure logging
// under module=api, plus the config sections its domain systems read.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Pipeline   config.PipelineConfig
	Search     config.SearchConfig
	RAG        config.RAGConfig
}

func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: infra.Scoped("api"),
		Pagination:     cfg.API.Pagination,
		Pipeline:       cfg.Pipeline,
		Search:         cfg.Search,
		RAG:            cfg.RAG,
	}
}

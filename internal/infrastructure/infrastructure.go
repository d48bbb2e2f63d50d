// Package infrastructure wires the shared systems every PrimeLeads surface
// needs: logging, postgres, artifact storage, metrics and the chat model.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/llm"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/metrics"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/database"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/lifecycle"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/storage"
)

// Infrastructure is built once per process and handed to the API, the bot
// and the CLI. Metrics stays nil unless the exporter is enabled; its
// methods accept a nil receiver.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Metrics   *metrics.Metrics
	LLM       llm.Client
}

// New builds Infrastructure with the logger described by cfg.Log writing
// to stderr. Nothing connects until Start.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithLogger(cfg, cfg.Log.Logger(os.Stderr))
}

// NewWithLogger is New with a caller-supplied logger.
func NewWithLogger(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	infra := &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		LLM:       llm.NewAgent(cfg.Agent.Agent()),
	}

	var err error
	if infra.Database, err = database.New(&cfg.Database, logger); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	if infra.Storage, err = storage.New(&cfg.Storage, logger); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	if cfg.Metrics.Enabled {
		infra.Metrics = metrics.New(&cfg.Metrics)
	}

	logger.Debug("infrastructure ready",
		"storage", cfg.Storage.Provider,
		"provider", cfg.Agent.Provider,
		"model", infra.LLM.Model(),
		"metrics", cfg.Metrics.Enabled,
	)
	return infra, nil
}

// Start registers the database and storage hooks with the lifecycle. The
// database ping runs once the coordinator's startup hooks fire.
func (i *Infrastructure) Start() error {
	for _, s := range []struct {
		name  string
		start func(*lifecycle.Coordinator) error
	}{
		{"database", i.Database.Start},
		{"storage", i.Storage.Start},
	} {
		if err := s.start(i.Lifecycle); err != nil {
			return fmt.Errorf("%s start: %w", s.name, err)
		}
	}
	return nil
}

// Scoped returns a shallow copy whose logger tags every record with
// module. The systems themselves are shared.
func (i *Infrastructure) Scoped(module string) *Infrastructure {
	scoped := *i
	scoped.Logger = i.Logger.With("module", module)
	return &scoped
}

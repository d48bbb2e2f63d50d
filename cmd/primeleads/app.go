package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/candidates"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/infrastructure"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/leads"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/prompts"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/rag"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/reports"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/runs"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/search"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/workflow"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/database"
)

// app is the per-command composition root. The database is optional for
// the workflow and recruiting commands: without it prompts fall back to the
// built-in defaults and runs are not recorded.
type app struct {
	cfg     *config.Config
	infra   *infrastructure.Infrastructure
	logger  *slog.Logger
	dbReady bool
	ctx     context.Context
	stop    context.CancelFunc
}

func openApp(verbose bool, logOut io.Writer) (*app, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	infra, err := infrastructure.NewWithLogger(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := infra.Start(); err != nil {
		return nil, err
	}
	infra.Lifecycle.WaitForStartup()

	ctx, stop := signal.NotifyContext(infra.Lifecycle.Context(), os.Interrupt, syscall.SIGTERM)

	return &app{
		cfg:     cfg,
		infra:   infra,
		logger:  logger,
		dbReady: infra.Database.Ready(),
		ctx:     ctx,
		stop:    stop,
	}, nil
}

func (a *app) close() {
	a.stop()
	if err := a.infra.Lifecycle.Shutdown(a.cfg.ShutdownTimeoutDuration()); err != nil {
		a.logger.Error("shutdown", "error", err)
	}
}

// context is cancelled by SIGINT, SIGTERM or shutdown.
func (a *app) context() context.Context {
	return a.ctx
}

func (a *app) requireDB() error {
	if !a.dbReady {
		return fmt.Errorf("knowledge base: %w", database.ErrNotReady)
	}
	return nil
}

func (a *app) prompts() prompts.Source {
	if !a.dbReady {
		a.logger.Warn("database unavailable, using default prompts")
		return prompts.Defaults()
	}
	return prompts.New(a.infra.Database.Connection(), a.logger, a.cfg.API.Pagination)
}

func (a *app) history() runs.System {
	if !a.dbReady {
		return nil
	}
	return runs.New(a.infra.Database.Connection(), a.logger, a.cfg.API.Pagination)
}

func (a *app) workflow(src prompts.Source) leads.Runner {
	rt := &workflow.Runtime{
		LLM:      a.infra.LLM,
		Prompts:  src,
		Reports:  reports.New(a.infra.Storage, a.logger),
		Pipeline: a.cfg.Pipeline,
		Metrics:  a.infra.Metrics,
		Logger:   a.logger,
	}
	return func(ctx context.Context, seed workflow.Seed) (*workflow.Result, error) {
		return workflow.Execute(ctx, rt, seed)
	}
}

func (a *app) recruiting() (*candidates.Pipeline, error) {
	searcher, err := search.New(a.context(), &a.cfg.Search, a.logger)
	if err != nil {
		return nil, err
	}
	return candidates.New(a.infra.LLM, a.prompts(), searcher, a.cfg.Pipeline, a.infra.Metrics, a.logger), nil
}

func (a *app) embedder() (*rag.Ollama, error) {
	return rag.NewOllama(a.cfg.RAG.OllamaURL, a.cfg.RAG.EmbedModel, nil)
}

func (a *app) store() *rag.PGStore {
	return rag.NewPGStore(a.infra.Database.Connection(), a.logger)
}

func (a *app) chat() (*rag.Chat, error) {
	if err := a.requireDB(); err != nil {
		return nil, err
	}
	embedder, err := a.embedder()
	if err != nil {
		return nil, err
	}
	return rag.NewChat(a.infra.LLM, a.prompts(), a.store(), embedder, a.cfg.RAG.TopK, a.infra.Metrics, a.logger), nil
}


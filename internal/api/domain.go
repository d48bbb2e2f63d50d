package api

import (
	"context"
	"fmt"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/candidates"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/leads"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/prompts"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/rag"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/reports"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/runs"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/search"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Prompts    prompts.System
	Runs       runs.System
	Workflow   leads.Runner
	Recruiting *candidates.Pipeline
	Chat       *rag.Chat
}

// NewDomain creates all domain systems from the API runtime. Missing
// search credentials do not fail construction: recruiting requests report
// them instead.
func NewDomain(runtime *Runtime) (*Domain, error) {
	db := runtime.Database.Connection()

	promptsSystem := prompts.New(db, runtime.Logger, runtime.Pagination)
	runsSystem := runs.New(db, runtime.Logger, runtime.Pagination)

	wrt := &workflow.Runtime{
		LLM:      runtime.LLM,
		Prompts:  promptsSystem,
		Reports:  reports.New(runtime.Storage, runtime.Logger),
		Pipeline: runtime.Pipeline,
		Metrics:  runtime.Metrics,
		Logger:   runtime.Logger,
	}

	var searcher search.Searcher
	google, err := search.New(context.Background(), &runtime.Search, runtime.Logger)
	if err != nil {
		runtime.Logger.Warn("candidate search unavailable", "error", err)
		searcher = search.Unavailable{Err: err}
	} else {
		searcher = google
	}

	embedder, err := rag.NewOllama(runtime.RAG.OllamaURL, runtime.RAG.EmbedModel, nil)
	if err != nil {
		return nil, fmt.Errorf("embedder init failed: %w", err)
	}

	chat := rag.NewChat(
		runtime.LLM,
		promptsSystem,
		rag.NewPGStore(db, runtime.Logger),
		embedder,
		runtime.RAG.TopK,
		runtime.Metrics,
		runtime.Logger,
	)

	return &Domain{
		Prompts: promptsSystem,
		Runs:    runsSystem,
		Workflow: func(ctx context.Context, seed workflow.Seed) (*workflow.Result, error) {
			return workflow.Execute(ctx, wrt, seed)
		},
		Recruiting: candidates.New(
			runtime.LLM,
			promptsSystem,
			searcher,
			runtime.Pipeline,
			runtime.Metrics,
			runtime.Logger,
		),
		Chat: chat,
	}, nil
}

package candidates

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/llm"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/metrics"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/prompts"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/search"
)

// Pipeline runs the recruiting graph derive → discover → score.
type Pipeline struct {
	llm      llm.Client
	prompts  prompts.Source
	searcher search.Searcher
	cfg      config.PipelineConfig
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// New creates a Pipeline. metrics may be nil.
func New(
	client llm.Client,
	src prompts.Source,
	searcher search.Searcher,
	cfg config.PipelineConfig,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		llm:      client,
		prompts:  src,
		searcher: searcher,
		cfg:      cfg,
		metrics:  m,
		logger:   logger.With("system", "candidates"),
	}
}

// Thresholds returns the configured bucket bounds.
func (p *Pipeline) Thresholds() Thresholds {
	return Thresholds{Hot: p.cfg.HotThreshold, Warm: p.cfg.WarmThreshold}
}

// Run executes the graph for a job description. A blank description
// returns ErrMissingJD before anything runs.
func (p *Pipeline) Run(ctx context.Context, jd string) (*Result, error) {
	jd = strings.TrimSpace(jd)
	if jd == "" {
		return nil, ErrMissingJD
	}

	started := time.Now()

	graph, err := p.buildGraph()
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	finalState, err := graph.Execute(ctx, state.New(nil).Set(KeyJD, jd))
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	p.metrics.ObservePipeline("recruit", time.Since(started))

	queries, _ := get[[]string](finalState, KeyQueries)
	enriched, okEnriched := get[[]Candidate](finalState, KeyEnriched)
	scored, okScored := get[[]Scored](finalState, KeyScored)
	if !okEnriched || !okScored {
		return nil, ErrPipelineState
	}

	result := &Result{
		Queries: queries,
		GraphState: GraphState{
			Enriched: enriched,
			Scored:   scored,
		},
		Summary: Summarize(scored, p.Thresholds()),
	}
	result.SearchError, _ = get[string](finalState, KeySearchError)

	p.logger.InfoContext(ctx, "recruiting pipeline complete",
		"queries", len(queries),
		"candidates", len(enriched),
		"hot", result.Summary.Hot,
		"warm", result.Summary.Warm,
		"cold", result.Summary.Cold,
	)

	return result, nil
}

func (p *Pipeline) buildGraph() (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("primerecruits")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("derive", p.deriveNode()); err != nil {
		return nil, err
	}

	if err := graph.AddNode("discover", p.discoverNode()); err != nil {
		return nil, err
	}

	if err := graph.AddNode("score", p.scoreNode()); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("derive", "discover", nil); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("discover", "score", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("derive"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("score"); err != nil {
		return nil, err
	}

	return graph, nil
}

func get[T any](s state.State, key string) (T, bool) {
	var zero T
	val, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := val.(T)
	return v, ok
}

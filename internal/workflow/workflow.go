package workflow

import (
	"context"
	"fmt"
	"time"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/prompts"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/reports"
)

// Execute runs the lead pipeline for one seed. It builds the state graph
// (growth → icp → queries), executes it, and extracts the deepest typed
// state and its summary. Stage problems surface as result statuses; an
// error is returned only when the graph itself cannot run.
func Execute(ctx context.Context, rt *Runtime, seed Seed) (*Result, error) {
	started := time.Now()

	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	finalState, err := graph.Execute(ctx, state.New(nil).Set(KeySeed, seed))
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	rt.Metrics.ObservePipeline("leads", time.Since(started))

	result := extractResult(finalState)
	result.CompletedAt = rt.now()
	return result, nil
}

// pipeline lists the nodes in execution order; each feeds the next.
func pipeline(rt *Runtime) []struct {
	key  string
	node state.StateNode
} {
	return []struct {
		key  string
		node state.StateNode
	}{
		{KeyGrowth, GrowthNode(rt)},
		{KeyICP, ICPNode(rt)},
		{KeyQueries, QueriesNode(rt)},
	}
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("primeleads")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	nodes := pipeline(rt)
	for i, n := range nodes {
		if err := graph.AddNode(n.key, n.node); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.key, err)
		}
		if i == 0 {
			continue
		}
		if err := graph.AddEdge(nodes[i-1].key, n.key, nil); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", nodes[i-1].key, n.key, err)
		}
	}

	if err := graph.SetEntryPoint(nodes[0].key); err != nil {
		return nil, err
	}
	if err := graph.SetExitPoint(nodes[len(nodes)-1].key); err != nil {
		return nil, err
	}
	return graph, nil
}

// extractResult lifts whichever typed state is deepest into a QueryState.
func extractResult(s state.State) *Result {
	result := &Result{Keys: presentKeys(s)}

	if qs, ok := lookup[QueryState](s, KeyQueries); ok {
		result.State = &qs
	} else if is, ok := lookup[ICPState](s, KeyICP); ok {
		result.State = &QueryState{ICPState: is}
	} else if gs, ok := lookup[GrowthState](s, KeyGrowth); ok {
		result.State = &QueryState{ICPState: ICPState{GrowthState: gs}}
	}

	if result.State != nil {
		result.Summary = Summarize(result.State, result.Keys)
	}
	return result
}

func presentKeys(s state.State) []string {
	var keys []string
	for _, k := range []string{KeySeed, KeyGrowth, KeyICP, KeyQueries} {
		if _, ok := s.Get(k); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Summarize reports counts, artifact locations and per-stage statuses.
// Only stages whose key is in keys are listed.
func Summarize(qs *QueryState, keys []string) Summary {
	sum := Summary{
		CompanyName:       qs.Company,
		TotalICPs:         len(qs.ICP.Data.ICPs.Profiles),
		TotalPersonas:     len(qs.ICP.Data.Personas.Personas),
		TotalQueries:      len(qs.Queries.Data),
		PDFReportPath:     qs.ICP.Artifact(reports.KindPDF),
		GrowthReportPath:  qs.Growth.Artifact(reports.KindPDF),
		SearchQueriesPath: qs.Queries.Artifact(reports.KindJSON),
		Stages:            map[string]Status{},
	}

	for _, k := range keys {
		switch k {
		case KeyGrowth:
			sum.Stages[string(prompts.StageGrowth)] = qs.Growth.Status
			sum.ModelUsed = qs.Growth.Model
		case KeyICP:
			sum.Stages[string(prompts.StageICP)] = qs.ICP.Status
		case KeyQueries:
			sum.Stages[string(prompts.StageQueries)] = qs.Queries.Status
		}
	}
	return sum
}

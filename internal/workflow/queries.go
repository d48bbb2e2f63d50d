package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/prompts"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/reports"
)

var errNoQueries = errors.New("no search queries in response")

// QueriesNode returns the third stage. It requires KeyICP and writes a
// QueryState under KeyQueries; without an ICP state it passes through.
func QueriesNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		is, ok := lookup[ICPState](s, KeyICP)
		if !ok {
			rt.Logger.WarnContext(ctx, "icp state missing, skipping stage", "stage", prompts.StageQueries)
			return s, nil
		}

		qs := QueryState{ICPState: is}
		fallback := func() []SearchQuery { return FallbackQueries(is.ICP.Data) }

		qs.Queries = guard(ctx, rt, prompts.StageQueries, fallback, func() StageResult[[]SearchQuery] {
			return runQueries(ctx, rt, is, fallback)
		})

		return s.Set(KeyQueries, qs), nil
	})
}

func runQueries(ctx context.Context, rt *Runtime, is ICPState, fallback func() []SearchQuery) StageResult[[]SearchQuery] {
	icpJSON, err := json.MarshalIndent(is.ICP.Data, "", "  ")
	if err != nil {
		return outcome[[]SearchQuery](rt, nil, 0, fmt.Errorf("encode icp report: %w", err), fallback)
	}

	queries, attempts, err := generate(
		ctx, rt, prompts.StageQueries, rt.Pipeline.QueryRetryCount(),
		map[string]string{"icp_data": string(icpJSON)},
		checkQueries,
	)

	res := outcome(rt, queries, attempts, err, fallback)

	if rt.Reports != nil {
		ts := reports.Timestamp(res.GeneratedAt)
		attach(&res)(rt.Reports.WriteJSON(ctx, queriesName(is.Company, ts), res.Data))
	}

	return res
}

func checkQueries(queries []SearchQuery) error {
	for _, q := range queries {
		if strings.TrimSpace(q.Query) != "" {
			return nil
		}
	}
	return errNoQueries
}

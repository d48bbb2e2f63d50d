package candidates

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/llm"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/search"
)

// discoverNode searches every derived query, keeps the first hit per link
// and caps the list at the configured maximum. Each search is retried up
// to the configured count. When every query still fails the node records
// the error under KeySearchError and hands scoring an empty list.
func (p *Pipeline) discoverNode() state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		queries, _ := get[[]string](s, KeyQueries)

		var (
			found    []Candidate
			seen     = make(map[string]bool)
			failures int
			lastErr  error
		)

		for _, q := range queries {
			if len(found) >= p.cfg.MaxCandidates {
				break
			}

			profiles, err := p.search(ctx, q)
			if err != nil {
				failures++
				lastErr = err
				p.logger.WarnContext(ctx, "candidate search failed", "query", q, "error", err)
				continue
			}

			for _, prof := range profiles {
				if prof.Link == "" || seen[prof.Link] {
					continue
				}
				seen[prof.Link] = true
				found = append(found, Candidate{Profile: prof, Query: q})
			}
		}

		if err := ctx.Err(); err != nil {
			return s, err
		}
		if len(queries) > 0 && failures == len(queries) {
			err := fmt.Errorf("%w: %w", ErrSearchFailed, lastErr)
			p.logger.ErrorContext(ctx, "candidate discovery degraded", "queries", len(queries), "error", err)
			s = s.Set(KeySearchError, err.Error())
		}

		if len(found) > p.cfg.MaxCandidates {
			found = found[:p.cfg.MaxCandidates]
		}
		if found == nil {
			found = []Candidate{}
		}

		p.logger.InfoContext(ctx, "candidates discovered", "queries", len(queries), "candidates", len(found))
		return s.Set(KeyEnriched, found), nil
	})
}

func (p *Pipeline) search(ctx context.Context, query string) ([]search.Profile, error) {
	var profiles []search.Profile
	attempts, err := llm.Attempt(ctx, p.cfg.SearchRetryCount(), func(ctx context.Context) error {
		var err error
		profiles, err = p.searcher.Profiles(ctx, query)
		return err
	})
	if attempts > 1 {
		p.logger.DebugContext(ctx, "candidate search retried", "query", query, "attempts", attempts)
	}
	return profiles, err
}

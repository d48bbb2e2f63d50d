package candidates

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
	"golang.org/x/sync/errgroup"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/prompts"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/formatting"
)

type assessment struct {
	FitScore  *float64 `json:"fit_score"`
	Rationale string   `json:"rationale"`
}

// scoreNode scores candidates concurrently, bounded by the configured
// worker count. A candidate that cannot be scored keeps fit_score 0.
func (p *Pipeline) scoreNode() state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		jd, _ := get[string](s, KeyJD)
		enriched, _ := get[[]Candidate](s, KeyEnriched)

		scored := make([]Scored, len(enriched))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(max(p.cfg.ScoringWorkers, 1))

		for i, c := range enriched {
			g.Go(func() error {
				scored[i] = p.score(gctx, jd, c)
				return nil
			})
		}
		g.Wait()

		return s.Set(KeyScored, scored), nil
	})
}

func (p *Pipeline) score(ctx context.Context, jd string, c Candidate) Scored {
	result := Scored{Candidate: c}

	a, err := p.assess(ctx, jd, c)
	if err != nil {
		result.Error = err.Error()
		p.metrics.StageOutcome(string(prompts.StageScoring), "failed")
		p.logger.WarnContext(ctx, "candidate scoring failed", "profile", c.Link, "error", err)
		return result
	}

	result.FitScore = min(max(*a.FitScore, 0), 10)
	result.Rationale = a.Rationale
	p.metrics.StageOutcome(string(prompts.StageScoring), "success")
	return result
}

func (p *Pipeline) assess(ctx context.Context, jd string, c Candidate) (assessment, error) {
	profile, err := json.Marshal(c.Profile)
	if err != nil {
		return assessment{}, fmt.Errorf("encode candidate: %w", err)
	}

	prompt, err := prompts.Compose(ctx, p.prompts, prompts.StageScoring, map[string]string{
		"jd_text":   jd,
		"candidate": string(profile),
	})
	if err != nil {
		return assessment{}, err
	}

	content, err := p.llm.Chat(ctx, prompt)
	if err != nil {
		return assessment{}, err
	}

	a, err := formatting.RecoverAs[assessment](content)
	if err != nil {
		return assessment{}, err
	}
	if a.FitScore == nil {
		return assessment{}, ErrNoScore
	}
	return a, nil
}

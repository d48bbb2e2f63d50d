package candidates

import (
	"context"
	"errors"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/llm"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/prompts"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/formatting"
)

var errNoQueries = errors.New("no search strings in response")

// deriveNode asks the model for search strings. Any failure falls back to
// the job description itself.
func (p *Pipeline) deriveNode() state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		jd, _ := get[string](s, KeyJD)

		queries, err := p.derive(ctx, jd)
		status := "success"
		if err != nil {
			status = "failed"
			queries = []string{FallbackQuery(jd)}
			p.logger.WarnContext(ctx, "query derivation failed, using job description", "error", err)
		}
		p.metrics.StageOutcome(string(prompts.StageRecruit), status)

		return s.Set(KeyQueries, queries), nil
	})
}

func (p *Pipeline) derive(ctx context.Context, jd string) ([]string, error) {
	prompt, err := prompts.Compose(ctx, p.prompts, prompts.StageRecruit, map[string]string{"jd_text": jd})
	if err != nil {
		return nil, err
	}

	var queries []string
	_, err = llm.Attempt(ctx, p.cfg.QueryRetryCount(), func(ctx context.Context) error {
		content, err := p.llm.Chat(ctx, prompt)
		if err != nil {
			return err
		}

		raw, err := formatting.RecoverAs[[]string](content)
		if err != nil {
			return err
		}

		queries = cleanQueries(raw)
		if len(queries) == 0 {
			return errNoQueries
		}
		return nil
	})

	return queries, err
}

// cleanQueries trims, drops blanks and duplicates, and strips any site:
// operator the model added anyway.
func cleanQueries(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	var out []string
	for _, q := range raw {
		var terms []string
		for _, term := range strings.Fields(q) {
			if !strings.HasPrefix(term, "site:") {
				terms = append(terms, term)
			}
		}
		q = strings.Join(terms, " ")
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, q)
	}
	return out
}

// FallbackQuery is the job description collapsed to one line and cut to
// at most 120 runes on a word boundary when possible.
func FallbackQuery(jd string) string {
	q := strings.Join(strings.Fields(jd), " ")
	runes := []rune(q)
	if len(runes) <= maxFallbackQuery {
		return q
	}

	cut := string(runes[:maxFallbackQuery])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut
}

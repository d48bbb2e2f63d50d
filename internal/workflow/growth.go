package workflow

import (
	"context"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/prompts"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/reports"
)

// GrowthNode returns the first stage. It reads the seed URL, falling back
// to the configured URL file, and writes a GrowthState under KeyGrowth.
// Without any URL the state passes through unchanged.
func GrowthNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		seed, _ := lookup[Seed](s, KeySeed)

		url := NormalizeURL(seed.WebsiteURL)
		if url == "" {
			url = NormalizeURL(ReadURLFile(rt.Pipeline.DefaultURLFile))
		}
		if url == "" {
			rt.Logger.WarnContext(ctx, "no website url available, skipping stage", "stage", prompts.StageGrowth)
			return s, nil
		}

		gs := GrowthState{
			Seed:    Seed{WebsiteURL: url},
			Company: CompanyName(url),
		}
		fallback := func() GrowthReport { return FallbackGrowth(gs.Company, url) }

		gs.Growth = guard(ctx, rt, prompts.StageGrowth, fallback, func() StageResult[GrowthReport] {
			return runGrowth(ctx, rt, gs, fallback)
		})

		return s.Set(KeyGrowth, gs), nil
	})
}

func runGrowth(ctx context.Context, rt *Runtime, gs GrowthState, fallback func() GrowthReport) StageResult[GrowthReport] {
	report, attempts, err := generate[GrowthReport](
		ctx, rt, prompts.StageGrowth, rt.Pipeline.GrowthRetryCount(),
		map[string]string{"website_url": gs.WebsiteURL},
		nil,
	)

	res := outcome(rt, report, attempts, err, fallback)

	if err == nil {
		if missing := missingKeys(res.Data, rt.Pipeline.GrowthRequiredKeys); len(missing) > 0 {
			filled := mergeFallback(res.Data, fallback())
			degrade(&res, missingErr(missing))
			rt.Logger.WarnContext(ctx, "growth report incomplete", "missing", missing, "filled", filled)
		}
	}

	if rt.Reports != nil {
		ts := reports.Timestamp(res.GeneratedAt)
		attach(&res)(rt.Reports.WriteJSON(ctx, growthArtifactName(gs.Company, ts, "json"), res.Data))
		attach(&res)(rt.Reports.WritePDF(ctx, growthArtifactName(gs.Company, ts, "pdf"), growthDocument(gs.Company, res.Data)))
	}

	return res
}

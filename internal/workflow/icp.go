package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/prompts"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/reports"
)

const (
	keyICPTable     = "b2bICPTable"
	keyPersonaTable = "buyerPersonasTable"
)

// ICPNode returns the second stage. It requires KeyGrowth and writes an
// ICPState under KeyICP; without a growth state it passes through.
func ICPNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		gs, ok := lookup[GrowthState](s, KeyGrowth)
		if !ok {
			rt.Logger.WarnContext(ctx, "growth state missing, skipping stage", "stage", prompts.StageICP)
			return s, nil
		}

		is := ICPState{GrowthState: gs}
		fallback := func() ICPReport { return FallbackICP(gs.Company) }

		is.ICP = guard(ctx, rt, prompts.StageICP, fallback, func() StageResult[ICPReport] {
			return runICP(ctx, rt, gs, fallback)
		})

		return s.Set(KeyICP, is), nil
	})
}

func runICP(ctx context.Context, rt *Runtime, gs GrowthState, fallback func() ICPReport) StageResult[ICPReport] {
	growthJSON, err := json.MarshalIndent(gs.Growth.Data, "", "  ")
	if err != nil {
		return outcome(rt, ICPReport{}, 0, fmt.Errorf("encode growth report: %w", err), fallback)
	}

	raw, attempts, err := generate[map[string]any](
		ctx, rt, prompts.StageICP, rt.Pipeline.ICPRetryCount(),
		map[string]string{
			"company_name":  gs.Company,
			"growth_report": string(growthJSON),
		},
		nil,
	)

	res := outcome(rt, ICPReport{}, attempts, err, fallback)

	if err == nil {
		applyICP(&res, raw, rt.Pipeline.ICPRequiredKeys, fallback())
	}

	if rt.Reports != nil {
		ts := reports.Timestamp(res.GeneratedAt)
		attach(&res)(rt.Reports.WritePDF(ctx, icpReportName(gs.Company, ts), icpDocument(gs.Company, res.Data)))
		attach(&res)(rt.Reports.WriteJSON(ctx, icpJSONName(gs.Company, ts), res.Data))
	}

	return res
}

// applyICP decodes raw into res.Data. Tables that are absent, empty or
// undecodable are replaced from fb and the result is degraded.
func applyICP(res *StageResult[ICPReport], raw map[string]any, required []string, fb ICPReport) {
	missing := missingKeys(raw, required)

	report, err := decodeICP(raw)
	if err != nil {
		res.Data = fb
		degrade(res, fmt.Errorf("%w: %w", ErrShape, err))
		return
	}

	if len(report.ICPs.Profiles) == 0 {
		report.ICPs = fb.ICPs
		if !slices.Contains(missing, keyICPTable) {
			missing = append(missing, keyICPTable)
		}
	}
	if len(report.Personas.Personas) == 0 {
		report.Personas = fb.Personas
		if !slices.Contains(missing, keyPersonaTable) {
			missing = append(missing, keyPersonaTable)
		}
	}

	res.Data = report
	if len(missing) > 0 {
		degrade(res, missingErr(missing))
	}
}

func decodeICP(raw map[string]any) (ICPReport, error) {
	var report ICPReport

	data, err := json.Marshal(raw)
	if err != nil {
		return report, err
	}
	if err := json.Unmarshal(data, &report); err != nil {
		return report, err
	}
	return report, nil
}

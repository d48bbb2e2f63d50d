package workflow

import (
	"fmt"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/reports"
)

// attach returns a sink for a Writer call: a written artifact is recorded
// on res, a write error degrades it.
func attach[T any](res *StageResult[T]) func(reports.Artifact, error) {
	return func(a reports.Artifact, err error) {
		if err != nil {
			degrade(res, fmt.Errorf("%w: %w", ErrArtifactFailed, err))
			return
		}
		res.Artifacts = append(res.Artifacts, a)
	}
}

func growthArtifactName(company, ts, ext string) string {
	return fmt.Sprintf("growth_report_concise_%s_%s.%s", company, ts, ext)
}

func icpReportName(company, ts string) string {
	return fmt.Sprintf("%s_Ideal_Customer_Buyer_Persona_Profiles_Report_ICPs_%s.pdf", company, ts)
}

func icpJSONName(company, ts string) string {
	return fmt.Sprintf("%s_icp_profiles_%s.json", company, ts)
}

func queriesName(company, ts string) string {
	return fmt.Sprintf("%s_search_queries_%s.json", company, ts)
}

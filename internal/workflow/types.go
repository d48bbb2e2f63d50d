package workflow

import (
	"time"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/reports"
)

// State keys. Each stage writes exactly one of them.
const (
	KeySeed    = "seed"
	KeyGrowth  = "growth"
	KeyICP     = "icp"
	KeyQueries = "queries"
)

// Status classifies a stage outcome.
type Status string

const (
	// StatusSuccess means the response parsed and carried every required key.
	StatusSuccess Status = "success"
	// StatusDegraded means output was produced but parts of it came from
	// fallback data, or an artifact could not be written.
	StatusDegraded Status = "degraded"
	// StatusFailed means every attempt failed and Data is the fallback.
	StatusFailed Status = "failed"
)

// Seed is the entry input of a run.
type Seed struct {
	WebsiteURL string `json:"website_url"`
}

// StageResult is the outcome of one stage.
type StageResult[T any] struct {
	Status      Status             `json:"status"`
	Data        T                  `json:"data"`
	Error       string             `json:"error,omitempty"`
	Attempts    int                `json:"attempts"`
	Model       string             `json:"model,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
	Artifacts   []reports.Artifact `json:"artifacts,omitempty"`
}

// Artifact returns the location of the first artifact of kind, or "".
func (r StageResult[T]) Artifact(kind reports.Kind) string {
	for _, a := range r.Artifacts {
		if a.Kind == kind {
			return a.Location
		}
	}
	return ""
}

// GrowthReport is the open-ended growth and operations report. Top-level
// keys are report sections.
type GrowthReport map[string]any

// Profile is a named ICP segment or buyer persona with its field values
// keyed by snake_case field name.
type Profile struct {
	Name string         `json:"name"`
	Data map[string]any `json:"data"`
}

// ICPTable lists the ideal customer profiles.
type ICPTable struct {
	Profiles []Profile `json:"icpProfiles"`
}

// PersonaTable lists the buyer personas.
type PersonaTable struct {
	Personas []Profile `json:"personas"`
}

// ICPReport is the output of the ICP stage.
type ICPReport struct {
	ICPs     ICPTable     `json:"b2bICPTable"`
	Personas PersonaTable `json:"buyerPersonasTable"`
}

// SearchQuery targets one ICP and persona combination.
type SearchQuery struct {
	ICP     string `json:"icp"`
	Persona string `json:"persona"`
	Query   string `json:"query"`
}

// GrowthState is written under KeyGrowth.
type GrowthState struct {
	Seed
	Company string                    `json:"company_name"`
	Growth  StageResult[GrowthReport] `json:"growth"`
}

// ICPState is written under KeyICP.
type ICPState struct {
	GrowthState
	ICP StageResult[ICPReport] `json:"icp"`
}

// QueryState is written under KeyQueries.
type QueryState struct {
	ICPState
	Queries StageResult[[]SearchQuery] `json:"queries"`
}

// Summary condenses a run for callers and logs. PDFReportPath is the ICP
// and persona report, the deliverable of the run; the growth PDF is listed
// separately.
type Summary struct {
	CompanyName       string            `json:"company_name"`
	TotalICPs         int               `json:"total_icps_generated"`
	TotalPersonas     int               `json:"total_personas_generated"`
	TotalQueries      int               `json:"total_search_queries"`
	PDFReportPath     string            `json:"pdf_report_path,omitempty"`
	GrowthReportPath  string            `json:"growth_report_path,omitempty"`
	SearchQueriesPath string            `json:"search_queries_path,omitempty"`
	ModelUsed         string            `json:"model_used,omitempty"`
	Stages            map[string]Status `json:"stages"`
}

// Result is the final output of Execute. State is nil when the growth
// stage had no URL to work on.
type Result struct {
	State       *QueryState `json:"state"`
	Summary     Summary     `json:"summary"`
	Keys        []string    `json:"keys"`
	CompletedAt time.Time   `json:"completed_at"`
}

package runs

import (
	"net/url"
	"time"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/query"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "runs", "r").
	Project("id", "ID").
	Project("kind", "Kind").
	Project("input", "Input").
	Project("status", "Status").
	Project("company_name", "CompanyName").
	Project("summary", "Summary").
	Project("error", "Error").
	Project("started_at", "StartedAt").
	Project("completed_at", "CompletedAt")

var defaultSort = query.SortField{
	Field:      "StartedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for run queries.
// Kind and Status match exactly; CompanyName is a case-insensitive contains.
// Since and Until bound StartedAt as a half-open range.
type Filters struct {
	Kind        *string    `json:"kind,omitempty"`
	Status      *string    `json:"status,omitempty"`
	CompanyName *string    `json:"company_name,omitempty"`
	Since       *time.Time `json:"since,omitempty"`
	Until       *time.Time `json:"until,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Kind", f.Kind).
		WhereEquals("Status", f.Status).
		WhereContains("CompanyName", f.CompanyName).
		WhereAtLeast("StartedAt", f.Since).
		WhereBefore("StartedAt", f.Until)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if k := values.Get("kind"); k != "" {
		f.Kind = &k
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if c := values.Get("company_name"); c != "" {
		f.CompanyName = &c
	}

	f.Since = parseTime(values.Get("since"))
	f.Until = parseTime(values.Get("until"))

	return f
}

// parseTime accepts RFC 3339 timestamps or plain dates. Anything else is
// ignored like an absent parameter.
func parseTime(s string) *time.Time {
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func scanRun(s repository.Scanner) (Run, error) {
	var (
		r       Run
		summary []byte
	)

	err := s.Scan(
		&r.ID,
		&r.Kind,
		&r.Input,
		&r.Status,
		&r.CompanyName,
		&summary,
		&r.Error,
		&r.StartedAt,
		&r.CompletedAt,
	)
	if err != nil {
		return r, err
	}

	if len(summary) > 0 {
		r.Summary = summary
	}
	return r, nil
}

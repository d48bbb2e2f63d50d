package query_test

import (
	"reflect"
	"testing"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/query"
)

func runsProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "runs", "r").
		Project("id", "ID").
		Project("kind", "Kind").
		Project("company_name", "CompanyName").
		Project("started_at", "StartedAt")
}

const selectRuns = "SELECT r.id, r.kind, r.company_name, r.started_at FROM public.runs r"

func ptr[T any](v T) *T { return &v }

func check(t *testing.T, gotSQL string, gotArgs []any, wantSQL string, wantArgs []any) {
	t.Helper()
	if gotSQL != wantSQL {
		t.Errorf("sql:\n got  %s\n want %s", gotSQL, wantSQL)
	}
	if !reflect.DeepEqual(gotArgs, wantArgs) {
		t.Errorf("args: got %#v, want %#v", gotArgs, wantArgs)
	}
}

func TestProjectionMap(t *testing.T) {
	p := runsProjection()

	if p.From() != "public.runs r" {
		t.Errorf("From: got %q", p.From())
	}
	if p.Columns() != "r.id, r.kind, r.company_name, r.started_at" {
		t.Errorf("Columns: got %q", p.Columns())
	}

	tests := []struct {
		field string
		want  string
		ok    bool
	}{
		{"CompanyName", "r.company_name", true},
		{"companyName", "r.company_name", true},
		{"startedat", "r.started_at", true},
		{"input", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := p.Column(tt.field)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Column(%q) = %q, %v; want %q, %v", tt.field, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		input string
		want  []query.SortField
	}{
		{"", nil},
		{"kind", []query.SortField{{Field: "kind"}}},
		{"kind,-startedAt", []query.SortField{{Field: "kind"}, {Field: "startedAt", Descending: true}}},
		{" kind , , - ,-id ", []query.SortField{{Field: "kind"}, {Field: "id", Descending: true}}},
	}
	for _, tt := range tests {
		if got := query.ParseSortFields(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseSortFields(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBuild(t *testing.T) {
	t.Run("no filters", func(t *testing.T) {
		q, args := query.NewBuilder(runsProjection()).Build()
		check(t, q, args, selectRuns, nil)
	})

	t.Run("nil and empty values skipped", func(t *testing.T) {
		var kind *string
		q, args := query.NewBuilder(runsProjection()).
			WhereEquals("Kind", kind).
			WhereEquals("Kind", nil).
			WhereContains("CompanyName", ptr("")).
			WhereSearch(nil, "CompanyName").
			Build()
		check(t, q, args, selectRuns, nil)
	})

	t.Run("parameters numbered across conditions", func(t *testing.T) {
		q, args := query.NewBuilder(runsProjection()).
			WhereEquals("Kind", ptr("website")).
			WhereSearch(ptr("acme"), "Kind", "CompanyName").
			WhereContains("CompanyName", ptr("corp")).
			WhereAtLeast("StartedAt", "2025-01-01").
			WhereBefore("StartedAt", "2025-02-01").
			Build()

		want := selectRuns + " WHERE r.kind = $1" +
			" AND (r.kind ILIKE $2 OR r.company_name ILIKE $3)" +
			" AND r.company_name ILIKE $4" +
			" AND r.started_at >= $5" +
			" AND r.started_at < $6"
		check(t, q, args, want, []any{ptr("website"), "%acme%", "%acme%", "%corp%", "2025-01-01", "2025-02-01"})
	})

	t.Run("unknown filter field panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		query.NewBuilder(runsProjection()).WhereEquals("Input", "x")
	})
}

func TestOrdering(t *testing.T) {
	def := query.SortField{Field: "StartedAt", Descending: true}

	t.Run("default", func(t *testing.T) {
		q, _ := query.NewBuilder(runsProjection(), def).Build()
		check(t, q, nil, selectRuns+" ORDER BY r.started_at DESC", nil)
	})

	t.Run("override", func(t *testing.T) {
		q, _ := query.NewBuilder(runsProjection(), def).
			OrderByFields(query.ParseSortFields("kind,-companyName")).
			Build()
		check(t, q, nil, selectRuns+" ORDER BY r.kind ASC, r.company_name DESC", nil)
	})

	t.Run("unknown fields dropped", func(t *testing.T) {
		q, _ := query.NewBuilder(runsProjection(), def).
			OrderByFields(query.ParseSortFields("id; DROP TABLE runs,kind")).
			Build()
		check(t, q, nil, selectRuns+" ORDER BY r.kind ASC", nil)
	})

	t.Run("only unknown fields falls back to default", func(t *testing.T) {
		q, _ := query.NewBuilder(runsProjection(), def).
			OrderByFields([]query.SortField{{Field: "1=1"}}).
			Build()
		check(t, q, nil, selectRuns+" ORDER BY r.started_at DESC", nil)
	})
}

func TestBuildCountAndPage(t *testing.T) {
	b := query.NewBuilder(runsProjection(), query.SortField{Field: "Kind"}).
		WhereEquals("Kind", "website")

	q, args := b.BuildCount()
	check(t, q, args, "SELECT COUNT(*) FROM public.runs r WHERE r.kind = $1", []any{"website"})

	q, args = b.BuildPage(3, 20)
	check(t, q, args, selectRuns+" WHERE r.kind = $1 ORDER BY r.kind ASC LIMIT 20 OFFSET 40", []any{"website"})

	q, _ = b.BuildPage(0, 10)
	check(t, q, args, selectRuns+" WHERE r.kind = $1 ORDER BY r.kind ASC LIMIT 10 OFFSET 0", []any{"website"})
}

func TestBuildSingle(t *testing.T) {
	q, args := query.NewBuilder(runsProjection()).
		WhereEquals("Kind", "ignored").
		BuildSingle("ID", 42)
	check(t, q, args, selectRuns+" WHERE r.id = $1", []any{42})
}

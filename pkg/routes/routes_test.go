package routes_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/openapi"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/routes"
)

func named(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, name+":"+r.PathValue("id"))
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/runs",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: named("list")},
			{Method: "GET", Pattern: "/{id}", Handler: named("find")},
			{Method: "DELETE", Pattern: "/{id}", Handler: named("delete")},
		},
		Children: []routes.Group{{
			Prefix: "/{id}/leads",
			Routes: []routes.Route{
				{Method: "PATCH", Pattern: "", Handler: named("bucket")},
			},
		}},
	})

	tests := []struct {
		method, path string
		wantCode     int
		wantBody     string
	}{
		{"GET", "/runs", http.StatusOK, "list:"},
		{"GET", "/runs/42", http.StatusOK, "find:42"},
		{"DELETE", "/runs/42", http.StatusOK, "delete:42"},
		{"PATCH", "/runs/7/leads", http.StatusOK, "bucket:7"},
		{"POST", "/runs", http.StatusMethodNotAllowed, ""},
		{"GET", "/prompts", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantCode {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body: got %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	noop := func(w http.ResponseWriter, r *http.Request) {}

	group := routes.Group{
		Prefix: "/runs",
		Tags:   []string{"Runs"},
		Schemas: map[string]*openapi.Schema{
			"Run": {Type: "object"},
		},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: noop, OpenAPI: &openapi.Operation{Summary: "List runs"}},
			{Method: "GET", Pattern: "/{id}", Handler: noop, OpenAPI: &openapi.Operation{Summary: "Find run", Tags: []string{"History"}}},
			{Method: "PATCH", Pattern: "/{id}", Handler: noop, OpenAPI: &openapi.Operation{Summary: "Rename run"}},
			{Method: "DELETE", Pattern: "/{id}", Handler: noop},
		},
		Children: []routes.Group{{
			Prefix:  "/artifacts",
			Schemas: map[string]*openapi.Schema{"Artifact": {Type: "object"}},
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/{key...}", Handler: noop, OpenAPI: &openapi.Operation{Summary: "Download"}},
			},
		}},
	}

	spec := openapi.NewSpec(openapi.Info{Title: "test", Version: "1.0.0"})
	routes.Describe(spec, "/api", group)

	list := spec.Paths["/api/runs"]
	if list == nil || list.Get == nil {
		t.Fatal("missing GET /api/runs")
	}
	if len(list.Get.Tags) != 1 || list.Get.Tags[0] != "Runs" {
		t.Errorf("inherited tags: got %v", list.Get.Tags)
	}

	find := spec.Paths["/api/runs/{id}"]
	if find == nil || find.Get == nil || find.Patch == nil {
		t.Fatal("missing operations on /api/runs/{id}")
	}
	if find.Get.Tags[0] != "History" {
		t.Errorf("explicit tags should win, got %v", find.Get.Tags)
	}
	if find.Delete != nil {
		t.Error("undocumented route should not be described")
	}

	artifact := spec.Paths["/api/runs/artifacts/{key}"]
	if artifact == nil || artifact.Get == nil {
		t.Fatal("missing wildcard path")
	}
	if artifact.Get.Tags[0] != "Runs" {
		t.Errorf("child group should inherit tags, got %v", artifact.Get.Tags)
	}

	for _, name := range []string{"Run", "Artifact"} {
		if _, ok := spec.Components.Schemas[name]; !ok {
			t.Errorf("schema %s not added to components", name)
		}
	}
}

func TestDescribeDoesNotShareOperations(t *testing.T) {
	op := &openapi.Operation{Summary: "List"}
	groups := []routes.Group{
		{Prefix: "/a", Tags: []string{"A"}, Routes: []routes.Route{{Method: "GET", Pattern: "", OpenAPI: op}}},
		{Prefix: "/b", Tags: []string{"B"}, Routes: []routes.Route{{Method: "GET", Pattern: "", OpenAPI: op}}},
	}

	spec := openapi.NewSpec(openapi.Info{Title: "test", Version: "1"})
	routes.Describe(spec, "", groups...)

	if spec.Paths["/a"].Get.Tags[0] != "A" || spec.Paths["/b"].Get.Tags[0] != "B" {
		t.Errorf("tags leaked between groups: a=%v b=%v", spec.Paths["/a"].Get.Tags, spec.Paths["/b"].Get.Tags)
	}
	if len(op.Tags) != 0 {
		t.Errorf("source operation mutated: %v", op.Tags)
	}
}

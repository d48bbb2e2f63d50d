package pagination_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/pagination"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/query"
)

var cfg = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

func TestConfigFinalize(t *testing.T) {
	env := &pagination.ConfigEnv{
		DefaultPageSize: "PRIMELEADS_TEST_PAGE_SIZE",
		MaxPageSize:     "PRIMELEADS_TEST_MAX_PAGE_SIZE",
	}

	tests := []struct {
		name     string
		in       pagination.Config
		env      map[string]string
		want     pagination.Config
		wantFail bool
	}{
		{name: "defaults", want: cfg},
		{name: "kept", in: pagination.Config{DefaultPageSize: 5, MaxPageSize: 10}, want: pagination.Config{DefaultPageSize: 5, MaxPageSize: 10}},
		{
			name: "env wins",
			env:  map[string]string{"PRIMELEADS_TEST_PAGE_SIZE": "50", "PRIMELEADS_TEST_MAX_PAGE_SIZE": "250"},
			want: pagination.Config{DefaultPageSize: 50, MaxPageSize: 250},
		},
		{
			name: "unparseable env ignored",
			env:  map[string]string{"PRIMELEADS_TEST_PAGE_SIZE": "lots"},
			want: cfg,
		},
		{name: "default above max", in: pagination.Config{DefaultPageSize: 200}, wantFail: true},
		{name: "negative env", env: map[string]string{"PRIMELEADS_TEST_MAX_PAGE_SIZE": "-1"}, wantFail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			c := tt.in
			err := c.Finalize(env)
			if tt.wantFail {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if c != tt.want {
				t.Errorf("got %+v, want %+v", c, tt.want)
			}
		})
	}
}

func TestConfigFinalizeNilEnv(t *testing.T) {
	var c pagination.Config
	if err := c.Finalize(nil); err != nil || c != cfg {
		t.Errorf("got %+v, %v", c, err)
	}
}

func TestConfigMerge(t *testing.T) {
	c := cfg
	c.Merge(&pagination.Config{MaxPageSize: 500})
	if c.DefaultPageSize != 20 || c.MaxPageSize != 500 {
		t.Errorf("got %+v", c)
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	tests := []struct {
		query      string
		page, size int
		search     string
		sort       []query.SortField
	}{
		{"", 1, 20, "", nil},
		{"page=3&page_size=10", 3, 10, "", nil},
		{"page=-2&page_size=0", 1, 20, "", nil},
		{"page=abc&page_size=9999", 1, 100, "", nil},
		{"search=%20acme%20", 1, 20, "acme", nil},
		{"search=%20%20", 1, 20, "", nil},
		{"sort=-started_at,company_name", 1, 20, "", []query.SortField{
			{Field: "started_at", Descending: true},
			{Field: "company_name"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			req := pagination.PageRequestFromQuery(values, cfg)

			if req.Page != tt.page || req.PageSize != tt.size {
				t.Errorf("page/size: got %d/%d, want %d/%d", req.Page, req.PageSize, tt.page, tt.size)
			}

			switch {
			case tt.search == "" && req.Search != nil:
				t.Errorf("search: got %q, want none", *req.Search)
			case tt.search != "" && (req.Search == nil || *req.Search != tt.search):
				t.Errorf("search: got %v, want %q", req.Search, tt.search)
			}

			if len(req.Sort) != len(tt.sort) {
				t.Fatalf("sort: got %v, want %v", req.Sort, tt.sort)
			}
			for i := range tt.sort {
				if req.Sort[i] != tt.sort[i] {
					t.Errorf("sort[%d]: got %+v, want %+v", i, req.Sort[i], tt.sort[i])
				}
			}
		})
	}
}

func TestOffset(t *testing.T) {
	req := pagination.PageRequest{Page: 4, PageSize: 25}
	if got := req.Offset(); got != 75 {
		t.Errorf("offset: got %d, want 75", got)
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name              string
		total, page, size int
		wantPages         int
		wantNext          bool
	}{
		{"empty", 0, 1, 20, 1, false},
		{"exact fit", 40, 1, 20, 2, true},
		{"remainder", 41, 2, 20, 3, true},
		{"last page", 41, 3, 20, 3, false},
		{"zero size", 10, 1, 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := pagination.NewPageResult[string](nil, tt.total, tt.page, tt.size)
			if res.TotalPages != tt.wantPages || res.HasNext != tt.wantNext {
				t.Errorf("got pages=%d next=%v, want %d/%v", res.TotalPages, res.HasNext, tt.wantPages, tt.wantNext)
			}
			if res.Data == nil {
				t.Error("nil data should become an empty slice")
			}
		})
	}
}

func TestSortFieldsUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []query.SortField
	}{
		{"string", `{"sort":"-started_at"}`, []query.SortField{{Field: "started_at", Descending: true}}},
		{"array", `{"sort":[{"field":"name"},{"field":"stage","descending":true}]}`, []query.SortField{
			{Field: "name"},
			{Field: "stage", Descending: true},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req pagination.PageRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatal(err)
			}
			if len(req.Sort) != len(tt.want) {
				t.Fatalf("got %v", req.Sort)
			}
			for i := range tt.want {
				if req.Sort[i] != tt.want[i] {
					t.Errorf("sort[%d]: got %+v", i, req.Sort[i])
				}
			}
		})
	}

	var req pagination.PageRequest
	if err := json.Unmarshal([]byte(`{"sort":42}`), &req); err == nil {
		t.Error("numeric sort should fail to decode")
	}
}

package prompts_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/prompts"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/query"
)

func ptr[T any](v T) *T { return &v }

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{prompts.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("find: %w", prompts.ErrNotFound), http.StatusNotFound},
		{prompts.ErrDuplicate, http.StatusConflict},
		{prompts.ErrInvalidStage, http.StatusBadRequest},
		{prompts.ErrIncomplete, http.StatusBadRequest},
		{prompts.ErrInvalidID, http.StatusBadRequest},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := prompts.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStagesInPipelineOrder(t *testing.T) {
	want := "growth icp queries recruit scoring chat judge"

	var names []string
	for _, s := range prompts.Stages() {
		names = append(names, string(s))
	}
	if got := strings.Join(names, " "); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEveryStageHasDefaults(t *testing.T) {
	for _, stage := range prompts.Stages() {
		t.Run(string(stage), func(t *testing.T) {
			instructions, err := prompts.Instructions(stage)
			if err != nil || strings.TrimSpace(instructions) == "" {
				t.Errorf("instructions: %q, %v", instructions, err)
			}
			spec, err := prompts.Spec(stage)
			if err != nil || strings.TrimSpace(spec) == "" {
				t.Errorf("spec: %q, %v", spec, err)
			}
		})
	}

	if _, err := prompts.Instructions("pricing"); !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("unknown stage instructions: got %v", err)
	}
	if _, err := prompts.Spec("pricing"); !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("unknown stage spec: got %v", err)
	}
}

func TestParseStage(t *testing.T) {
	for _, s := range prompts.Stages() {
		if got, err := prompts.ParseStage(string(s)); err != nil || got != s {
			t.Errorf("ParseStage(%q) = %q, %v", s, got, err)
		}
	}

	for _, bad := range []string{"", "Growth", " icp", "pricing"} {
		if _, err := prompts.ParseStage(bad); !errors.Is(err, prompts.ErrInvalidStage) {
			t.Errorf("ParseStage(%q): got %v, want ErrInvalidStage", bad, err)
		}
	}
}

func TestStageUnmarshalJSON(t *testing.T) {
	var p struct {
		Stage prompts.Stage `json:"stage"`
	}

	if err := json.Unmarshal([]byte(`{"stage":"scoring"}`), &p); err != nil || p.Stage != prompts.StageScoring {
		t.Errorf("got %q, %v", p.Stage, err)
	}
	if err := json.Unmarshal([]byte(`{"stage":"pricing"}`), &p); !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("unknown stage: got %v", err)
	}
	if err := json.Unmarshal([]byte(`{"stage":3}`), &p); err == nil {
		t.Error("numeric stage should fail")
	}
}

func TestCommandValidate(t *testing.T) {
	tests := []struct {
		name string
		cmd  prompts.Command
		want error
	}{
		{"valid", prompts.Command{Name: "a", Stage: prompts.StageICP, Instructions: "b"}, nil},
		{"blank name", prompts.Command{Name: " ", Stage: prompts.StageICP, Instructions: "b"}, prompts.ErrIncomplete},
		{"no instructions", prompts.Command{Name: "a", Stage: prompts.StageICP}, prompts.ErrIncomplete},
		{"no stage", prompts.Command{Name: "a", Instructions: "b"}, prompts.ErrInvalidStage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	cmd := prompts.Command{Name: "  recruiter  ", Stage: prompts.StageRecruit, Instructions: "\nFind senior Go engineers.\n"}
	if err := cmd.Validate(); err != nil {
		t.Fatal(err)
	}
	if cmd.Name != "recruiter" || cmd.Instructions != "Find senior Go engineers." {
		t.Errorf("not trimmed: %+v", cmd)
	}
}

func TestFiltersFromQuery(t *testing.T) {
	tests := []struct {
		query  string
		stage  *prompts.Stage
		name   *string
		active *bool
	}{
		{query: ""},
		{query: "stage=growth&name=saas&active=true", stage: ptr(prompts.StageGrowth), name: ptr("saas"), active: ptr(true)},
		{query: "active=false", active: ptr(false)},
		{query: "stage=pricing&active=maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			f := prompts.FiltersFromQuery(values)

			if !samePtr(f.Stage, tt.stage) {
				t.Errorf("stage: got %v, want %v", f.Stage, tt.stage)
			}
			if !samePtr(f.Name, tt.name) {
				t.Errorf("name: got %v, want %v", f.Name, tt.name)
			}
			if !samePtr(f.Active, tt.active) {
				t.Errorf("active: got %v, want %v", f.Active, tt.active)
			}
		})
	}
}

func samePtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func TestFiltersApply(t *testing.T) {
	projection := query.
		NewProjectionMap("public", "prompts", "p").
		Project("stage", "Stage").
		Project("name", "Name").
		Project("active", "Active")

	b := query.NewBuilder(projection)
	prompts.Filters{}.Apply(b)
	if sql, args := b.Build(); strings.Contains(sql, "WHERE") || len(args) != 0 {
		t.Errorf("empty filters: %q %v", sql, args)
	}

	b = query.NewBuilder(projection)
	prompts.Filters{
		Stage:  ptr(prompts.StageChat),
		Name:   ptr("advisor"),
		Active: ptr(true),
	}.Apply(b)

	sql, args := b.Build()
	want := " WHERE p.stage = $1 AND p.name ILIKE $2 AND p.active = $3"
	if !strings.Contains(sql, want) {
		t.Errorf("sql %q missing %q", sql, want)
	}
	if len(args) != 3 || args[1] != "%advisor%" {
		t.Errorf("args: got %v", args)
	}
}

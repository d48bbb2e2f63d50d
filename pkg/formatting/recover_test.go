package formatting_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/formatting"
)

type sample struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func decode(t *testing.T, raw []byte) any {
	t.Helper()
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("unmarshal %s: %v", raw, err)
	}
	return v
}

func TestRecover(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "plain object",
			content: `{"a":1}`,
			want:    `{"a":1}`,
		},
		{
			name:    "fenced with trailing comma",
			content: "```json\n{\"a\": 1, \"b\": [1, 2,],}\n```",
			want:    `{"a":1,"b":[1,2]}`,
		},
		{
			name:    "leading and trailing prose",
			content: "Sure! Here is the report:\n{\"title\": \"x\"}\nLet me know if you need more.",
			want:    `{"title":"x"}`,
		},
		{
			name:    "array payload",
			content: "Queries:\n[\"one\", \"two\",]\n",
			want:    `["one","two"]`,
		},
		{
			name:    "braces inside strings",
			content: `{"text": "use } and { freely", "n": null}`,
			want:    `{"text":"use } and { freely","n":null}`,
		},
		{
			name:    "escaped quote inside string",
			content: `prefix {"q": "say \"hi\" }"} suffix`,
			want:    `{"q":"say \"hi\" }"}`,
		},
		{
			name:    "nested nulls",
			content: `{"a":{"b":null,"c":[null,{"d":null}]}}`,
			want:    `{"a":{"b":null,"c":[null,{"d":null}]}}`,
		},
		{
			name:    "first balanced span wins",
			content: `{"first":true} and then {"second":true}`,
			want:    `{"first":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.Recover(tt.content)
			if err != nil {
				t.Fatalf("Recover error: %v", err)
			}
			if !reflect.DeepEqual(decode(t, got), decode(t, []byte(tt.want))) {
				t.Errorf("Recover = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRecoverTrailingCommaEquivalence(t *testing.T) {
	clean, err := formatting.Recover(`{"items":[{"k":"v"}],"done":true}`)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}

	dirty, err := formatting.Recover("```json\n{\"items\":[{\"k\":\"v\",},],\"done\":true,}\n```")
	if err != nil {
		t.Fatalf("dirty: %v", err)
	}

	if !reflect.DeepEqual(decode(t, clean), decode(t, dirty)) {
		t.Errorf("dirty = %s, want %s", dirty, clean)
	}
}

func TestRecoverFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t"},
		{"fence only", "```json\n```"},
		{"prose only", "I could not produce a report this time."},
		{"unbalanced", `{"a": [1, 2`},
		{"garbage inside braces", `{not: json at all}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.Recover(tt.content)
			if !errors.Is(err, formatting.ErrParseFailed) {
				t.Errorf("error = %v, want ErrParseFailed", err)
			}
			if got != nil {
				t.Errorf("result = %s, want nil", got)
			}
		})
	}
}

func TestRecoverAs(t *testing.T) {
	t.Run("typed struct", func(t *testing.T) {
		got, err := formatting.RecoverAs[sample]("```\n{\"name\":\"typed\",\"value\":9,}\n```")
		if err != nil {
			t.Fatalf("RecoverAs error: %v", err)
		}
		if got.Name != "typed" || got.Value != 9 {
			t.Errorf("RecoverAs = %+v, want {Name:typed Value:9}", got)
		}
	})

	t.Run("shape mismatch", func(t *testing.T) {
		_, err := formatting.RecoverAs[[]string](`{"name":"object"}`)
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("error = %v, want ErrParseFailed", err)
		}
	})
}

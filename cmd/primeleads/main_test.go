package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/rag"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	root := newRootCmd()
	want := []string{"ask", "bot", "chat", "eval", "ingest", "recruit", "run"}

	var got []string
	for _, c := range root.Commands() {
		if c.Name() == "help" || c.Name() == "completion" {
			continue
		}
		got = append(got, c.Name())
	}

	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("commands: got %v, want %v", got, want)
	}
}

func TestArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
		msg  string
	}{
		{name: "run without url", args: []string{"run"}, want: errNoURL},
		{name: "recruit without jd", args: []string{"recruit", "--jd", "  "}, want: errNoJD},
		{name: "eval without cases", args: []string{"eval"}, msg: `required flag(s) "cases" not set`},
		{name: "ask without question", args: []string{"ask"}, msg: "requires at least 1 arg(s)"},
		{name: "url and url-file", args: []string{"run", "--url", "a.com", "--url-file", "f"}, msg: "none of the others can be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			if tt.msg != "" && !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("got %q, want it to contain %q", err, tt.msg)
			}
		})
	}
}

func TestResolveURL(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "url.txt")
	if err := os.WriteFile(file, []byte("\n  \nfastautomate.ai\nignored.com\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	blank := filepath.Join(dir, "blank.txt")
	if err := os.WriteFile(blank, []byte("\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("flag", func(t *testing.T) {
		got, err := resolveURL("  https://primius.ai ", "")
		if err != nil {
			t.Fatal(err)
		}
		if got != "https://primius.ai" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("file first non-blank line", func(t *testing.T) {
		got, err := resolveURL("", file)
		if err != nil {
			t.Fatal(err)
		}
		if got != "https://fastautomate.ai" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("blank file", func(t *testing.T) {
		if _, err := resolveURL("", blank); !errors.Is(err, errNoURL) {
			t.Errorf("got %v, want errNoURL", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := resolveURL("", filepath.Join(dir, "nope.txt")); !errors.Is(err, errNoURL) {
			t.Error("expected error")
		}
	})
}

func TestPrintVerdicts(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	failed := printVerdicts(cmd, []rag.Verdict{
		{Case: rag.Case{Name: "outreach", Expected: "PrimeReachOut"}, Actual: "PrimeReachOut handles it", Pass: true},
		{Case: rag.Case{Question: "Who schedules calls?", Expected: "PrimeReachOut"}, Actual: "PrimeLeads", Pass: false},
	})

	if failed != 1 {
		t.Errorf("failed: got %d, want 1", failed)
	}
	text := out.String()
	for _, want := range []string{"PASS  outreach", "FAIL  Who schedules calls?", "expected: PrimeReachOut", "actual:   PrimeLeads"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

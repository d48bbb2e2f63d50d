package prompts

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Source resolves the prompt text for a stage. Instructions may be
// overridden at runtime; specs are fixed.
type Source interface {
	Instructions(ctx context.Context, stage Stage) (string, error)
	Spec(ctx context.Context, stage Stage) (string, error)
}

// legacyPlaceholders maps bare-token placeholders found in older prompt
// text onto their variable names.
var legacyPlaceholders = map[string]string{
	"WEBSITE_URL_PLACEHOLDER": "website_url",
}

type defaults struct{}

// Defaults returns a Source serving only the hardcoded instructions and
// specs. Commands that run without a database use it.
func Defaults() Source {
	return defaults{}
}

func (defaults) Instructions(_ context.Context, stage Stage) (string, error) {
	return Instructions(stage)
}

func (defaults) Spec(_ context.Context, stage Stage) (string, error) {
	return Spec(stage)
}

// Compose joins the stage instructions and spec, then fills {name}
// placeholders from vars. A variable whose placeholder does not appear in
// the text is appended as a labelled block, so overrides that omit a
// placeholder still carry the data.
func Compose(ctx context.Context, src Source, stage Stage, vars map[string]string) (string, error) {
	instructions, err := src.Instructions(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := src.Spec(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	text := instructions + "\n\n" + spec
	for legacy, name := range legacyPlaceholders {
		text = strings.ReplaceAll(text, legacy, "{"+name+"}")
	}

	var (
		pairs    []string
		appendix strings.Builder
	)
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		placeholder := "{" + name + "}"
		if strings.Contains(text, placeholder) {
			pairs = append(pairs, placeholder, vars[name])
			continue
		}
		fmt.Fprintf(&appendix, "\n\n%s:\n%s", label(name), vars[name])
	}

	if len(pairs) > 0 {
		text = strings.NewReplacer(pairs...).Replace(text)
	}

	return text + appendix.String(), nil
}

// label turns a snake_case variable name into a heading: growth_report
// becomes "Growth report".
func label(name string) string {
	s := strings.ReplaceAll(name, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

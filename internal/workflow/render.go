package workflow

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/reports"
)

type field struct {
	key   string
	label string
	hint  string
}

type category struct {
	name   string
	fields []field
}

var icpCategories = []category{
	{"1. Industry & Market", []field{
		{"industry_focus", "Industry Focus", "Primary industry vertical."},
		{"key_market_trends", "Key Market Trends", "Emerging or ongoing trends."},
		{"market_maturity", "Market Maturity", "Emerging, mature, or highly competitive."},
	}},
	{"2. Firmographics", []field{
		{"employee_count_range", "Employee Count Range", "Approximate headcount range."},
		{"annual_revenue_range", "Annual Revenue Range", "Typical revenue bracket."},
		{"geographic_focus_hq_location", "Geographic Focus / HQ Location", "Regions with the largest presence."},
		{"funding_stage_if_relevant", "Funding Stage (if relevant)", "Pre-seed, Series A, IPO, or bootstrapped."},
	}},
	{"3. Decision-Maker Titles & Roles", []field{
		{"primary_decision_makers", "Primary Decision-Maker(s)", "Titles that sign off on the purchase."},
		{"influencers_champions", "Influencers & Champions", "Roles that sway the decision."},
		{"buying_committee_structure", "Buying Committee Structure", "Single decider or formal committee."},
	}},
	{"4. Business Objectives & Challenges", []field{
		{"common_growth_objectives", "Common Growth Objectives", "New markets, cost reduction, transformation."},
		{"key_pain_points", "Key Pain Points", "Typical operational or strategic challenges."},
	}},
	{"5. Value Alignment", []field{
		{"feature_need_match", "Feature-Need Match", "How the offering addresses the challenges."},
		{"roi_potential", "ROI Potential", "Impact on revenue, cost or efficiency."},
	}},
	{"6. Best-Fit Indicators", []field{
		{"growth_related_triggers", "Growth-Related Triggers", "Signals of readiness."},
		{"cultural_or_tech_stack_synergy", "Cultural or Tech Stack Synergy", "Shared values or compatible technology."},
		{"other_unique_clues", "Other Unique Clues", "Awards, reputation or strategic initiatives."},
	}},
}

var personaCategories = []category{
	{"1. Goals & Motivations", []field{
		{key: "primary_objectives", label: "Primary Objectives"},
		{key: "success_metrics", label: "Success Metrics"},
	}},
	{"2. Preferred Channels & Content", []field{
		{key: "research_sources", label: "Research Sources"},
		{key: "content_formats", label: "Content Formats"},
	}},
	{"3. Key Objections", []field{
		{key: "reasons_to_hesitate", label: "Reasons to Hesitate"},
		{key: "fears_frustrations", label: "Fears & Frustrations"},
	}},
	{"4. Messaging / Value Prop Focus", []field{
		{key: "tailored_hooks", label: "Tailored Hooks"},
	}},
}

// growthDocument lays out the known sections in order, followed by any
// extra sections the model added.
func growthDocument(company string, report GrowthReport) reports.Document {
	doc := reports.Document{
		Title:    "Growth Strategy & Operations Optimization Report",
		Subtitle: company,
	}

	keys := slices.Clone(growthSections)
	for _, k := range slices.Sorted(maps.Keys(report)) {
		if !slices.Contains(growthSections, k) {
			keys = append(keys, k)
		}
	}

	for _, k := range keys {
		v, ok := report[k]
		if !ok {
			continue
		}
		doc.Sections = append(doc.Sections, valueSections(k, 0, v)...)
	}
	return doc
}

func valueSections(heading string, level int, v any) []reports.Section {
	s := reports.Section{Heading: heading, Level: level}

	switch t := v.(type) {
	case map[string]any:
		out := []reports.Section{s}
		for _, k := range slices.Sorted(maps.Keys(t)) {
			out = append(out, valueSections(k, level+1, t[k])...)
		}
		return out
	case []any:
		if table, ok := objectTable(t); ok {
			s.Tables = []reports.Table{table}
		} else {
			for _, item := range t {
				s.Bullets = append(s.Bullets, fieldText(item))
			}
		}
	default:
		s.Paragraphs = []string{fieldText(t)}
	}

	return []reports.Section{s}
}

// objectTable renders a list of objects as a table. Competitor rows use
// the fixed comparison columns; other lists use the sorted union of keys.
func objectTable(items []any) (reports.Table, bool) {
	rows := make([]map[string]any, 0, len(items))
	keys := map[string]struct{}{}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return reports.Table{}, false
		}
		rows = append(rows, m)
		for k := range m {
			keys[k] = struct{}{}
		}
	}
	if len(rows) == 0 {
		return reports.Table{}, false
	}

	columns := slices.Sorted(maps.Keys(keys))
	if _, ok := keys["Competitor"]; ok {
		columns = competitorColumns
	}

	table := reports.Table{Columns: columns}
	for _, m := range rows {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = fieldText(m[c])
		}
		table.Rows = append(table.Rows, row)
	}
	return table, true
}

// icpDocument renders the profile and persona tables with one column per
// profile or persona.
func icpDocument(company string, report ICPReport) reports.Document {
	return reports.Document{
		Title:     "Ideal Customer Profiles & Buyer Personas",
		Subtitle:  company,
		Landscape: true,
		Sections: []reports.Section{
			{
				Heading: "B2B Ideal Customer Profiles",
				Tables:  []reports.Table{categoryTable(icpCategories, report.ICPs.Profiles, "ICP Name", true)},
			},
			{
				Heading: "Buyer Personas",
				Tables:  []reports.Table{categoryTable(personaCategories, report.Personas.Personas, "Persona Name", false)},
			},
		},
	}
}

func categoryTable(categories []category, profiles []Profile, prefix string, withHints bool) reports.Table {
	table := reports.Table{Columns: []string{"Data Category", "Sub-Field"}, Widths: []float64{1.2, 1.6}}
	if withHints {
		table.Columns = append(table.Columns, "Description")
		table.Widths = append(table.Widths, 1.8)
	}
	for _, p := range profiles {
		table.Columns = append(table.Columns, fmt.Sprintf("%s: %s", prefix, p.Name))
		table.Widths = append(table.Widths, 2)
	}

	for _, c := range categories {
		for i, f := range c.fields {
			row := []string{"", f.label}
			if i == 0 {
				row[0] = c.name
			}
			if withHints {
				row = append(row, f.hint)
			}
			for _, p := range profiles {
				row = append(row, fieldText(p.Data[f.key]))
			}
			table.Rows = append(table.Rows, row)
		}
	}
	return table
}

// fieldText flattens a decoded JSON value to display text. Lists join
// with commas.
func fieldText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, fieldText(item))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		parts := make([]string, 0, len(t))
		for _, k := range slices.Sorted(maps.Keys(t)) {
			parts = append(parts, k+": "+fieldText(t[k]))
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprint(t)
	}
}

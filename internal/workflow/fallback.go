package workflow

import (
	"fmt"
	"strings"
)

// Growth report section titles, in rendering order.
const (
	SectionIntroduction  = "Introduction"
	SectionOfferings     = "Company Offerings & Value Propositions"
	SectionJourney       = "Customer Journey SOPs (B2B & B2C)"
	SectionAdvantage     = "Competitive Advantage & Sector Inefficiencies"
	SectionAutomations   = "Workflow Automations & Growth Hacks"
	SectionConclusion    = "Conclusion & Next Steps"
	SectionCompetitors   = "Competitive Review and Comparison"
	SectionReferences    = "References and Citations"
	competitorTableTitle = "Top Competitor Comparison Table"
)

var growthSections = []string{
	SectionIntroduction,
	SectionOfferings,
	SectionJourney,
	SectionAdvantage,
	SectionAutomations,
	SectionConclusion,
	SectionCompetitors,
	SectionReferences,
}

var competitorColumns = []string{
	"Competitor",
	"Core Offering",
	"Technology Focus",
	"Target Market",
	"Competitive Advantage",
	"Strengths",
	"Weaknesses",
}

// FallbackGrowth is the report used when the model produces nothing usable.
func FallbackGrowth(company, websiteURL string) GrowthReport {
	return GrowthReport{
		SectionIntroduction: fmt.Sprintf("Strategic growth analysis for %s examining market position, competitive landscape, and optimization opportunities.", company),
		SectionOfferings: map[string]any{
			"Core Offerings & Claimed Pain Points": fmt.Sprintf("%s service analysis focusing on value proposition and customer pain point resolution.", company),
			"Market Fit & Differentiation":         fmt.Sprintf("Market positioning assessment for %s with competitive differentiation strategy review.", company),
		},
		SectionJourney: map[string]any{
			"Industry-Specific Journey": fmt.Sprintf("Customer journey optimization for %s across B2B and B2C segments.", company),
			"Website & Funnel Analysis": fmt.Sprintf("Digital experience audit for %s with conversion optimization recommendations.", company),
		},
		SectionAdvantage: map[string]any{
			"Competitive Edge":                      fmt.Sprintf("%s competitive advantages and strategic market positioning analysis.", company),
			"Sector Pain Points & Operational Gaps": fmt.Sprintf("Industry opportunities representing growth potential for %s.", company),
		},
		SectionAutomations: map[string]any{
			"Most Pressing Pain Points":    "Operational challenges requiring automation and process optimization.",
			"Quick Wins & Optimizations":   "Immediate opportunities for rapid growth with minimal investment required.",
			"Alignment with Company Stage": fmt.Sprintf("Growth strategies tailored to %s current market position.", company),
		},
		SectionConclusion: map[string]any{
			"Key Findings":          fmt.Sprintf("Critical insights for %s strategic growth and market expansion.", company),
			"Actionable Priorities": fmt.Sprintf("Priority actions for %s next quarter execution.", company),
			"Longer-Term Outlook":   fmt.Sprintf("Strategic vision for %s 12-24 month growth.", company),
		},
		SectionCompetitors: map[string]any{
			competitorTableTitle: []any{
				competitor("Market Leader Alpha",
					"Comprehensive platform integrated technology",
					"Advanced analytics mobile architecture",
					"Enterprise clients multiple verticals",
					"Market dominance comprehensive solutions",
					"Established leadership strong technology",
					"Higher costs limited innovation"),
				competitor("Innovation Beta",
					"AI-powered solutions optimization focus",
					"Machine learning predictive analytics",
					"Tech-savvy forward-thinking organizations",
					"Technology leadership innovation capability",
					"Advanced technology sustainability focus",
					"Limited presence higher complexity"),
				competitor("Value Gamma",
					"Cost-efficient competitive pricing model",
					"Reliable operational efficiency platform",
					"Price-sensitive consumers SME businesses",
					"Cost leadership operational efficiency",
					"Price competitiveness market accessibility",
					"Limited features basic technology"),
			},
		},
		SectionReferences: []any{
			fmt.Sprintf("Company website analysis for %s", websiteURL),
			"Industry benchmarking competitive intelligence research",
			"Market trend analysis growth opportunities",
			"Strategic frameworks best practices review",
		},
	}
}

func competitor(values ...string) map[string]any {
	row := make(map[string]any, len(competitorColumns))
	for i, col := range competitorColumns {
		row[col] = values[i]
	}
	return row
}

// mergeFallback fills every fallback section that report lacks or left
// empty, and returns the names of the sections it filled.
func mergeFallback(report, fallback GrowthReport) []string {
	var filled []string
	for _, key := range growthSections {
		if isEmpty(report[key]) {
			report[key] = fallback[key]
			filled = append(filled, key)
		}
	}
	return filled
}

// FallbackICP is the single-profile, single-persona report used when the
// model produces nothing usable.
func FallbackICP(company string) ICPReport {
	lower := strings.ToLower(company)

	return ICPReport{
		ICPs: ICPTable{Profiles: []Profile{{
			Name: "Large Enterprises (Corporate Sector)",
			Data: map[string]any{
				"industry_focus":                 fmt.Sprintf("Large corporations in Egypt requiring %s services", lower),
				"key_market_trends":              "Digital transformation, Employee experience focus, Cost optimization",
				"market_maturity":                "Mature market with established players",
				"employee_count_range":           "500+ employees",
				"annual_revenue_range":           "$10M+ annually",
				"geographic_focus_hq_location":   "Cairo, Alexandria, New Administrative Capital",
				"funding_stage_if_relevant":      "Established businesses",
				"primary_decision_makers":        "CEO, Operations Director, HR Director",
				"influencers_champions":          "Department heads, Team leaders",
				"buying_committee_structure":     "Committee-based decision making",
				"common_growth_objectives":       "Improve efficiency, Reduce costs, Enhance employee satisfaction",
				"key_pain_points":                "Operational inefficiencies, Rising costs, Employee retention",
				"feature_need_match":             fmt.Sprintf("Services that address operational challenges specific to %s", lower),
				"roi_potential":                  "Cost savings and efficiency improvements",
				"growth_related_triggers":        "Business expansion, Operational challenges",
				"cultural_or_tech_stack_synergy": "Technology-forward, Efficiency-focused",
				"other_unique_clues":             "Industry certifications, Growth initiatives",
			},
		}}},
		Personas: PersonaTable{Personas: []Profile{{
			Name: "Ahmed (Decision Maker)",
			Data: map[string]any{
				"primary_objectives":  "Improve business operations, Manage costs, Drive growth",
				"success_metrics":     "ROI, Cost reduction, Operational efficiency",
				"fears_frustrations":  "Budget constraints, Poor vendor performance, Implementation risks",
				"research_sources":    "Industry publications, Professional networks, Online research",
				"content_formats":     "Case studies, ROI analyses, Industry reports",
				"reasons_to_hesitate": "Budget approval, Risk concerns, Past experiences",
				"tailored_hooks":      "Proven ROI, Risk mitigation, Industry expertise",
			},
		}}},
	}
}

// FallbackQueries builds one LinkedIn query per ICP and persona pair from
// the persona title and the ICP industry and geography.
func FallbackQueries(report ICPReport) []SearchQuery {
	var queries []SearchQuery
	for _, icp := range report.ICPs.Profiles {
		industry := firstItem(fieldText(icp.Data["industry_focus"]))
		geo := firstItem(fieldText(icp.Data["geographic_focus_hq_location"]))

		for _, persona := range report.Personas.Personas {
			terms := []string{"site:linkedin.com/in", quote(personaRole(persona.Name))}
			if industry != "" {
				terms = append(terms, quote(industry))
			}
			if geo != "" {
				terms = append(terms, quote(geo))
			}

			queries = append(queries, SearchQuery{
				ICP:     icp.Name,
				Persona: persona.Name,
				Query:   strings.Join(terms, " "),
			})
		}
	}
	return queries
}

// personaRole extracts the role from a persona name such as
// "Ahmed (HR Director)". Names without parentheses are used whole.
func personaRole(name string) string {
	_, rest, ok := strings.Cut(name, "(")
	if !ok {
		return strings.TrimSpace(name)
	}
	role, _, _ := strings.Cut(rest, ")")
	return strings.TrimSpace(role)
}

func firstItem(list string) string {
	item, _, _ := strings.Cut(list, ",")
	return strings.TrimSpace(item)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "") + `"`
}

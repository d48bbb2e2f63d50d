package prompts

const growthSpec = `Respond with a JSON object whose top-level keys are the report sections, in this order:

{
  "Introduction": "<one paragraph>",
  "Company Offerings & Value Propositions": {
    "Core Offerings & Claimed Pain Points": "<text>",
    "Market Fit & Differentiation": "<text>"
  },
  "Customer Journey SOPs (B2B & B2C)": {
    "Industry-Specific Journey": "<text>",
    "Website & Funnel Analysis": "<text>"
  },
  "Competitive Advantage & Sector Inefficiencies": {
    "Competitive Edge": "<text>",
    "Sector Pain Points & Operational Gaps": "<text>"
  },
  "Workflow Automations & Growth Hacks": {
    "Most Pressing Pain Points": "<text or list>",
    "Quick Wins & Optimizations": "<text or list>",
    "Alignment with Company Stage": "<text>"
  },
  "Conclusion & Next Steps": {
    "Key Findings": "<text or list>",
    "Actionable Priorities": "<text or list>",
    "Longer-Term Outlook": "<text>"
  },
  "Competitive Review and Comparison": {
    "Top Competitor Comparison Table": [
      {
        "Competitor": "<name>",
        "Core Offering": "<10 words max>",
        "Technology Focus": "<10 words max>",
        "Target Market": "<10 words max>",
        "Competitive Advantage": "<10 words max>",
        "Strengths": "<10 words max>",
        "Weaknesses": "<10 words max>"
      }
    ]
  },
  "References and Citations": ["<source>"]
}

Behavioral constraints:
- The keys "Introduction", "Company Offerings & Value Propositions" and
  "Competitive Review and Comparison" are mandatory
- Respond with valid JSON only: no markdown fencing, no commentary`

const icpSpec = `Respond with a JSON object matching this exact structure:

{
  "b2bICPTable": {
    "icpProfiles": [
      {
        "name": "<segment name>",
        "data": {
          "industry_focus": "",
          "key_market_trends": "",
          "market_maturity": "",
          "employee_count_range": "",
          "annual_revenue_range": "",
          "geographic_focus_hq_location": "",
          "funding_stage_if_relevant": "",
          "primary_decision_makers": "",
          "influencers_champions": "",
          "buying_committee_structure": "",
          "common_growth_objectives": "",
          "key_pain_points": "",
          "feature_need_match": "",
          "roi_potential": "",
          "growth_related_triggers": "",
          "cultural_or_tech_stack_synergy": "",
          "other_unique_clues": ""
        }
      }
    ]
  },
  "buyerPersonasTable": {
    "personas": [
      {
        "name": "<First name (Role)>",
        "data": {
          "primary_objectives": "",
          "success_metrics": "",
          "fears_frustrations": "",
          "research_sources": "",
          "content_formats": "",
          "reasons_to_hesitate": "",
          "tailored_hooks": ""
        }
      }
    ]
  }
}

Behavioral constraints:
- Both "b2bICPTable" and "buyerPersonasTable" are mandatory
- Every data field holds a non-empty string
- Respond with valid JSON only: no markdown fencing, no commentary`

const queriesSpec = `Respond with a JSON array. Each element has this structure:

{
  "icp": "<ICP profile name>",
  "persona": "<persona name>",
  "query": "<search query>"
}

Behavioral constraints:
- The top-level value must be an array, never an object
- One element per ICP and persona combination
- Respond with valid JSON only: no markdown fencing, no commentary`

const recruitSpec = `Respond with a JSON array of strings, one search string per element:

["<search string>", "<search string>"]

Behavioral constraints:
- Do not include the "site:" operator; it is added automatically
- Respond with valid JSON only: no markdown fencing, no commentary`

const scoringSpec = `Respond with a JSON object matching this exact structure:

{
  "fit_score": 0,
  "rationale": "<one or two sentences>"
}

Field constraints:
- fit_score: integer from 0 (no fit) to 10 (ideal fit)
- rationale: the main reasons for the score

Behavioral constraints:
- Respond with valid JSON only: no markdown fencing, no commentary`

const chatSpec = `Answer in plain text using only the knowledge-base context provided. Keep replies short. When the context does not cover the question, say so and ask a clarifying question.`

const judgeSpec = `Answer with the single word 'true' or 'false'.`

var specs = map[Stage]string{
	StageGrowth:  growthSpec,
	StageICP:     icpSpec,
	StageQueries: queriesSpec,
	StageRecruit: recruitSpec,
	StageScoring: scoringSpec,
	StageChat:    chatSpec,
	StageJudge:   judgeSpec,
}

// Spec returns the hardcoded output specification for a stage.
// Specifications define the expected output format and are not overridable.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}

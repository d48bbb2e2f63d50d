// Package candidates implements the recruiting pipeline: a job description
// becomes search strings, the search strings become LinkedIn profiles, and
// every profile is scored for fit and bucketed hot, warm or cold.
package candidates

import "github.com/tonaja/FastAutomate-Cloud-Bot/internal/search"

// Graph state keys. The enriched and scored keys keep the names clients of
// the job description endpoint already read.
const (
	KeyJD       = "raw_jd_text"
	KeyQueries  = "Candidate_Search_Queries"
	KeyEnriched = "Enriched_Candidate_Records"
	KeyScored   = "Scored_Candidate_Objects"

	KeySearchError = "Search_Error"
)

// maxFallbackQuery bounds the job description text used as a search
// string when no queries can be derived.
const maxFallbackQuery = 120

// Candidate is a profile found by one of the derived search strings.
type Candidate struct {
	search.Profile
	Query string `json:"query"`
}

// Scored is a candidate with its fit assessment. FitScore is 0 when the
// candidate could not be scored, with Error saying why.
type Scored struct {
	Candidate
	FitScore  float64 `json:"fit_score"`
	Rationale string  `json:"rationale"`
	Error     string  `json:"error,omitempty"`
}

// Summary counts scored candidates per bucket.
type Summary struct {
	Hot  int `json:"hot"`
	Warm int `json:"warm"`
	Cold int `json:"cold"`
}

// Thresholds are the inclusive lower bounds of the hot and warm buckets.
type Thresholds struct {
	Hot  float64
	Warm float64
}

// GraphState is the subset of the final graph state returned to callers.
type GraphState struct {
	Enriched []Candidate `json:"Enriched_Candidate_Records"`
	Scored   []Scored    `json:"Scored_Candidate_Objects"`
}

// Result is the outcome of one pipeline run.
type Result struct {
	Queries    []string   `json:"queries"`
	GraphState GraphState `json:"graph_state"`
	Summary    Summary    `json:"summary"`

	// SearchError is set when no derived query could be searched and the
	// run completed with no candidates.
	SearchError string `json:"search_error,omitempty"`
}

// Summarize buckets scored candidates: hot at or above t.Hot, warm at or
// above t.Warm, cold otherwise.
func Summarize(scored []Scored, t Thresholds) Summary {
	var s Summary
	for _, c := range scored {
		switch {
		case c.FitScore >= t.Hot:
			s.Hot++
		case c.FitScore >= t.Warm:
			s.Warm++
		default:
			s.Cold++
		}
	}
	return s
}

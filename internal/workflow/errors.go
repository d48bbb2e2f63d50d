// Package workflow runs the three-stage lead pipeline: a growth report for a
// company website, ideal customer profiles and buyer personas derived from
// it, and LinkedIn search queries for every profile and persona pair.
//
// Each stage writes one new key into the go-agents-orchestration state bag
// holding a typed superset of the previous stage's state. Stages never fail
// the graph: model, parse and artifact errors become a degraded or failed
// StageResult carrying fallback data.
package workflow

import "errors"

var (
	ErrNoResponse     = errors.New("model returned no usable response")
	ErrShape          = errors.New("response does not match the expected shape")
	ErrStagePanic     = errors.New("stage panicked")
	ErrArtifactFailed = errors.New("artifact write failed")
)

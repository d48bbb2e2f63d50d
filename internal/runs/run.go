// Package runs records each pipeline invocation: what was asked, how it
// ended, and the summary it produced.
package runs

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind names the pipeline a run belongs to.
type Kind string

const (
	KindWebsite        Kind = "website"
	KindJobDescription Kind = "job_description"
)

// Status is the lifecycle state of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Run is one recorded pipeline invocation. Summary holds the pipeline's
// own summary document and is empty until the run completes.
type Run struct {
	ID          uuid.UUID       `json:"id"`
	Kind        Kind            `json:"kind"`
	Input       string          `json:"input"`
	Status      Status          `json:"status"`
	CompanyName string          `json:"company_name"`
	Summary     json.RawMessage `json:"summary,omitempty"`
	Error       string          `json:"error,omitempty"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}
